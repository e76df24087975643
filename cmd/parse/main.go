// Command parse reads sale descriptions from its arguments or from stdin
// (one per line) and prints each parsed sale as a JSON line.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/catalog"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/saleparser"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/shared/utils"
)

type output struct {
	saleparser.ParsedSale
	NeedsReview []string `json:"needs_review"`
}

func main() {
	var strainsFile string
	var threshold float64
	var pretty bool

	flag.StringVar(&strainsFile, "strains", "", "Extra strain list file (Name|alias,alias per line)")
	flag.Float64Var(&threshold, "threshold", 0.5, "Review threshold for needs_review")
	flag.BoolVar(&pretty, "pretty", false, "Indent JSON output")
	flag.Parse()

	utils.InitLogger("development", "warn")

	known := saleparser.DefaultStrains()
	if strainsFile != "" {
		f, err := os.Open(strainsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to open strain list")
		}
		extra, err := catalog.ReadStrainList(f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Str("file", strainsFile).Msg("❌ Failed to read strain list")
		}
		known = append(known, extra...)
	}
	parser := saleparser.New(saleparser.WithMatcher(saleparser.NewStrainMatcher(known)))

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	emit := func(text string) {
		sale := parser.Parse(text)
		if err := enc.Encode(output{ParsedSale: sale, NeedsReview: sale.NeedsReview(threshold)}); err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to write output")
		}
	}

	if flag.NArg() > 0 {
		emit(strings.Join(flag.Args(), " "))
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			emit(line)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to read stdin")
	}
}
