package saleparser

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestParser() *Parser {
	return New(WithClock(fixedClock), WithLogger(zerolog.Nop()))
}

func TestParseSoldWithExplicitProfit(t *testing.T) {
	sale := newTestParser().Parse("Sold 3.5g of Blue Dream to Mike for $50 on May 15 with $30 profit")

	if sale.Strain != "Blue Dream" || sale.Customer != "Mike" {
		t.Fatalf("unexpected strain/customer: %q / %q", sale.Strain, sale.Customer)
	}
	assertFloat(t, "quantity", sale.Quantity, 3.5)
	assertFloat(t, "sale price", sale.SalePrice, 50)
	assertFloat(t, "profit", sale.Profit, 30)
	if sale.IsTick {
		t.Fatalf("expected a paid sale")
	}
	if sale.PaidSoFar != nil {
		t.Fatalf("expected no paid amount on a non-tick sale")
	}
	if !sale.Date.Equal(day(2025, time.May, 15)) {
		t.Fatalf("expected May 15, got %v", sale.Date)
	}
	want := ConfidenceScores{Customer: 0.8, Strain: 1.0, Date: 0.9, Quantity: 0.9, SalePrice: 0.9, Profit: 0.8}
	if sale.Confidence != want {
		t.Fatalf("expected confidence %+v, got %+v", want, sale.Confidence)
	}
}

func TestParseTickSaleWithZeroPaid(t *testing.T) {
	sale := newTestParser().Parse("Ticked 7g Northern Lights to Sarah on 5/20, $80 total with $0 paid")

	if !sale.IsTick {
		t.Fatalf("expected tick sale")
	}
	assertFloat(t, "quantity", sale.Quantity, 7)
	if sale.Customer != "Sarah" || sale.Strain != "Northern Lights" {
		t.Fatalf("unexpected strain/customer: %q / %q", sale.Strain, sale.Customer)
	}
	if !sale.Date.Equal(day(2025, time.May, 20)) {
		t.Fatalf("expected May 20, got %v", sale.Date)
	}
	assertFloat(t, "date confidence", sale.Confidence.Date, 0.8)
	assertFloat(t, "sale price", sale.SalePrice, 80)
	if sale.PaidSoFar == nil {
		t.Fatalf("expected paid amount on a tick sale")
	}
	assertFloat(t, "paid so far", *sale.PaidSoFar, 0)
	assertFloat(t, "estimated profit", sale.Profit, 48)
	assertFloat(t, "profit confidence", sale.Confidence.Profit, 0.3)
}

func TestParseHalfOunceWithMadePhrase(t *testing.T) {
	sale := newTestParser().Parse("Dropped a half oz to Kyle for 150 on May 17, made 80")

	assertFloat(t, "quantity", sale.Quantity, 14)
	if sale.Customer != "Kyle" {
		t.Fatalf("expected Kyle, got %q", sale.Customer)
	}
	assertFloat(t, "sale price", sale.SalePrice, 150)
	assertFloat(t, "profit", sale.Profit, 80)
	assertFloat(t, "profit confidence", sale.Confidence.Profit, 0.9)
	if !sale.Date.Equal(day(2025, time.May, 17)) {
		t.Fatalf("expected May 17, got %v", sale.Date)
	}
	if sale.Strain != "" || sale.Confidence.Strain != 0 {
		t.Fatalf("expected no strain, got %q (%v)", sale.Strain, sale.Confidence.Strain)
	}
	if sale.IsTick {
		t.Fatalf("expected a paid sale")
	}
}

func TestParseEmptyInput(t *testing.T) {
	sale := newTestParser().Parse("")

	want := ParsedSale{
		Date:       fixedNow,
		Confidence: ConfidenceScores{Date: 0.5},
	}
	if !reflect.DeepEqual(sale, want) {
		t.Fatalf("expected %+v, got %+v", want, sale)
	}
}

func TestParseOwesOnly(t *testing.T) {
	sale := newTestParser().Parse("owes me 100")

	assertFloat(t, "sale price", sale.SalePrice, 100)
	assertFloat(t, "price confidence", sale.Confidence.SalePrice, 0.6)
	if sale.Strain != "" || sale.Customer != "" || sale.Quantity != 0 {
		t.Fatalf("expected unresolved strain/customer/quantity, got %+v", sale)
	}
	if sale.Confidence.Strain != 0 || sale.Confidence.Customer != 0 || sale.Confidence.Quantity != 0 {
		t.Fatalf("expected zero confidences, got %+v", sale.Confidence)
	}
	if !sale.IsTick {
		t.Fatalf("expected owes to mark a tick sale")
	}
}

func TestParseStrainRegexFallbacks(t *testing.T) {
	p := New(WithClock(fixedClock), WithLogger(zerolog.Nop()), WithMatcher(NewStrainMatcher(nil)))
	cases := []struct {
		text       string
		strain     string
		confidence float64
	}{
		{"sold 2g of mystery kush to jen", "Mystery Kush", 0.7},
		{"ticked 7g purple monkey to sarah", "Purple Monkey", 0.6},
		{"fronted purple monkey to sarah", "Purple Monkey", 0.5},
		{"sold a half oz to kyle", "", 0},
	}
	for _, tc := range cases {
		sale := p.Parse(tc.text)
		if sale.Strain != tc.strain {
			t.Fatalf("%q: expected strain %q, got %q", tc.text, tc.strain, sale.Strain)
		}
		assertFloat(t, tc.text, sale.Confidence.Strain, tc.confidence)
	}
}

func TestParseRecoversIntoFailureSentinel(t *testing.T) {
	// a nil matcher makes the strain stage panic
	p := &Parser{now: fixedClock, logger: zerolog.Nop()}
	sale := p.Parse("Sold 3.5g of Blue Dream to Mike for $50")

	want := failedSale("Sold 3.5g of Blue Dream to Mike for $50", fixedNow)
	if !reflect.DeepEqual(sale, want) {
		t.Fatalf("expected failure sentinel %+v, got %+v", want, sale)
	}
	if !sale.Failed() {
		t.Fatalf("expected every confidence to be zero, got %+v", sale.Confidence)
	}
	if newTestParser().Parse("").Failed() {
		t.Fatalf("empty input is a completed parse, not a failure")
	}
}

var propertyInputs = []string{
	"",
	"   ",
	"asdf qwer zxcv",
	"$$$ !!! ???",
	"0/0/0",
	"13/13",
	"owes owes owes",
	"€100 to 日本語",
	"Sold 99999999999999999999g for $99999999999999999999",
	"sold " + strings.Repeat("9", 400) + "g of gelato",
	"sold gelato for $" + strings.Repeat("9", 400),
	"fronted " + strings.Repeat("1", 400) + " of kush, made " + strings.Repeat("5", 400),
	"sold for 50",
	"fronted a quarter to big mike, paid 20",
	"Big Mike got an eighth of GSC yesterday for 40",
	"Sold 3.5g of Blue Dream to Mike for $50 on May 15 with $30 profit",
}

func TestParseIsDeterministic(t *testing.T) {
	p := newTestParser()
	for _, in := range propertyInputs {
		a, b := p.Parse(in), p.Parse(in)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%q: expected identical results, got %+v and %+v", in, a, b)
		}
	}
}

func TestParseResultInvariants(t *testing.T) {
	p := newTestParser()
	for _, in := range propertyInputs {
		sale := p.Parse(in)
		for _, f := range sale.Confidence.Fields() {
			if f.Score < 0 || f.Score > 1 {
				t.Fatalf("%q: %s confidence %v out of [0,1]", in, f.Field, f.Score)
			}
		}
		for label, v := range map[string]float64{"quantity": sale.Quantity, "sale_price": sale.SalePrice, "profit": sale.Profit} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("%q: %s is not finite", in, label)
			}
		}
		if sale.Date.IsZero() {
			t.Fatalf("%q: expected a date", in)
		}
		if !sale.IsTick && sale.PaidSoFar != nil {
			t.Fatalf("%q: paid amount set on a non-tick sale", in)
		}
		if sale.SalePrice > 0 && sale.SalePrice < 1e9 && sale.Confidence.Profit == 0.3 {
			assertFloat(t, in+" estimated profit", sale.Profit, math.Round(sale.SalePrice*0.6))
		}
		if sale.RawInput != in {
			t.Fatalf("%q: expected raw input to be kept, got %q", in, sale.RawInput)
		}
		if _, err := json.Marshal(sale); err != nil {
			t.Fatalf("%q: expected a JSON-encodable result, got %v", in, err)
		}
	}
}

func TestParseOversizedAmountsStayUnresolved(t *testing.T) {
	p := newTestParser()
	huge := strings.Repeat("9", 400)

	sale := p.Parse("Sold " + huge + "g of Gelato to Mike for $50")
	if sale.Failed() {
		t.Fatalf("expected a completed parse, got the failure sentinel")
	}
	assertFloat(t, "quantity", sale.Quantity, 0)
	assertFloat(t, "quantity confidence", sale.Confidence.Quantity, 0)
	assertFloat(t, "sale price", sale.SalePrice, 50)
	if sale.Customer != "Mike" {
		t.Fatalf("expected Mike, got %q", sale.Customer)
	}

	sale = p.Parse("Sold 3.5g of Gelato to Mike for $" + huge)
	if sale.Failed() {
		t.Fatalf("expected a completed parse, got the failure sentinel")
	}
	assertFloat(t, "sale price", sale.SalePrice, 0)
	assertFloat(t, "profit", sale.Profit, 0)
	assertFloat(t, "quantity", sale.Quantity, 3.5)
}

func TestParseConcurrentCallsAgree(t *testing.T) {
	p := newTestParser()
	want := make([]ParsedSale, len(propertyInputs))
	for i, in := range propertyInputs {
		want[i] = p.Parse(in)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8*len(propertyInputs))
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, in := range propertyInputs {
				if got := p.Parse(in); !reflect.DeepEqual(got, want[i]) {
					errs <- in
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for in := range errs {
		t.Fatalf("%q: concurrent parse differs from sequential parse", in)
	}
}

func TestNeedsReview(t *testing.T) {
	sale := newTestParser().Parse("owes me 100")
	got := sale.NeedsReview(0.5)
	want := []string{FieldCustomer, FieldStrain, FieldQuantity, FieldProfit}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := sale.NeedsReview(0); len(got) != 0 {
		t.Fatalf("expected nothing below a zero threshold, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	c := ConfidenceScores{Customer: -1, Strain: 2, Date: math.NaN(), Quantity: 0.4}.Clamp()
	want := ConfidenceScores{Customer: 0, Strain: 1, Date: 0, Quantity: 0.4}
	if c != want {
		t.Fatalf("expected %+v, got %+v", want, c)
	}
}

func TestPackageParseUsesDefaults(t *testing.T) {
	sale := Parse("Sold 3.5g of Blue Dream to Mike")
	if sale.Strain != "Blue Dream" {
		t.Fatalf("expected built-in strain list, got %q", sale.Strain)
	}
}
