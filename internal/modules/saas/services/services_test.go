package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/catalog"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/metrics"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/saleparser"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/models"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/repositories"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/shared/database"
)

var fixedNow = time.Date(2025, time.June, 10, 14, 30, 0, 0, time.UTC)

type fixture struct {
	sales   *SaleService
	strains *StrainService
	store   *audit.SQLiteStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "sales.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := repositories.NewStrainSQLiteRepo(db)
	cat := catalog.NewService(time.Minute, catalog.DefaultSource(), repositories.NewStrainSource("sqlite", repo))
	collector := metrics.New(prometheus.NewRegistry())
	store := audit.NewSQLiteStore(db)

	sales := NewSaleService(cat, store, collector, 0.5)
	sales.now = func() time.Time { return fixedNow }
	return fixture{
		sales:   sales,
		strains: NewStrainService(repo, cat, collector),
		store:   store,
	}
}

func TestSaleServiceParseRecordsLog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result := f.sales.Parse(ctx, "owes me 100")
	if result.Sale.SalePrice != 100 || !result.Sale.IsTick {
		t.Fatalf("unexpected sale %+v", result.Sale)
	}
	if len(result.NeedsReview) == 0 {
		t.Fatalf("expected review fields")
	}

	resp, err := f.sales.ListParseLogs(ctx, audit.ParseLogFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.TotalCount != 1 || resp.Logs[0].ID != result.ParseID || !resp.Logs[0].Flagged {
		t.Fatalf("expected the parse to be logged, got %+v", resp.Logs)
	}
}

func TestSaleServiceParseBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.sales.ParseBatch(ctx, models.ParseBatchRequest{
		Text: "Sold 3.5g of Blue Dream to Mike for $50 on May 15 with $30 profit\n\n   \nowes me 100\n",
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if resp.Count != 2 || resp.Flagged != 1 {
		t.Fatalf("expected 2 results with 1 flagged, got %d/%d", resp.Count, resp.Flagged)
	}
	if resp.Results[0].Sale.Strain != "Blue Dream" || resp.Results[0].ParseID == resp.Results[1].ParseID {
		t.Fatalf("unexpected results %+v", resp.Results)
	}

	// explicit lines win over text
	resp, err = f.sales.ParseBatch(ctx, models.ParseBatchRequest{Lines: []string{"owes me 5"}, Text: "ignored\nlines"})
	if err != nil || resp.Count != 1 {
		t.Fatalf("expected one line parsed, got %+v (%v)", resp, err)
	}
}

func TestSaleServiceParseBatchLimits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.sales.ParseBatch(ctx, models.ParseBatchRequest{Text: " \n\n"}); !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}

	lines := strings.Repeat("owes me 10\n", models.MaxBatchLines+1)
	if _, err := f.sales.ParseBatch(ctx, models.ParseBatchRequest{Text: lines}); !errors.Is(err, ErrBatchTooLarge) {
		t.Fatalf("expected ErrBatchTooLarge, got %v", err)
	}
}

func TestSaleServiceWithoutStore(t *testing.T) {
	svc := NewSaleService(catalog.NewService(time.Minute, catalog.DefaultSource()), nil, nil, 0.5)

	result := svc.Parse(context.Background(), "Sold 3.5g of Blue Dream to Mike")
	if result.Sale.Strain != "Blue Dream" {
		t.Fatalf("unexpected strain %q", result.Sale.Strain)
	}
	if _, err := svc.ListParseLogs(context.Background(), audit.ParseLogFilter{}); !errors.Is(err, ErrStoreNotConfigured) {
		t.Fatalf("expected ErrStoreNotConfigured, got %v", err)
	}
	if _, err := svc.PruneParseLogs(context.Background(), time.Hour); !errors.Is(err, ErrStoreNotConfigured) {
		t.Fatalf("expected ErrStoreNotConfigured, got %v", err)
	}
}

func TestSaleServicePruneParseLogs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.sales.Parse(ctx, "owes me 1")
	old, err := audit.NewParseLog(uuid.New(), saleparser.ParsedSale{RawInput: "owes me 2"}, nil)
	if err != nil {
		t.Fatalf("new parse log: %v", err)
	}
	old.CreatedAt = fixedNow.AddDate(0, 0, -90)
	if err := f.store.Record(ctx, old); err != nil {
		t.Fatalf("record: %v", err)
	}

	n, err := f.sales.PruneParseLogs(ctx, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 pruned log, got %d", n)
	}
}

func TestStrainServiceCreateRefreshesCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// before it is added only the regex fallback finds it
	if got := f.sales.Parse(ctx, "sold 3.5g of runts to jen").Sale.Confidence.Strain; got >= 1.0 {
		t.Fatalf("strain should be unknown before it is added, got confidence %v", got)
	}

	strain, err := f.strains.CreateStrain(ctx, &models.CreateStrainRequest{Name: "  Runtz ", Aliases: []string{"runts", " ", "RUNTZ"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if strain.Name != "Runtz" || len(strain.Aliases) != 1 {
		t.Fatalf("expected normalized strain, got %+v", strain)
	}

	result := f.sales.Parse(ctx, "sold 3.5g of runts to jen")
	if result.Sale.Strain != "Runtz" || result.Sale.Confidence.Strain != 1.0 {
		t.Fatalf("expected new alias to match, got %q (%v)", result.Sale.Strain, result.Sale.Confidence.Strain)
	}

	list := f.strains.ListStrains(ctx)
	if list.Total != len(list.Strains) || list.LoadedAt.IsZero() {
		t.Fatalf("unexpected list response %+v", list)
	}

	if _, err := f.strains.CreateStrain(ctx, &models.CreateStrainRequest{Name: "runtz"}); !errors.Is(err, repositories.ErrStrainExists) {
		t.Fatalf("expected ErrStrainExists, got %v", err)
	}
}

func TestStrainServiceValidation(t *testing.T) {
	svc := NewStrainService(nil, catalog.NewService(time.Minute, catalog.DefaultSource()), nil)
	ctx := context.Background()

	if _, err := svc.CreateStrain(ctx, &models.CreateStrainRequest{Name: "   "}); !errors.Is(err, ErrInvalidStrain) {
		t.Fatalf("expected ErrInvalidStrain, got %v", err)
	}
	if _, err := svc.CreateStrain(ctx, &models.CreateStrainRequest{Name: strings.Repeat("x", 101)}); !errors.Is(err, ErrInvalidStrain) {
		t.Fatalf("expected ErrInvalidStrain for long names, got %v", err)
	}
	if _, err := svc.CreateStrain(ctx, &models.CreateStrainRequest{Name: "Runtz"}); !errors.Is(err, ErrStoreNotConfigured) {
		t.Fatalf("expected ErrStoreNotConfigured, got %v", err)
	}

	n, err := svc.Refresh(ctx)
	if err != nil || n == 0 {
		t.Fatalf("expected built-in strains on refresh, got %d (%v)", n, err)
	}
}

func TestStrainServiceKnownStrainsGaugeOnFirstUse(t *testing.T) {
	reg := prometheus.NewRegistry()
	cat := catalog.NewService(time.Minute, catalog.DefaultSource())
	NewStrainService(nil, cat, metrics.New(reg))

	// first parse-side lookup loads the catalog through a cache miss
	names := cat.Names(context.Background())

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "sales_known_strains" {
			continue
		}
		if got := mf.GetMetric()[0].GetGauge().GetValue(); got != float64(len(names)) {
			t.Fatalf("expected gauge %d, got %v", len(names), got)
		}
		return
	}
	t.Fatalf("sales_known_strains not gathered")
}
