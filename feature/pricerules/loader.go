package pricerules

import (
	"context"
	"fmt"
	"strings"

	"market-sync/core/storage"
	"market-sync/core/syncer"

	"github.com/minio/minio-go/v7"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Loader reads price rules from a spreadsheet. It implements
// syncer.RuleSource.
type Loader struct {
	cfg    Config
	client storage.Client // nil means local file only
	bucket string
	logger *zap.Logger
}

// NewLoader creates a rule loader. client may be nil when rules are read
// from the local filesystem.
func NewLoader(cfg Config, client storage.Client, bucket string, logger *zap.Logger) *Loader {
	return &Loader{cfg: cfg, client: client, bucket: bucket, logger: logger}
}

// Load reads the configured spreadsheet and returns the rule set. Markup
// values keep four decimal places; rows with an empty article cell are
// skipped, and an unparseable markup fails the load.
func (l *Loader) Load(ctx context.Context) (syncer.RuleSet, error) {
	f, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := l.cfg.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("rule spreadsheet has no sheets")
		}
		sheet = sheets[0]
	}

	artCol, err := excelize.ColumnNameToNumber(l.cfg.ArticleColumn)
	if err != nil {
		return nil, fmt.Errorf("invalid article column %q: %w", l.cfg.ArticleColumn, err)
	}
	markupCol, err := excelize.ColumnNameToNumber(l.cfg.MarkupColumn)
	if err != nil {
		return nil, fmt.Errorf("invalid markup column %q: %w", l.cfg.MarkupColumn, err)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	fee := decimal.NewFromInt(l.cfg.DeliveryFee)
	rules := make(syncer.RuleSet)
	for i := l.cfg.StartRow - 1; i < len(rows); i++ {
		article := cell(rows[i], artCol)
		if article == "" {
			continue
		}
		rawMarkup := cell(rows[i], markupCol)
		markup, err := decimal.NewFromString(rawMarkup)
		if err != nil {
			return nil, fmt.Errorf("row %d: markup %q for article %q: %w", i+1, rawMarkup, article, err)
		}
		rules[article] = syncer.PriceRule{
			MarkupPercent: markup.Round(4),
			DeliveryFee:   fee,
		}
	}

	l.logger.Info("price rules loaded",
		zap.String("sheet", sheet),
		zap.Int("rules", len(rules)),
	)
	return rules, nil
}

func (l *Loader) open(ctx context.Context) (*excelize.File, error) {
	if l.cfg.Object != "" && l.client != nil {
		rc, err := l.client.GetObject(ctx, l.bucket, l.cfg.Object, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("fetching rule spreadsheet %q: %w", l.cfg.Object, err)
		}
		defer rc.Close()
		f, err := excelize.OpenReader(rc)
		if err != nil {
			return nil, fmt.Errorf("parsing rule spreadsheet %q: %w", l.cfg.Object, err)
		}
		return f, nil
	}

	f, err := excelize.OpenFile(l.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening rule spreadsheet %q: %w", l.cfg.Path, err)
	}
	return f, nil
}

// cell returns the trimmed value at the 1-based column, or "" when the
// row is shorter than the column.
func cell(row []string, col int) string {
	if col-1 >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col-1])
}
