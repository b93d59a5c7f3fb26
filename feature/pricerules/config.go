package pricerules

import "fmt"

// Config locates the markup spreadsheet and describes its layout.
type Config struct {
	// Path is the local spreadsheet file. Ignored when Object is set.
	Path string `mapstructure:"path" default:"prices.xlsx"`
	// Object is the storage object name of the spreadsheet (e.g.
	// "rules/prices.xlsx"). When set, the loader reads from object
	// storage instead of the local filesystem.
	Object string `mapstructure:"object" default:""`
	// Sheet is the worksheet name; empty means the first sheet.
	Sheet string `mapstructure:"sheet" default:""`
	// ArticleColumn is the column letter holding external ids.
	ArticleColumn string `mapstructure:"article_column" default:"B"`
	// MarkupColumn is the column letter holding markup percentages.
	MarkupColumn string `mapstructure:"markup_column" default:"D"`
	// StartRow is the first data row (1-based), skipping headers.
	StartRow int `mapstructure:"start_row" default:"2"`
	// DeliveryFee is the flat delivery fee applied to every rule, in
	// currency units.
	DeliveryFee int64 `mapstructure:"delivery_fee" default:"500"`
}

// Validate reports invalid layout settings.
func (c Config) Validate() error {
	if c.Path == "" && c.Object == "" {
		return fmt.Errorf("rules: either path or object is required")
	}
	if c.ArticleColumn == "" || c.MarkupColumn == "" {
		return fmt.Errorf("rules: article_column and markup_column are required")
	}
	if c.StartRow < 1 {
		return fmt.Errorf("rules: start_row must be at least 1, got %d", c.StartRow)
	}
	if c.DeliveryFee < 0 {
		return fmt.Errorf("rules: delivery_fee must not be negative, got %d", c.DeliveryFee)
	}
	return nil
}
