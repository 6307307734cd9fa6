// Package table shapes products into the panel's eight-column frame.
package table

import (
	"github.com/imrulkk89/ebiw-grafana-ui/internal/domain"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/frame"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/theme"
)

// FrameName is the name of the frame produced by Build.
const FrameName = "products"

// Column names, in display order.
const (
	ColTitle       = "Title"
	ColDescription = "Description"
	ColPrice       = "Price"
	ColDiscount    = "Discount"
	ColBrand       = "Brand"
	ColCategory    = "Category"
	ColStock       = "Stock"
	ColRating      = "Rating"
)

// Columns lists the column names in display order.
var Columns = []string{
	ColTitle, ColDescription, ColPrice, ColDiscount,
	ColBrand, ColCategory, ColStock, ColRating,
}

// Rating gauge domain and the value at which it turns green.
const (
	RatingMin  = 0.0
	RatingMax  = 5.0
	RatingGood = 2.5
)

func fields() []*frame.Field {
	centered := func(width int) frame.CustomConfig {
		return frame.CustomConfig{Align: frame.AlignCenter, Width: width}
	}

	return []*frame.Field{
		{Name: ColTitle, Type: frame.FieldTypeString},
		{Name: ColDescription, Type: frame.FieldTypeString, Config: frame.FieldConfig{Custom: centered(300)}},
		{Name: ColPrice, Type: frame.FieldTypeNumber, Config: frame.FieldConfig{
			Unit:     frame.UnitCurrencyUSD,
			Decimals: frame.IntPtr(0),
			Custom:   centered(80),
		}},
		{Name: ColDiscount, Type: frame.FieldTypeNumber, Config: frame.FieldConfig{
			Unit:     frame.UnitPercent,
			Decimals: frame.IntPtr(2),
			Custom:   centered(80),
		}},
		{Name: ColBrand, Type: frame.FieldTypeString, Config: frame.FieldConfig{Custom: centered(80)}},
		{Name: ColCategory, Type: frame.FieldTypeString},
		{Name: ColStock, Type: frame.FieldTypeNumber, Config: frame.FieldConfig{
			Decimals: frame.IntPtr(0),
			Custom:   centered(80),
		}},
		{Name: ColRating, Type: frame.FieldTypeNumber, Config: frame.FieldConfig{
			Decimals: frame.IntPtr(2),
			Min:      frame.FloatPtr(RatingMin),
			Max:      frame.FloatPtr(RatingMax),
			Thresholds: &frame.ThresholdsConfig{
				Mode: frame.ThresholdsAbsolute,
				Steps: []frame.Threshold{
					{Value: RatingMin, Color: "blue"},
					{Value: RatingGood, Color: "green"},
				},
			},
			Custom: frame.CustomConfig{Width: 100, DisplayMode: frame.DisplayModeGradientGauge},
		}},
	}
}

// row returns p's values in Columns order.
func row(p domain.Product) []any {
	return []any{
		p.Title,
		p.Description,
		p.Price,
		p.DiscountPercentage,
		p.Brand,
		p.Category,
		p.Stock,
		p.Rating,
	}
}

// Build returns the product frame styled for th. Rows follow the order of
// products and values are copied as is.
func Build(th theme.Theme, products []domain.Product) []*frame.Frame {
	f := frame.New(FrameName, fields()...)
	for _, p := range products {
		if err := f.AppendRow(row(p)...); err != nil {
			panic(err)
		}
	}

	return frame.ApplyFieldOverrides(frame.ApplyOptions{
		Data:             []*frame.Frame{f},
		FieldConfig:      frame.FieldConfigSource{},
		Theme:            th,
		ReplaceVariables: func(s string) string { return s },
	})
}
