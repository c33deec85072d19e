package report

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/autogaap/internal/ledger"
)

// Colors for net balance bars.
const (
	PositiveFill   = "rgba(40, 167, 69, 0.6)"
	PositiveBorder = "#28a745"
	NegativeFill   = "rgba(220, 53, 69, 0.6)"
	NegativeBorder = "#dc3545"
)

// ChartLabel names the net balance dataset.
const ChartLabel = "Net balance (Debit - Credit)"

// ChartConfig is a Chart.js bar chart configuration.
type ChartConfig struct {
	Type    string       `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

// ChartData holds one bar per account type, in type order.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// ChartDataset is a Chart.js dataset.
type ChartDataset struct {
	Label           string        `json:"label"`
	Data            []json.Number `json:"data"`
	BackgroundColor []string      `json:"backgroundColor"`
	BorderColor     []string      `json:"borderColor"`
	BorderWidth     int           `json:"borderWidth"`
}

type ChartOptions struct {
	Responsive          bool        `json:"responsive"`
	MaintainAspectRatio bool        `json:"maintainAspectRatio"`
	Scales              ChartScales `json:"scales"`
}

type ChartScales struct {
	Y struct {
		BeginAtZero bool `json:"beginAtZero"`
	} `json:"y"`
}

// Chart builds the net balance bar chart for a summary. Types with a net of
// zero or more are green, the rest red.
func Chart(s ledger.Summary) ChartConfig {
	ds := ChartDataset{
		Label:           ChartLabel,
		Data:            []json.Number{},
		BackgroundColor: []string{},
		BorderColor:     []string{},
		BorderWidth:     1,
	}
	labels := []string{}
	for _, t := range s.TypeOrder {
		net := s.Type(t).Net
		labels = append(labels, TitleCase(string(t)))
		ds.Data = append(ds.Data, number(net))
		if net.IsNegative() {
			ds.BackgroundColor = append(ds.BackgroundColor, NegativeFill)
			ds.BorderColor = append(ds.BorderColor, NegativeBorder)
		} else {
			ds.BackgroundColor = append(ds.BackgroundColor, PositiveFill)
			ds.BorderColor = append(ds.BorderColor, PositiveBorder)
		}
	}

	cfg := ChartConfig{
		Type: "bar",
		Data: ChartData{Labels: labels, Datasets: []ChartDataset{ds}},
		Options: ChartOptions{
			Responsive:          true,
			MaintainAspectRatio: false,
		},
	}
	cfg.Options.Scales.Y.BeginAtZero = true
	return cfg
}

// number renders an amount as a JSON number with two decimal places.
func number(d decimal.Decimal) json.Number {
	return json.Number(ledger.Round(d).StringFixed(ledger.Places))
}
