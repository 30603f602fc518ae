package core

import (
	"testing"
)

func TestInvestmentMetrics(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		purchase string
		current  string
		value    string
		roi      string
		roiPct   string
	}{
		{
			name:     "gain",
			quantity: "10", purchase: "100", current: "120",
			value: "1200", roi: "200", roiPct: "20",
		},
		{
			name:     "loss",
			quantity: "5", purchase: "40", current: "30",
			value: "150", roi: "-50", roiPct: "-25",
		},
		{
			name:     "flat",
			quantity: "3", purchase: "10", current: "10",
			value: "30", roi: "0", roiPct: "0",
		},
		{
			name:     "fractional quantity",
			quantity: "0.5", purchase: "200", current: "250",
			value: "125", roi: "25", roiPct: "25",
		},
		{
			name:     "zero purchase price yields zero percentage",
			quantity: "10", purchase: "0", current: "50",
			value: "500", roi: "500", roiPct: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Investment{
				Quantity:      dec(tt.quantity),
				PurchasePrice: dec(tt.purchase),
				CurrentPrice:  dec(tt.current),
			}
			m := inv.Metrics()

			if !m.TotalValue.Equal(dec(tt.value)) {
				t.Errorf("totalValue = %s, want %s", m.TotalValue, tt.value)
			}
			if !m.ROI.Equal(dec(tt.roi)) {
				t.Errorf("roi = %s, want %s", m.ROI, tt.roi)
			}
			if !m.ROIPercentage.Equal(dec(tt.roiPct)) {
				t.Errorf("roiPercentage = %s, want %s", m.ROIPercentage, tt.roiPct)
			}
		})
	}
}

func TestSummarizePortfolio(t *testing.T) {
	investments := []Investment{
		{Quantity: dec("10"), PurchasePrice: dec("100"), CurrentPrice: dec("120")},
		{Quantity: dec("2"), PurchasePrice: dec("50"), CurrentPrice: dec("40")},
	}

	s := SummarizePortfolio(investments)

	if !s.TotalValue.Equal(dec("1280")) {
		t.Errorf("totalValue = %s, want 1280", s.TotalValue)
	}
	if !s.TotalROI.Equal(dec("180")) {
		t.Errorf("totalROI = %s, want 180", s.TotalROI)
	}
	if s.Holdings != 2 {
		t.Errorf("holdings = %d, want 2", s.Holdings)
	}
}

func TestSummarizePortfolio_Empty(t *testing.T) {
	s := SummarizePortfolio(nil)
	if !s.TotalValue.IsZero() || !s.TotalROI.IsZero() || s.Holdings != 0 {
		t.Errorf("empty portfolio should be all zero, got %+v", s)
	}
}
