// Package pricing turns ranked catalog matches into a cost estimate.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/spigell/rfp-responder/internal/matching"
)

const (
	PrimaryQuantity   = 100
	SecondaryQuantity = 50

	// A runner-up match is priced only at or above this percentage.
	SecondaryThreshold = 70

	copperMaterial = "Copper"
)

var (
	copperFactor  = decimal.RequireFromString("1.2")
	defaultFactor = decimal.RequireFromString("0.8")
	materialShare = decimal.RequireFromString("0.6")
	serviceRate   = decimal.RequireFromString("0.05")
)

// Item is a single priced line of the estimate.
type Item struct {
	SKU          string `json:"sku"`
	Description  string `json:"description"`
	BasePrice    int64  `json:"basePrice"`
	Quantity     int64  `json:"quantity"`
	MaterialCost int64  `json:"materialCost"`
	ServiceCost  int64  `json:"serviceCost"`
	TestingCost  int64  `json:"testingCost"`
	TotalCost    int64  `json:"totalCost"`
}

type Estimate struct {
	Items      []Item `json:"items"`
	GrandTotal int64  `json:"grandTotal"`
}

// Calculate prices the top match and, when it scores high enough, the runner-up.
func Calculate(matches []matching.Match) Estimate {
	estimate := Estimate{Items: []Item{}}
	if len(matches) == 0 {
		return estimate
	}

	estimate.Items = append(estimate.Items, priceLine(matches[0], PrimaryQuantity, PrimarySchedule))

	if len(matches) > 1 && matches[1].MatchPercentage >= SecondaryThreshold {
		estimate.Items = append(estimate.Items, priceLine(matches[1], SecondaryQuantity, SecondarySchedule))
	}

	for _, item := range estimate.Items {
		estimate.GrandTotal += item.TotalCost
	}

	return estimate
}

func priceLine(m matching.Match, quantity int64, schedule Schedule) Item {
	base := decimal.NewFromInt(m.BasePrice).Mul(decimal.NewFromInt(quantity))

	materialCost := base.Mul(materialFactor(m.Material)).Mul(materialShare).Round(0)
	serviceCost := materialCost.Mul(serviceRate).Round(0)
	testingCost := schedule.Fee(m.Voltage)

	item := Item{
		SKU:          m.SKU,
		Description:  m.Description,
		BasePrice:    m.BasePrice,
		Quantity:     quantity,
		MaterialCost: materialCost.IntPart(),
		ServiceCost:  serviceCost.IntPart(),
		TestingCost:  testingCost,
	}
	item.TotalCost = m.BasePrice*quantity + item.MaterialCost + item.ServiceCost + item.TestingCost

	return item
}

func materialFactor(material string) decimal.Decimal {
	if material == copperMaterial {
		return copperFactor
	}
	return defaultFactor
}
