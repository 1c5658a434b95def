package metrics

import "github.com/profitlens/backend-go/internal/domain"

// SimulatePromo prices a discount promotion against an estimated sales
// lift: the discounted price is applied to the lifted weekly volume and
// compared with the current weekly profit.
func SimulatePromo(p domain.Product, discountPercent, liftPercent float64) domain.PromoSimulation {
	newPrice := p.SellingPrice * (1 - discountPercent/100)
	newUnits := float64(p.UnitsSoldWeek) * (1 + liftPercent/100)

	return domain.PromoSimulation{
		ProductID:       p.ID,
		DiscountPercent: discountPercent,
		LiftPercent:     liftPercent,
		NewPrice:        newPrice,
		CurrentProfit:   (p.SellingPrice - p.PurchasePrice) * float64(p.UnitsSoldWeek),
		SimulatedProfit: (newPrice - p.PurchasePrice) * newUnits,
	}
}
