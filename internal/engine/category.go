package engine

import (
	"github.com/staypulse/pricingservice/internal/domain"
)

// ApplyCategoryAdjustment layers the room-category and brand multipliers on
// top of an event-driven adjustment. The event-factor cap applies to the
// event component only; the composed factor may exceed it once room and
// brand multipliers are in. Percent increase is recomputed against the
// original base price so it reflects the end-to-end change.
func (e *Engine) ApplyCategoryAdjustment(res domain.AdjustmentResult, roomType, unitName string) domain.AdjustmentResult {
	roomFactor := 1.0
	switch {
	case containsAny(roomType, e.rules.PremiumRoomKeywords):
		roomFactor = e.rules.PremiumRoomFactor
	case containsAny(roomType, e.rules.BudgetRoomKeywords):
		roomFactor = e.rules.BudgetRoomFactor
	}

	brandFactor := 1.0
	if containsAny(unitName, e.rules.PremiumBrandKeywords) {
		brandFactor = e.rules.PremiumBrandFactor
	}

	res.Unit = unitName
	res.RoomType = roomType
	res.AdjustedPrice = round2(res.AdjustedPrice * roomFactor * brandFactor)
	res.PercentIncrease = round2((res.AdjustedPrice - res.OriginalPrice) / res.OriginalPrice * 100)
	res.Breakdown.RoomFactor = roomFactor
	res.Breakdown.BrandFactor = brandFactor
	res.Breakdown.TotalFactor = res.Breakdown.TotalFactor * roomFactor * brandFactor
	return res
}
