package rewards

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/snapbill/snapbill_backend/internal/core/domain"
)

var (
	hundred    = decimal.NewFromInt(100)
	fnbFactor  = decimal.NewFromFloat(1.5)
	groceryPts = int64(5)
)

// Result holds a computed point award and the human-readable explanation of
// how it was arrived at. The explanation is display-only; nothing parses it.
type Result struct {
	Points      int64
	Explanation string
}

// ComputeReward converts a receipt total and category into a point award.
// It is pure and deterministic: the same (total, category) pair always yields
// the same result, and it never fails (an unrecognized category simply earns
// the base tier).
//
// The rules, in order:
//  1. Base award of one point per 100 currency units spent.
//  2. Grocery receipts earn a flat +5 bonus; otherwise Food & Beverage
//     receipts have their running total multiplied by 1.5 and floored.
//  3. Any strictly positive total earns at least one point.
//
// Callers must pass a non-negative total; the validator rejects negative
// amounts before they reach this function.
func ComputeReward(total decimal.Decimal, category string) Result {
	basePoints := total.Div(hundred).IntPart()
	points := basePoints
	explanation := fmt.Sprintf("Base: %d pts (₹100 = 1pt). ", basePoints)

	switch category {
	case domain.CategoryGrocery:
		points += groceryPts
		explanation += fmt.Sprintf("Bonus: +%d pts (Grocery Tier).", groceryPts)
	case domain.CategoryFoodBeverage:
		points = decimal.NewFromInt(points).Mul(fnbFactor).IntPart()
		explanation += "Multiplier: 1.5x (F&B Promotion)."
	}

	// Any nonzero purchase earns at least one point.
	if points == 0 && total.IsPositive() {
		points = 1
	}

	return Result{Points: points, Explanation: explanation}
}
