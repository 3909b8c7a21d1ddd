package report

import "github.com/shopspring/decimal"

var (
	weightSales   = decimal.RequireFromString("0.4")
	weightRevenue = decimal.RequireFromString("0.3")
	weightRating  = decimal.RequireFromString("0.2")
	weightReviews = decimal.RequireFromString("0.1")
	revenueUnit   = decimal.NewFromInt(1000)
)

// PopularityScore = 0.4*qty + 0.3*(revenue/1000) + 0.2*avgRating + 0.1*reviewCount.
func PopularityScore(qty int, revenue decimal.Decimal, avgRating float64, reviewCount int) decimal.Decimal {
	return weightSales.Mul(decimal.NewFromInt(int64(qty))).
		Add(weightRevenue.Mul(revenue.Div(revenueUnit))).
		Add(weightRating.Mul(decimal.NewFromFloat(avgRating))).
		Add(weightReviews.Mul(decimal.NewFromInt(int64(reviewCount))))
}
