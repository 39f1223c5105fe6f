package banking

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Analytics aggregates an account's history for a period. Records are final
// by the time they are readable, so the aggregation never disagrees with a
// later read of the same period.
func (s *service) Analytics(ctx context.Context, userID, period, number string) (*AnalyticsResponse, error) {
	account, err := s.resolveAccount(userID, number)

	if err != nil {
		return nil, err
	}

	now := s.timeProvider.NowUTC()

	var start time.Time
	var days int64

	switch period {
	case "week":
		start = now.AddDate(0, 0, -7)
		days = 7
	case "year":
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		days = 365
	default: // month
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		days = 30
	}

	records := s.store.Transactions(account.Number, 0)

	byCategory := make(map[string]decimal.Decimal)
	totalSpent := decimal.Zero
	totalIncome := decimal.Zero

	for _, record := range records {
		if record.Date.Before(start) {
			continue
		}

		if record.Direction == TxDebit {
			totalSpent = totalSpent.Add(record.Amount)
			byCategory[record.Category] = byCategory[record.Category].Add(record.Amount)
		} else {
			totalIncome = totalIncome.Add(record.Amount)
		}
	}

	categories := make([]CategoryAmount, 0, len(byCategory))

	for category, amount := range byCategory {
		categories = append(categories, CategoryAmount{Category: category, Amount: amount})
	}

	// heaviest spend first, the order the client charts them in
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Amount.GreaterThan(categories[j].Amount)
	})

	// the week chart plots real per-day spending; longer periods have no
	// day-level series
	var daily []DayAmount

	if period == "week" {
		daily = make([]DayAmount, 0, 7)

		for i := 6; i >= 0; i-- {
			day := now.AddDate(0, 0, -i)
			total := decimal.Zero

			for _, record := range records {
				if record.Direction == TxDebit && sameDay(record.Date, day) {
					total = total.Add(record.Amount)
				}
			}

			daily = append(daily, DayAmount{Label: day.Format("Mon"), Amount: total})
		}
	}

	return &AnalyticsResponse{
		ByCategory: categories,
		Daily:      daily,
		Insights: AnalyticsInsights{
			TotalSpent:  totalSpent,
			TotalIncome: totalIncome,
			AvgDaily:    totalSpent.DivRound(decimal.NewFromInt(days), 2),
		},
	}, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
