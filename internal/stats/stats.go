// Package stats computes derived figures over a trade collection. Every
// function is a pure rescan of its input; at personal-journal scale the
// O(n) pass per query keeps results exactly consistent with the latest
// mutation without any cache to invalidate.
package stats

import (
	"time"

	"trade-journal-go/internal/calendar"
	"trade-journal-go/internal/models"
)

// TradesOnDay filters trades to those on the same calendar day as date,
// preserving input order.
func TradesOnDay(trades []models.Trade, date time.Time) []models.Trade {
	matched := make([]models.Trade, 0)
	for _, trade := range trades {
		if calendar.SameDay(trade.Date, date) {
			matched = append(matched, trade)
		}
	}
	return matched
}

// PnLForDay sums profit over trades on the same calendar day as date.
func PnLForDay(trades []models.Trade, date time.Time) float64 {
	var sum float64
	for _, trade := range trades {
		if calendar.SameDay(trade.Date, date) {
			sum += trade.Profit
		}
	}
	return sum
}

// PnLForWeek sums profit over trades in the week containing date.
func PnLForWeek(b calendar.Bucketer, trades []models.Trade, date time.Time) float64 {
	var sum float64
	for _, trade := range trades {
		if b.InWeek(trade.Date, date) {
			sum += trade.Profit
		}
	}
	return sum
}

// PnLForMonth sums profit over trades in the month containing anchor.
func PnLForMonth(trades []models.Trade, anchor time.Time) float64 {
	var sum float64
	for _, trade := range trades {
		if calendar.SameMonth(trade.Date, anchor) {
			sum += trade.Profit
		}
	}
	return sum
}

// TotalPnL sums profit over the whole collection.
func TotalPnL(trades []models.Trade) float64 {
	var sum float64
	for _, trade := range trades {
		sum += trade.Profit
	}
	return sum
}

// WinRate returns the percentage of trades with strictly positive profit,
// 0 for an empty collection.
func WinRate(trades []models.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	var wins int
	for _, trade := range trades {
		if trade.Profit > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(trades)) * 100
}

// ProfitFactor returns gross profit divided by gross loss. With no losing
// trades the divisor saturates at 1 so the result stays finite.
func ProfitFactor(trades []models.Trade) float64 {
	var grossProfit, grossLoss float64
	for _, trade := range trades {
		if trade.Profit > 0 {
			grossProfit += trade.Profit
		} else {
			grossLoss -= trade.Profit
		}
	}
	if grossLoss == 0 {
		return grossProfit
	}
	return grossProfit / grossLoss
}

// Compute derives the full statistics block for the collection.
func Compute(trades []models.Trade) models.TradeStats {
	return models.TradeStats{
		TotalTrades:  len(trades),
		WinRate:      WinRate(trades),
		ProfitFactor: ProfitFactor(trades),
		TotalProfit:  TotalPnL(trades),
	}
}

// DailySeries returns the per-day P&L for every day of the month containing
// anchor, in day-of-month order.
func DailySeries(b calendar.Bucketer, trades []models.Trade, anchor time.Time) []float64 {
	days := b.DaysOfMonth(anchor)
	series := make([]float64, len(days))
	for i, day := range days {
		series[i] = PnLForDay(trades, day)
	}
	return series
}
