package journal

import (
	"time"

	"trade-journal-go/internal/calendar"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/stats"
)

// Service is the query surface the presentation layer calls. It binds the
// aggregation functions and date bucketing to the store's current snapshot
// at call time; every query recomputes from the full collection, so results
// always reflect the latest mutation.
type Service struct {
	store    *Store
	bucketer calendar.Bucketer
}

// NewService creates a Service over the given store and bucketer.
func NewService(store *Store, bucketer calendar.Bucketer) *Service {
	return &Service{store: store, bucketer: bucketer}
}

// Store exposes the mutation surface.
func (s *Service) Store() *Store { return s.store }

// TradesOnDay returns the trades logged on the given calendar day.
func (s *Service) TradesOnDay(date time.Time) []models.Trade {
	return stats.TradesOnDay(s.store.All(), date)
}

// PnLForDay returns the summed profit for the given calendar day.
func (s *Service) PnLForDay(date time.Time) float64 {
	return stats.PnLForDay(s.store.All(), date)
}

// PnLForWeek returns the summed profit for the week containing date.
func (s *Service) PnLForWeek(date time.Time) float64 {
	return stats.PnLForWeek(s.bucketer, s.store.All(), date)
}

// MonthlyTotal returns the summed profit for the month containing anchor.
func (s *Service) MonthlyTotal(anchor time.Time) float64 {
	return stats.PnLForMonth(s.store.All(), anchor)
}

// TotalPnL returns the all-time summed profit.
func (s *Service) TotalPnL() float64 {
	return stats.TotalPnL(s.store.All())
}

// Stats returns the derived statistics block for the whole collection.
func (s *Service) Stats() models.TradeStats {
	return stats.Compute(s.store.All())
}

// DailySeries returns the per-day P&L for each day of anchor's month.
func (s *Service) DailySeries(anchor time.Time) []float64 {
	return stats.DailySeries(s.bucketer, s.store.All(), anchor)
}

// CalendarCell is one day of the rendered month grid.
type CalendarCell struct {
	Date       time.Time `json:"date"`
	InMonth    bool      `json:"inMonth"`
	PnL        float64   `json:"pnl"`
	TradeCount int       `json:"tradeCount"`
}

// MonthView is the full payload for the calendar page of one month.
type MonthView struct {
	Month        string         `json:"month"`
	WeekStartsOn string         `json:"weekStartsOn"`
	MonthlyTotal float64        `json:"monthlyTotal"`
	Cells        []CalendarCell `json:"cells"`
}

// Calendar builds the month grid for the month containing anchor. Cells
// cover the week-aligned grid; the monthly total covers only the anchor
// month, leading out-of-month cells included in the grid do not count
// toward it.
func (s *Service) Calendar(anchor time.Time) MonthView {
	trades := s.store.All()
	days := s.bucketer.MonthGrid(anchor)
	cells := make([]CalendarCell, len(days))
	for i, day := range days {
		onDay := stats.TradesOnDay(trades, day)
		cells[i] = CalendarCell{
			Date:       day,
			InMonth:    calendar.SameMonth(day, anchor),
			PnL:        stats.TotalPnL(onDay),
			TradeCount: len(onDay),
		}
	}
	return MonthView{
		Month:        anchor.Format("2006-01"),
		WeekStartsOn: s.bucketer.WeekStartsOn.String(),
		MonthlyTotal: stats.PnLForMonth(trades, anchor),
		Cells:        cells,
	}
}
