package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"trade-journal-go/internal/calendar"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/storage"
)

func setupService(t *testing.T) *Service {
	store := NewStore(storage.NewMemory(), "trades", zap.NewNop())
	assert.NoError(t, store.Load())
	return NewService(store, calendar.New(time.Sunday))
}

func TestServiceDayQueries(t *testing.T) {
	// Arrange: two trades on March 4, one elsewhere.
	svc := setupService(t)
	_, err := svc.Store().Add(draft("AAPL", models.SideLong, 150.00, 4, ""))
	assert.NoError(t, err)
	_, err = svc.Store().Add(draft("AAPL", models.SideShort, -50.00, 4, "stopped out"))
	assert.NoError(t, err)
	_, err = svc.Store().Add(draft("TSLA", models.SideLong, 30.00, 11, ""))
	assert.NoError(t, err)

	day := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local)

	// Assert
	assert.InDelta(t, 100.00, svc.PnLForDay(day), 1e-9)
	assert.Len(t, svc.TradesOnDay(day), 2)
	assert.InDelta(t, 100.00, svc.PnLForWeek(day), 1e-9)

	stats := svc.Stats()
	assert.Equal(t, 3, stats.TotalTrades)
	assert.InDelta(t, 130.00, stats.TotalProfit, 1e-9)
}

func TestServiceQueriesReflectLatestMutation(t *testing.T) {
	svc := setupService(t)
	day := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local)

	created, err := svc.Store().Add(draft("AAPL", models.SideLong, 150.00, 4, ""))
	assert.NoError(t, err)
	assert.InDelta(t, 150.00, svc.PnLForDay(day), 1e-9)

	// No caching anywhere: a removal is visible on the very next query.
	assert.NoError(t, svc.Store().Remove(created.ID))
	assert.Zero(t, svc.PnLForDay(day))
	assert.Empty(t, svc.TradesOnDay(day))
}

func TestServiceMonthlyTotal(t *testing.T) {
	svc := setupService(t)
	_, err := svc.Store().Add(draft("AAPL", models.SideLong, 100.00, 4, ""))
	assert.NoError(t, err)
	_, err = svc.Store().Add(draft("MSFT", models.SideShort, -40.00, 28, ""))
	assert.NoError(t, err)

	april := time.Date(2024, time.April, 10, 0, 0, 0, 0, time.Local)
	march := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.Local)

	// The monthly total is bounded by the month, not all-time.
	assert.InDelta(t, 60.00, svc.MonthlyTotal(march), 1e-9)
	assert.Zero(t, svc.MonthlyTotal(april))
	assert.InDelta(t, 60.00, svc.TotalPnL(), 1e-9)
}

func TestServiceCalendar(t *testing.T) {
	svc := setupService(t)
	_, err := svc.Store().Add(draft("AAPL", models.SideLong, 150.00, 4, ""))
	assert.NoError(t, err)
	_, err = svc.Store().Add(draft("AAPL", models.SideShort, -50.00, 4, ""))
	assert.NoError(t, err)

	view := svc.Calendar(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local))

	assert.Equal(t, "2024-03", view.Month)
	assert.Equal(t, "Sunday", view.WeekStartsOn)
	assert.InDelta(t, 100.00, view.MonthlyTotal, 1e-9)

	// March 2024 starts on a Friday; the Sunday-aligned grid leads with
	// February 25 and ends on March 31.
	assert.Len(t, view.Cells, 36)
	assert.False(t, view.Cells[0].InMonth)
	assert.Equal(t, 25, view.Cells[0].Date.Day())

	var march4 CalendarCell
	for _, cell := range view.Cells {
		if cell.InMonth && cell.Date.Day() == 4 {
			march4 = cell
		}
	}
	assert.Equal(t, 2, march4.TradeCount)
	assert.InDelta(t, 100.00, march4.PnL, 1e-9)
}

func TestServiceDailySeries(t *testing.T) {
	svc := setupService(t)
	_, err := svc.Store().Add(draft("AAPL", models.SideLong, 150.00, 4, ""))
	assert.NoError(t, err)

	series := svc.DailySeries(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local))
	assert.Len(t, series, 31)
	assert.InDelta(t, 150.00, series[3], 1e-9)
}
