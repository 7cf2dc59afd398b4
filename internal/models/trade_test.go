package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSide(t *testing.T) {
	t.Run("DefaultsToLong", func(t *testing.T) {
		side, err := ParseSide("")
		assert.NoError(t, err)
		assert.Equal(t, SideLong, side)
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		side, err := ParseSide("short")
		assert.NoError(t, err)
		assert.Equal(t, SideShort, side)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := ParseSide("SIDEWAYS")
		assert.Error(t, err)
	})
}

func TestTradeDraftValidate(t *testing.T) {
	valid := TradeDraft{
		Symbol: "AAPL",
		Side:   SideLong,
		Profit: 150,
		Date:   time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local),
	}
	assert.NoError(t, valid.Validate())

	t.Run("MissingSymbol", func(t *testing.T) {
		draft := valid
		draft.Symbol = "   "
		assert.Error(t, draft.Validate())
	})

	t.Run("MissingDate", func(t *testing.T) {
		draft := valid
		draft.Date = time.Time{}
		assert.Error(t, draft.Validate())
	})

	t.Run("NonFiniteProfit", func(t *testing.T) {
		draft := valid
		draft.Profit = math.NaN()
		assert.Error(t, draft.Validate())
	})

	t.Run("ZeroProfitAllowed", func(t *testing.T) {
		draft := valid
		draft.Profit = 0
		assert.NoError(t, draft.Validate())
	})
}

func TestParseLocalDate(t *testing.T) {
	date, err := ParseLocalDate("2024-03-04")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local), date)
	assert.Equal(t, time.Local, date.Location())

	_, err = ParseLocalDate("04/03/2024")
	assert.Error(t, err)
}

func TestTradeCodecRoundTrip(t *testing.T) {
	trades := []Trade{
		{
			ID:     "1709510400000",
			Symbol: "AAPL",
			Side:   SideLong,
			Profit: 150.00,
			Date:   time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local),
			Notes:  "",
		},
		{
			ID:     "1709510400001",
			Symbol: "AAPL",
			Side:   SideShort,
			Profit: -50.00,
			Date:   time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local),
			Notes:  "stopped out",
		},
	}

	encoded, err := EncodeTrades(trades)
	assert.NoError(t, err)

	decoded, err := DecodeTrades(encoded)
	assert.NoError(t, err)
	assert.Len(t, decoded, 2)
	for i := range trades {
		assert.Equal(t, trades[i].ID, decoded[i].ID)
		assert.Equal(t, trades[i].Symbol, decoded[i].Symbol)
		assert.Equal(t, trades[i].Side, decoded[i].Side)
		assert.Equal(t, trades[i].Profit, decoded[i].Profit)
		assert.True(t, trades[i].Date.Equal(decoded[i].Date), "date must survive the round trip")
		assert.Equal(t, trades[i].Notes, decoded[i].Notes)
	}
}

func TestDecodeTrades(t *testing.T) {
	t.Run("EmptyValue", func(t *testing.T) {
		trades, err := DecodeTrades("")
		assert.NoError(t, err)
		assert.NotNil(t, trades)
		assert.Empty(t, trades)
	})

	t.Run("NullValue", func(t *testing.T) {
		trades, err := DecodeTrades("null")
		assert.NoError(t, err)
		assert.NotNil(t, trades)
		assert.Empty(t, trades)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := DecodeTrades("{not json")
		assert.Error(t, err)
	})
}

func TestEncodeTradesNil(t *testing.T) {
	encoded, err := EncodeTrades(nil)
	assert.NoError(t, err)
	assert.Equal(t, "[]", encoded)
}
