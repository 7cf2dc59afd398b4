package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Side is the direction of a trade.
type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// ParseSide converts user input into a Side. An empty input defaults to
// LONG; anything else must match one of the two values exactly.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return SideLong, nil
	case SideLong:
		return SideLong, nil
	case SideShort:
		return SideShort, nil
	default:
		return "", fmt.Errorf("invalid side %q", s)
	}
}

// Trade represents a single logged position outcome.
type Trade struct {
	ID     string    `json:"id"`
	Symbol string    `json:"symbol"`
	Side   Side      `json:"side"`
	Profit float64   `json:"profit"`
	Date   time.Time `json:"date"`
	Notes  string    `json:"notes"`
}

// TradeDraft is a trade as submitted by the form, before an id is assigned.
type TradeDraft struct {
	Symbol string    `json:"symbol"`
	Side   Side      `json:"side"`
	Profit float64   `json:"profit"`
	Date   time.Time `json:"date"`
	Notes  string    `json:"notes"`
}

// Validate rejects drafts that must not reach the store.
func (d *TradeDraft) Validate() error {
	if strings.TrimSpace(d.Symbol) == "" {
		return fmt.Errorf("symbol is required")
	}
	if d.Side != SideLong && d.Side != SideShort {
		return fmt.Errorf("invalid side %q", d.Side)
	}
	if math.IsNaN(d.Profit) || math.IsInf(d.Profit, 0) {
		return fmt.Errorf("profit must be a finite number")
	}
	if d.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// TradeStats holds statistics derived from a trade collection. It is
// computed on demand and never persisted.
type TradeStats struct {
	TotalTrades  int     `json:"totalTrades"`
	WinRate      float64 `json:"winRate"`
	ProfitFactor float64 `json:"profitFactor"`
	TotalProfit  float64 `json:"totalProfit"`
}

// ParseLocalDate parses a "YYYY-MM-DD" form input as local midnight.
// Parsing in UTC would shift the trade into the previous or next calendar
// day for any non-UTC user, so the local location is mandatory here.
func ParseLocalDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// EncodeTrades serializes the collection for the key-value slot.
func EncodeTrades(trades []Trade) (string, error) {
	if trades == nil {
		trades = []Trade{}
	}
	data, err := json.Marshal(trades)
	if err != nil {
		return "", fmt.Errorf("failed to encode trades: %w", err)
	}
	return string(data), nil
}

// DecodeTrades reconstructs the collection from the key-value slot. An
// empty value yields an empty collection; dates come back as time values.
func DecodeTrades(data string) ([]Trade, error) {
	if strings.TrimSpace(data) == "" {
		return []Trade{}, nil
	}
	var trades []Trade
	if err := json.Unmarshal([]byte(data), &trades); err != nil {
		return nil, fmt.Errorf("failed to decode trades: %w", err)
	}
	if trades == nil {
		trades = []Trade{}
	}
	return trades, nil
}
