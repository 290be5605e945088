package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrMalformedRecord = errors.New("malformed history record")

// HistoryRecord is one line of the order history log:
//
//	customer|January 2, 2006 at 3:04pm|790.0|Big Mac,Small Fries
//
// Fields are kept in their text form so a parsed line serialises back to the
// same bytes. Names containing '|' or ',' are not escaped.
type HistoryRecord struct {
	Customer      string   `json:"customer"`
	PlacedAt      string   `json:"placed_at"`
	TotalCalories string   `json:"total_calories"`
	Items         []string `json:"items"`
}

func ParseHistoryRecord(line string) (HistoryRecord, error) {
	fields := strings.Split(line, HistoryFieldSeparator)
	if len(fields) != historyFieldCount {
		return HistoryRecord{}, fmt.Errorf("%w: %d fields", ErrMalformedRecord, len(fields))
	}

	var items []string
	if fields[3] != "" {
		items = strings.Split(fields[3], HistoryItemSeparator)
	}

	return HistoryRecord{
		Customer:      fields[0],
		PlacedAt:      fields[1],
		TotalCalories: fields[2],
		Items:         items,
	}, nil
}

// String renders the record without a trailing newline.
func (r HistoryRecord) String() string {
	return strings.Join([]string{
		r.Customer,
		r.PlacedAt,
		r.TotalCalories,
		strings.Join(r.Items, HistoryItemSeparator),
	}, HistoryFieldSeparator)
}

func (r HistoryRecord) Time() (time.Time, error) {
	return ParseHistoryTime(r.PlacedAt)
}

func (r HistoryRecord) Calories() (float64, error) {
	return strconv.ParseFloat(r.TotalCalories, 64)
}

func FormatHistoryTime(t time.Time) string {
	return t.Format(HistoryTimeLayout)
}

func ParseHistoryTime(s string) (time.Time, error) {
	return time.ParseInLocation(HistoryTimeLayout, s, time.Local)
}

// FormatCalories renders a calorie total the way the log has always stored it:
// the shortest decimal form, always with a fractional part ("790.0", "12.5").
func FormatCalories(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
