package models

import (
	"strings"

	"github.com/lucsky/cuid"
)

// OrderEvent is the export shape of a history record.
type OrderEvent struct {
	Timestamp     int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType     string  `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderID       string  `json:"orderId" parquet:"name=orderId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Customer      string  `json:"customer" parquet:"name=customer,type=BYTE_ARRAY,convertedtype=UTF8"`
	PlacedAt      string  `json:"placedAt" parquet:"name=placedAt,type=BYTE_ARRAY,convertedtype=UTF8"`
	Items         string  `json:"items" parquet:"name=items,type=BYTE_ARRAY,convertedtype=UTF8"`
	ItemCount     int32   `json:"itemCount" parquet:"name=itemCount,type=INT32"`
	TotalCalories float64 `json:"totalCalories" parquet:"name=totalCalories,type=DOUBLE"`
	Protein       float64 `json:"protein" parquet:"name=protein,type=DOUBLE"`
	Carbs         float64 `json:"carbs" parquet:"name=carbs,type=DOUBLE"`
	Sugars        float64 `json:"sugars" parquet:"name=sugars,type=DOUBLE"`
	Fat           float64 `json:"fat" parquet:"name=fat,type=DOUBLE"`
}

const EventOrderRecorded = "OrderRecorded"

// NewOrderEvent expands a history record for export. lookup resolves item
// names to catalog entries for nutrient totals; unknown names add nothing.
// The order ID is freshly generated since the log does not store one.
func NewOrderEvent(rec HistoryRecord, lookup func(name string) (MenuItem, bool)) OrderEvent {
	var totals Nutrients
	for _, name := range rec.Items {
		if item, ok := lookup(name); ok {
			totals = totals.Add(item.Nutrients())
		}
	}

	event := OrderEvent{
		EventType:     EventOrderRecorded,
		OrderID:       cuid.New(),
		Customer:      rec.Customer,
		PlacedAt:      rec.PlacedAt,
		Items:         strings.Join(rec.Items, HistoryItemSeparator),
		ItemCount:     int32(len(rec.Items)),
		TotalCalories: totals.Calories,
		Protein:       totals.Protein,
		Carbs:         totals.Carbs,
		Sugars:        totals.Sugars,
		Fat:           totals.Fat,
	}
	if ts, err := rec.Time(); err == nil {
		event.Timestamp = ts.Unix()
	}
	// the logged total wins over the recomputed one
	if cal, err := rec.Calories(); err == nil {
		event.TotalCalories = cal
	}
	return event
}

// SplitItems is the inverse of the comma join used in the log and in events.
func SplitItems(items string) []string {
	if items == "" {
		return []string{}
	}
	return strings.Split(items, HistoryItemSeparator)
}
