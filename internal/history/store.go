package history

import "github.com/chrisdamba/nutritrack/internal/models"

// Store is the append-only order history log.
type Store interface {
	// EnsureExists creates an empty log if there is none. Idempotent.
	EnsureExists() error
	// Append writes one record as a single line. Records without items are refused.
	Append(rec models.HistoryRecord) error
	// Walk calls fn for each well-formed record whose customer equals customer
	// exactly, top to bottom. Malformed lines are skipped. A non-nil error from
	// fn stops the walk and is returned.
	Walk(customer string, fn func(models.HistoryRecord) error) error
	// Scan collects Walk. On a read failure it returns no records and the error.
	Scan(customer string) ([]models.HistoryRecord, error)
	// All walks every well-formed record regardless of customer.
	All(fn func(models.HistoryRecord) error) error
}
