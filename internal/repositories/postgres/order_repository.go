package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisdamba/nutritrack/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is satisfied by *pgxpool.Pool and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

var orderColumns = []string{
	"order_id", "customer", "placed_at", "placed_at_text", "items", "item_count",
	"total_calories", "protein", "carbs", "sugars", "fat",
}

type OrderRepository struct {
	db DB
}

func NewOrderRepository(db DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) EnsureSchema(ctx context.Context) error {
	query := `
        CREATE TABLE IF NOT EXISTS orders (
            order_id       TEXT PRIMARY KEY,
            customer       TEXT NOT NULL,
            placed_at      TIMESTAMPTZ,
            placed_at_text TEXT NOT NULL,
            items          TEXT[] NOT NULL,
            item_count     INTEGER NOT NULL,
            total_calories DOUBLE PRECISION NOT NULL,
            protein        DOUBLE PRECISION NOT NULL,
            carbs          DOUBLE PRECISION NOT NULL,
            sugars         DOUBLE PRECISION NOT NULL,
            fat            DOUBLE PRECISION NOT NULL,
            created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create orders table: %w", err)
	}
	return nil
}

func (r *OrderRepository) BulkCreate(ctx context.Context, orders []*models.OrderEvent) error {
	if len(orders) == 0 {
		return nil
	}
	_, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"orders"},
		orderColumns,
		pgx.CopyFromSlice(len(orders), func(i int) ([]any, error) {
			return orderRow(orders[i]), nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to copy %d orders: %w", len(orders), err)
	}
	return nil
}

// orderRow follows orderColumns. A zero timestamp means the log's date text
// could not be parsed and is stored as NULL.
func orderRow(o *models.OrderEvent) []any {
	var placedAt any
	if o.Timestamp != 0 {
		placedAt = time.Unix(o.Timestamp, 0)
	}
	return []any{
		o.OrderID,
		o.Customer,
		placedAt,
		o.PlacedAt,
		models.SplitItems(o.Items),
		o.ItemCount,
		o.TotalCalories,
		o.Protein,
		o.Carbs,
		o.Sugars,
		o.Fat,
	}
}
