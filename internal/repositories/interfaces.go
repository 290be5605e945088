package repositories

import (
	"context"

	"github.com/chrisdamba/nutritrack/internal/models"
)

// OrderRepository stores exported order events for analytics.
type OrderRepository interface {
	EnsureSchema(ctx context.Context) error
	BulkCreate(ctx context.Context, orders []*models.OrderEvent) error
}
