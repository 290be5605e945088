package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chrisdamba/nutritrack/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	execs   []string
	copied  [][]any
	table   pgx.Identifier
	columns []string
	copyErr error
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakeDB) CopyFrom(_ context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	if f.copyErr != nil {
		return 0, f.copyErr
	}
	f.table = table
	f.columns = columns
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		f.copied = append(f.copied, values)
	}
	return int64(len(f.copied)), src.Err()
}

func event(customer string, ts int64) *models.OrderEvent {
	return &models.OrderEvent{
		Timestamp:     ts,
		OrderID:       "c" + customer,
		Customer:      customer,
		PlacedAt:      "March 3, 2025 at 4:43pm",
		Items:         "Big Mac,Small Fries",
		ItemCount:     2,
		TotalCalories: 790,
	}
}

func TestBulkCreateCopiesRows(t *testing.T) {
	db := &fakeDB{}
	repo := NewOrderRepository(db)

	ts := time.Date(2025, time.March, 3, 16, 43, 0, 0, time.UTC).Unix()
	err := repo.BulkCreate(context.Background(), []*models.OrderEvent{event("Sam", ts), event("Alex", 0)})
	require.NoError(t, err)

	assert.Equal(t, pgx.Identifier{"orders"}, db.table)
	assert.Equal(t, orderColumns, db.columns)
	require.Len(t, db.copied, 2)
	assert.Len(t, db.copied[0], len(orderColumns))
	assert.Equal(t, "Sam", db.copied[0][1])
	assert.Equal(t, time.Unix(ts, 0), db.copied[0][2])
	assert.Nil(t, db.copied[1][2])
	assert.Equal(t, []string{"Big Mac", "Small Fries"}, db.copied[0][4])
}

func TestBulkCreateEmptyIsNoop(t *testing.T) {
	db := &fakeDB{copyErr: errors.New("should not be called")}
	assert.NoError(t, NewOrderRepository(db).BulkCreate(context.Background(), nil))
}

func TestBulkCreateWrapsError(t *testing.T) {
	db := &fakeDB{copyErr: errors.New("connection reset")}
	err := NewOrderRepository(db).BulkCreate(context.Background(), []*models.OrderEvent{event("Sam", 0)})
	assert.ErrorContains(t, err, "connection reset")
}

func TestEnsureSchema(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, NewOrderRepository(db).EnsureSchema(context.Background()))
	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0], "CREATE TABLE IF NOT EXISTS orders")
}
