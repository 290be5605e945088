package output

import (
	"context"

	"github.com/chrisdamba/nutritrack/internal/models"
	"github.com/chrisdamba/nutritrack/internal/repositories"
)

const DefaultBatchSize = 500

// PostgresOutput buffers events and copies them into the orders table in
// batches.
type PostgresOutput struct {
	ctx       context.Context
	repo      repositories.OrderRepository
	batch     []*models.OrderEvent
	batchSize int
	release   func()
}

// NewPostgresOutput writes through repo. release, if not nil, is called once
// the final batch has been flushed.
func NewPostgresOutput(ctx context.Context, repo repositories.OrderRepository, batchSize int, release func()) *PostgresOutput {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &PostgresOutput{
		ctx:       ctx,
		repo:      repo,
		batch:     make([]*models.OrderEvent, 0, batchSize),
		batchSize: batchSize,
		release:   release,
	}
}

func (p *PostgresOutput) WriteRecord(event models.OrderEvent) error {
	p.batch = append(p.batch, &event)
	if len(p.batch) >= p.batchSize {
		return p.flush()
	}
	return nil
}

func (p *PostgresOutput) flush() error {
	if len(p.batch) == 0 {
		return nil
	}
	if err := p.repo.BulkCreate(p.ctx, p.batch); err != nil {
		return err
	}
	p.batch = p.batch[:0]
	return nil
}

func (p *PostgresOutput) Close() error {
	err := p.flush()
	if p.release != nil {
		p.release()
		p.release = nil
	}
	return err
}
