package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/chrisdamba/nutritrack/internal/cloudwriter"
	"github.com/chrisdamba/nutritrack/internal/models"
	"github.com/chrisdamba/nutritrack/internal/repositories/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Destination receives exported order events. Implementations are used from a
// single goroutine.
type Destination interface {
	WriteRecord(event models.OrderEvent) error
	Close() error
}

type ConsoleOutput struct {
	out   io.Writer
	topic string
}

func NewConsoleOutput(out io.Writer, topic string) *ConsoleOutput {
	return &ConsoleOutput{out: out, topic: topic}
}

func (c *ConsoleOutput) WriteRecord(event models.OrderEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.out, "[%s] %s\n", c.topic, msg); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error {
	return nil
}

// partitionPath lays files out by day. Events whose date could not be parsed
// go to an "undated" partition.
func partitionPath(timestamp int64) string {
	if timestamp == 0 {
		return "undated"
	}
	year, month, day := time.Unix(timestamp, 0).Date()
	return fmt.Sprintf("year=%d/month=%02d/day=%02d", year, month, day)
}

// NewDestination picks the sink named by cfg.OutputFormat. Kafka is also
// selected when kafka_enabled is set.
func NewDestination(ctx context.Context, cfg *models.Config, console io.Writer) (Destination, error) {
	format := cfg.OutputFormat
	if cfg.KafkaEnabled {
		format = models.OutputFormatKafka
	}

	switch format {
	case models.OutputFormatConsole:
		return NewConsoleOutput(console, cfg.KafkaTopic), nil
	case models.OutputFormatJSON:
		return NewJSONOutput(cfg.OutputPath, cfg.OutputFolder, cfg.KafkaTopic), nil
	case models.OutputFormatCSV:
		return NewCSVOutput(cfg.OutputPath, cfg.OutputFolder, cfg.KafkaTopic), nil
	case models.OutputFormatParquet:
		var factory cloudwriter.CloudWriterFactory
		switch cfg.CloudStorage.Provider {
		case "", "local":
		case "s3":
			s3Factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region, cfg.ExportTimeout)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			factory = s3Factory
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.CloudStorage.Provider)
		}
		return NewParquetOutput(cfg.OutputPath, cfg.OutputFolder, cfg.KafkaTopic, factory, cfg.CloudStorage.BucketName), nil
	case models.OutputFormatKafka:
		producer, err := NewSaramaProducer(cfg)
		if err != nil {
			return nil, err
		}
		return NewKafkaOutput(producer, cfg.KafkaTopic), nil
	case models.OutputFormatPostgres:
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("database.url is required for postgres output")
		}
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("error connecting to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("error pinging database: %w", err)
		}
		repo := postgres.NewOrderRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return NewPostgresOutput(ctx, repo, DefaultBatchSize, pool.Close), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
