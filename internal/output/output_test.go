package output

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/chrisdamba/nutritrack/internal/cloudwriter"
	"github.com/chrisdamba/nutritrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

func sampleEvent(customer string, placed time.Time) models.OrderEvent {
	return models.OrderEvent{
		Timestamp:     placed.Unix(),
		EventType:     models.EventOrderRecorded,
		OrderID:       "order-" + customer,
		Customer:      customer,
		PlacedAt:      models.FormatHistoryTime(placed),
		Items:         "Big Mac,Small Fries",
		ItemCount:     2,
		TotalCalories: 790,
		Protein:       29,
		Carbs:         75,
		Sugars:        9,
		Fat:           39,
	}
}

var (
	day1 = time.Date(2024, time.March, 5, 12, 30, 0, 0, time.Local)
	day2 = time.Date(2024, time.March, 6, 9, 0, 0, 0, time.Local)
)

func TestPartitionPath(t *testing.T) {
	assert.Equal(t, "year=2024/month=03/day=05", partitionPath(day1.Unix()))
	assert.Equal(t, "undated", partitionPath(0))
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	out := NewConsoleOutput(&buf, "orders")

	require.NoError(t, out.WriteRecord(sampleEvent("alice", day1)))
	require.NoError(t, out.Close())

	line := strings.TrimSuffix(buf.String(), "\n")
	require.True(t, strings.HasPrefix(line, "[orders] "))

	var got models.OrderEvent
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "[orders] ")), &got))
	assert.Equal(t, sampleEvent("alice", day1), got)
}

func TestJSONOutputPartitionsByDay(t *testing.T) {
	dir := t.TempDir()
	out := NewJSONOutput(dir, "exports", "orders")

	require.NoError(t, out.WriteRecord(sampleEvent("alice", day1)))
	require.NoError(t, out.WriteRecord(sampleEvent("bob", day1)))
	require.NoError(t, out.WriteRecord(sampleEvent("carol", day2)))
	require.NoError(t, out.Close())

	f, err := os.Open(filepath.Join(dir, "exports", "orders", partitionPath(day1.Unix()), "data.json"))
	require.NoError(t, err)
	defer f.Close()

	var customers []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev models.OrderEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		customers = append(customers, ev.Customer)
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, []string{"alice", "bob"}, customers)

	assert.FileExists(t, filepath.Join(dir, "exports", "orders", partitionPath(day2.Unix()), "data.json"))
}

func TestCSVOutputWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	out := NewCSVOutput(dir, "exports", "orders")

	require.NoError(t, out.WriteRecord(sampleEvent("alice", day1)))
	require.NoError(t, out.WriteRecord(sampleEvent("bob", day1)))
	require.NoError(t, out.Close())

	f, err := os.Open(filepath.Join(dir, "exports", "orders", partitionPath(day1.Unix()), "data.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "alice", rows[1][3])
	assert.Equal(t, "Big Mac,Small Fries", rows[1][5])
	assert.Equal(t, "790.0", rows[1][7])
	assert.Equal(t, "bob", rows[2][3])
}

func TestParquetOutputLocal(t *testing.T) {
	dir := t.TempDir()
	out := NewParquetOutput(dir, "exports", "orders", nil, "")

	require.NoError(t, out.WriteRecord(sampleEvent("alice", day1)))
	require.NoError(t, out.WriteRecord(sampleEvent("bob", day1)))
	require.NoError(t, out.Close())

	path := filepath.Join(dir, "exports", "orders", partitionPath(day1.Unix()), "data.parquet")
	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(models.OrderEvent), 1)
	require.NoError(t, err)
	defer pr.ReadStop()
	assert.Equal(t, int64(2), pr.GetNumRows())

	rows := make([]models.OrderEvent, 2)
	require.NoError(t, pr.Read(&rows))
	assert.Equal(t, "alice", rows[0].Customer)
	assert.Equal(t, 790.0, rows[1].TotalCalories)
}

type memoryCloudWriter struct {
	buf    bytes.Buffer
	closed bool
}

func (m *memoryCloudWriter) Write(p []byte) (int, error) { return m.buf.Write(p) }
func (m *memoryCloudWriter) Close() error {
	m.closed = true
	return nil
}

type memoryCloudFactory struct {
	writers map[string]*memoryCloudWriter
}

func (f *memoryCloudFactory) NewWriter(bucket, objectPath string) (cloudwriter.CloudWriter, error) {
	w := &memoryCloudWriter{}
	f.writers[bucket+"/"+objectPath] = w
	return w, nil
}

func TestParquetOutputCloud(t *testing.T) {
	factory := &memoryCloudFactory{writers: make(map[string]*memoryCloudWriter)}
	out := NewParquetOutput("ignored", "exports", "orders", factory, "bucket")

	require.NoError(t, out.WriteRecord(sampleEvent("alice", day1)))
	require.NoError(t, out.Close())

	key := "bucket/exports/orders/" + partitionPath(day1.Unix()) + "/data.parquet"
	require.Contains(t, factory.writers, key)
	w := factory.writers[key]
	assert.True(t, w.closed)
	data := w.buf.Bytes()
	require.Greater(t, len(data), 8)
	assert.Equal(t, "PAR1", string(data[:4]))
	assert.Equal(t, "PAR1", string(data[len(data)-4:]))
}

func TestCloudParquetFileSeek(t *testing.T) {
	f := NewCloudParquetFile(&memoryCloudWriter{})

	n, err := f.Write([]byte("PAR1"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	pos, err := f.Seek(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos)

	_, err = f.Seek(0, 2)
	assert.Error(t, err)
	_, err = f.Read(make([]byte, 1))
	assert.Error(t, err)
}

func TestKafkaOutputKeysByCustomer(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var ev models.OrderEvent
		if err := json.Unmarshal(val, &ev); err != nil {
			return err
		}
		if ev.Customer != "alice" {
			return errors.New("unexpected customer " + ev.Customer)
		}
		return nil
	})

	out := NewKafkaOutput(producer, "orders")
	require.NoError(t, out.WriteRecord(sampleEvent("alice", day1)))
	require.NoError(t, out.Close())

	assert.Error(t, out.WriteRecord(sampleEvent("alice", day1)))
}

func TestKafkaOutputSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	out := NewKafkaOutput(producer, "orders")
	err := out.WriteRecord(sampleEvent("alice", day1))
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, out.Close())
}

type fakeOrderRepository struct {
	batches [][]*models.OrderEvent
	err     error
}

func (f *fakeOrderRepository) EnsureSchema(context.Context) error { return nil }

func (f *fakeOrderRepository) BulkCreate(_ context.Context, orders []*models.OrderEvent) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, append([]*models.OrderEvent(nil), orders...))
	return nil
}

func TestPostgresOutputBatches(t *testing.T) {
	repo := &fakeOrderRepository{}
	released := false
	out := NewPostgresOutput(context.Background(), repo, 2, func() { released = true })

	for _, name := range []string{"alice", "bob", "carol"} {
		require.NoError(t, out.WriteRecord(sampleEvent(name, day1)))
	}
	require.Len(t, repo.batches, 1)

	require.NoError(t, out.Close())
	assert.True(t, released)
	require.Len(t, repo.batches, 2)
	assert.Equal(t, "alice", repo.batches[0][0].Customer)
	assert.Equal(t, "bob", repo.batches[0][1].Customer)
	require.Len(t, repo.batches[1], 1)
	assert.Equal(t, "carol", repo.batches[1][0].Customer)
}

func TestPostgresOutputReleasesOnError(t *testing.T) {
	repo := &fakeOrderRepository{err: errors.New("copy failed")}
	released := false
	out := NewPostgresOutput(context.Background(), repo, 10, func() { released = true })

	require.NoError(t, out.WriteRecord(sampleEvent("alice", day1)))
	assert.EqualError(t, out.Close(), "copy failed")
	assert.True(t, released)
}

func TestNewDestination(t *testing.T) {
	base := models.Config{
		OutputPath:   t.TempDir(),
		OutputFolder: "exports",
		KafkaTopic:   "orders",
	}

	tests := []struct {
		format string
		want   any
	}{
		{models.OutputFormatConsole, &ConsoleOutput{}},
		{models.OutputFormatJSON, &JSONOutput{}},
		{models.OutputFormatCSV, &CSVOutput{}},
		{models.OutputFormatParquet, &ParquetOutput{}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := base
			cfg.OutputFormat = tt.format
			dest, err := NewDestination(context.Background(), &cfg, &bytes.Buffer{})
			require.NoError(t, err)
			assert.IsType(t, tt.want, dest)
			require.NoError(t, dest.Close())
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		cfg := base
		cfg.OutputFormat = "xml"
		_, err := NewDestination(context.Background(), &cfg, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("unknown cloud provider", func(t *testing.T) {
		cfg := base
		cfg.OutputFormat = models.OutputFormatParquet
		cfg.CloudStorage.Provider = "azure"
		_, err := NewDestination(context.Background(), &cfg, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("postgres without url", func(t *testing.T) {
		cfg := base
		cfg.OutputFormat = models.OutputFormatPostgres
		_, err := NewDestination(context.Background(), &cfg, &bytes.Buffer{})
		assert.Error(t, err)
	})
}
