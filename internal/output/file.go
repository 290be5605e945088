package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/chrisdamba/nutritrack/internal/models"
)

var csvHeader = []string{
	"timestamp", "eventType", "orderId", "customer", "placedAt", "items", "itemCount",
	"totalCalories", "protein", "carbs", "sugars", "fat",
}

// JSONOutput writes newline-delimited JSON, one file per day partition.
type JSONOutput struct {
	basePath string
	folder   string
	topic    string
	files    map[string]*os.File
}

func NewJSONOutput(basePath, folder, topic string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		topic:    topic,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteRecord(event models.OrderEvent) error {
	partition := partitionPath(event.Timestamp)
	file, ok := j.files[partition]
	if !ok {
		fullPath := filepath.Join(j.basePath, j.folder, j.topic, partition)
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		var err error
		file, err = os.Create(filepath.Join(fullPath, "data.json"))
		if err != nil {
			return fmt.Errorf("failed to create json file for %s: %w", partition, err)
		}
		j.files[partition] = file
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = file.Write(append(data, '\n'))
	return err
}

func (j *JSONOutput) Close() error {
	var lastErr error
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

type csvFile struct {
	file   *os.File
	writer *csv.Writer
}

// CSVOutput writes one headed CSV file per day partition.
type CSVOutput struct {
	basePath string
	folder   string
	topic    string
	files    map[string]*csvFile
}

func NewCSVOutput(basePath, folder, topic string) *CSVOutput {
	return &CSVOutput{
		basePath: basePath,
		folder:   folder,
		topic:    topic,
		files:    make(map[string]*csvFile),
	}
}

func (c *CSVOutput) WriteRecord(event models.OrderEvent) error {
	partition := partitionPath(event.Timestamp)
	f, ok := c.files[partition]
	if !ok {
		fullPath := filepath.Join(c.basePath, c.folder, c.topic, partition)
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err := os.Create(filepath.Join(fullPath, "data.csv"))
		if err != nil {
			return fmt.Errorf("failed to create csv file for %s: %w", partition, err)
		}
		f = &csvFile{file: file, writer: csv.NewWriter(file)}
		c.files[partition] = f

		if err := f.writer.Write(csvHeader); err != nil {
			return err
		}
	}

	row := []string{
		strconv.FormatInt(event.Timestamp, 10),
		event.EventType,
		event.OrderID,
		event.Customer,
		event.PlacedAt,
		event.Items,
		strconv.Itoa(int(event.ItemCount)),
		models.FormatCalories(event.TotalCalories),
		strconv.FormatFloat(event.Protein, 'f', -1, 64),
		strconv.FormatFloat(event.Carbs, 'f', -1, 64),
		strconv.FormatFloat(event.Sugars, 'f', -1, 64),
		strconv.FormatFloat(event.Fat, 'f', -1, 64),
	}
	if err := f.writer.Write(row); err != nil {
		return err
	}
	f.writer.Flush()
	return f.writer.Error()
}

func (c *CSVOutput) Close() error {
	var lastErr error
	for _, f := range c.files {
		f.writer.Flush()
		if err := f.writer.Error(); err != nil {
			lastErr = err
		}
		if err := f.file.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
