package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/chrisdamba/nutritrack/internal/models"
	"github.com/chrisdamba/nutritrack/internal/output"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var customer string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy order history to an analytics sink",
		Long: `export copies every well-formed history record to the configured output
(console, json, csv, parquet, kafka or postgres). The history file is not changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var records []models.HistoryRecord
			var err error
			if customer != "" {
				records, err = a.store.Scan(customer)
			} else {
				err = a.store.All(func(rec models.HistoryRecord) error {
					records = append(records, rec)
					return nil
				})
			}
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			dest, err := output.NewDestination(ctx, a.cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			bar := progressbar.NewOptions(len(records),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("exporting orders"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			exported := 0
			for _, rec := range records {
				event := models.NewOrderEvent(rec, a.catalog.Lookup)
				if err := dest.WriteRecord(event); err != nil {
					return errors.Join(fmt.Errorf("export failed after %d records: %w", exported, err), dest.Close())
				}
				exported++
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			if err := dest.Close(); err != nil {
				return fmt.Errorf("failed to finish export: %w", err)
			}
			a.logger.Info().
				Int("records", exported).
				Str("format", a.cfg.OutputFormat).
				Bool("kafka", a.cfg.KafkaEnabled).
				Msg("export complete")
			return nil
		},
	}

	cmd.Flags().String("format", "", "output format: console, json, csv, parquet, kafka, postgres")
	cmd.Flags().StringVar(&customer, "customer", "", "only export this customer's orders")
	a.bindFlag(cmd, "output_format", "format")
	return cmd
}
