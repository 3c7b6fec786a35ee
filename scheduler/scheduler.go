package scheduler

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"kayak/config"
	"kayak/infras/otel"
	"kayak/internal/domains/transaction/service"
	"kayak/internal/ingest"
	"kayak/shared/constant"
	"kayak/shared/logger"
)

const processedColumn = "Processed"

// Scheduler runs the periodic report file job. Each run stamps the
// configured report file with a Processed column and, when enabled,
// feeds the same file through the transaction importer.
type Scheduler struct {
	config  *config.Config
	service service.Transaction
	otel    otel.Otel
	cron    *cron.Cron
}

func New(cfg *config.Config, transactionService service.Transaction, otel otel.Otel) *Scheduler {
	return &Scheduler{
		config:  cfg,
		service: transactionService,
		otel:    otel,
		cron:    cron.New(),
	}
}

func (s *Scheduler) Start() error {
	if !s.config.Importer.Schedule.Enable {
		log.Info().Msg("Report schedule is disabled.")

		return nil
	}

	_, err := s.cron.AddFunc(s.config.Importer.Schedule.Spec, s.runJob)
	if err != nil {
		return fmt.Errorf("failed to register report job: %w", err)
	}

	s.cron.Start()

	log.Info().
		Str("spec", s.config.Importer.Schedule.Spec).
		Str("reportFile", s.config.Importer.Schedule.ReportFile).
		Msg("Report schedule started.")

	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runJob() {
	ctx, scope := s.otel.NewScope(context.Background(), constant.OtelSchedulerScopeName, "ProcessReportFile")
	defer scope.End()

	if err := s.ProcessReportFile(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("Report job failed.")
	}
}

// ProcessReportFile reads the configured report file, writes a copy with
// every row marked in an extra Processed column, and optionally imports
// the report into the transaction store.
func (s *Scheduler) ProcessReportFile(ctx context.Context) error {
	reportFile := s.config.Importer.Schedule.ReportFile

	data, err := os.ReadFile(reportFile)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to read report file %s: %w", reportFile, err)
	}

	if err := s.writeProcessedCopy(data, reportFile); err != nil {
		logger.ErrorWithStack(err)

		return err
	}

	if s.config.Importer.Schedule.Import {
		report, err := s.service.Import(ctx, filepath.Base(reportFile), data)
		if err != nil {
			return fmt.Errorf("failed to import report file %s: %w", reportFile, err)
		}

		log.Info().
			Str("runID", report.RunID).
			Int("success", report.SuccessCount).
			Int("errors", report.ErrorCount).
			Msg("Scheduled report imported.")
	}

	return nil
}

func (s *Scheduler) writeProcessedCopy(data []byte, reportFile string) error {
	table, err := ingest.ReadTable(bytes.NewReader(data), reportFile)
	if err != nil {
		return fmt.Errorf("failed to parse report file %s: %w", reportFile, err)
	}

	outputFile := s.config.Importer.Schedule.OutputFile

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", outputFile, err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)

	if err := writer.Write(append(table.Header, processedColumn)); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, row := range table.Rows {
		padded := make([]string, len(table.Header)+1)
		copy(padded, row)
		padded[len(table.Header)] = "true"

		if err := writer.Write(padded); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output file %s: %w", outputFile, err)
	}

	log.Info().Str("outputFile", outputFile).Int("rows", len(table.Rows)).Msg("Report file processed.")

	return nil
}
