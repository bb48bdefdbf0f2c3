package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/app"
	"alfredoptarigan/resume-radar/internal/config"
	"alfredoptarigan/resume-radar/internal/embedding"
	"alfredoptarigan/resume-radar/internal/services"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Load job description files into the catalog",
	Long:  "Store each PDF or text file as a job description in Postgres and index it in Qdrant. The title defaults to the file name.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngest,
}

var ingestTitle string

func init() {
	ingestCmd.Flags().StringVar(&ingestTitle, "title", "", "Title to use (only with a single file)")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestTitle != "" && len(args) > 1 {
		return fmt.Errorf("--title can only be used with a single file")
	}

	cfg := config.Load()

	zl, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := cmd.Context()

	embedder, err := embedding.New(ctx, cfg.Embedding)
	if err != nil {
		return fmt.Errorf("failed to initialize embedding provider: %w", err)
	}

	catalog, err := app.NewCatalog(ctx, cfg, embedder, zl)
	if err != nil {
		return err
	}

	parser := services.NewPDFParserService(cfg.Storage.MaxFileSize)

	successCount := 0
	failCount := 0

	for _, path := range args {
		log := zl.With(zap.String("path", path))

		content, err := readDocument(path, parser)
		if err != nil {
			log.Error("failed to read job description", zap.Error(err))
			failCount++
			continue
		}

		title := ingestTitle
		if title == "" {
			title = titleFromPath(path)
		}

		jd, err := catalog.Service.Create(ctx, title, content)
		if err != nil {
			log.Error("failed to store job description", zap.Error(err))
			failCount++
			continue
		}

		if err := catalog.Service.Index(ctx, jd.ID); err != nil {
			log.Error("failed to index job description", zap.Stringer("id", jd.ID), zap.Error(err))
			failCount++
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", jd.ID, jd.Title)
		successCount++
	}

	zl.Info("ingestion finished", zap.Int("succeeded", successCount), zap.Int("failed", failCount))

	if failCount > 0 {
		return fmt.Errorf("%d of %d files failed to ingest", failCount, len(args))
	}
	return nil
}
