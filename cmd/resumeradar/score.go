package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/app"
	"alfredoptarigan/resume-radar/internal/config"
	"alfredoptarigan/resume-radar/internal/scoring"
	"alfredoptarigan/resume-radar/internal/services"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a résumé file",
	Long:  "Score a PDF or plain text résumé, optionally against a job description file, and print the result as JSON.",
	RunE:  runScore,
}

var (
	scoreResumeFile string
	scoreJDFile     string
	scoreExplain    bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResumeFile, "resume", "r", "", "Path to the résumé (.pdf or text)")
	scoreCmd.Flags().StringVarP(&scoreJDFile, "jd", "j", "", "Path to the job description (.pdf or text)")
	scoreCmd.Flags().BoolVar(&scoreExplain, "explain", false, "Print the per-component breakdown")
	_ = scoreCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	zl, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	parser := services.NewPDFParserService(cfg.Storage.MaxFileSize)

	resume, err := readDocument(scoreResumeFile, parser)
	if err != nil {
		return err
	}

	var jobDescription string
	if scoreJDFile != "" {
		jobDescription, err = readDocument(scoreJDFile, parser)
		if err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	analyzer, _, err := app.NewAnalyzer(ctx, cfg, zl)
	if err != nil {
		return err
	}

	result, err := analyzer.Analyze(ctx, resume, jobDescription)
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	zl.Debug("resume scored", zap.Float64("score", result.Score))

	return printResult(cmd.OutOrStdout(), result, scoreExplain)
}

func printResult(w io.Writer, result *scoring.Result, explain bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if !explain || len(result.Components) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPONENT\tSCORE\tMAX")
	for _, c := range result.Components {
		if c.Skipped {
			fmt.Fprintf(tw, "%s\tskipped\t%.2f\n", c.Name, c.Max)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\n", c.Name, c.Value, c.Max)
	}
	return tw.Flush()
}
