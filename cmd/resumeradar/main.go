// Command resumeradar scores résumés from the command line and loads job
// descriptions into the catalog.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/config"
	"alfredoptarigan/resume-radar/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "resumeradar",
	Short: "Score résumés against job descriptions",
	Long:  "resumeradar rates a résumé out of 100 against an optional job description and manages the job description catalog used by the API.",
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newLogger keeps stdout for command output.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logCfg := cfg.Log
	logCfg.Output = "stderr"
	logCfg.Debug = logCfg.Debug || verbose
	return logger.New(logCfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
