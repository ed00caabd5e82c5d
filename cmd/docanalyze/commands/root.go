package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"docanalyzer/internal/analysis"
	"docanalyzer/internal/completion"
	"docanalyzer/internal/completion/providers"
	"docanalyzer/internal/config"
	"docanalyzer/internal/logging"
	"docanalyzer/internal/pdftext"
	"docanalyzer/internal/port"
	"docanalyzer/internal/service"
)

var (
	envFile string
	verbose bool
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "docanalyze",
	Short: "Analyze PDF documents from the command line",
	Long: `docanalyze runs the same extraction and analysis pipeline as the HTTP
service against local PDF files, using the completion provider configured
through DOCANALYZER_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("load env file: %w", err)
			}
			return nil
		}
		_ = godotenv.Load()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (default: ./.env when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall deadline for one run")
}

// Execute runs the root command, cancelling in-flight work on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// pipeline holds the components a command needs, built from the environment.
type pipeline struct {
	cfg       *config.Config
	documents service.DocumentService
}

// newPipeline loads configuration and builds the document service. The
// completion client is only constructed when withCompletion is true, so text
// extraction works without an API key.
func newPipeline(withCompletion bool) (*pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logCfg := cfg.Log
	logCfg.Format = "console"
	if verbose {
		logCfg.Level = "debug"
	}
	logger := logging.NewWithWriter(logCfg, cfg.Server.ServiceName, os.Stderr)
	zerolog.DefaultContextLogger = &logger

	var analyzer port.DocumentAnalyzer
	if withCompletion {
		providers.RegisterAll()
		client, err := completion.NewClient(&cfg.Completion)
		if err != nil {
			return nil, fmt.Errorf("create completion client: %w", err)
		}
		analyzer = analysis.NewAnalyzer(client)
	}

	return &pipeline{
		cfg:       cfg,
		documents: service.NewDocumentService(pdftext.NewExtractor(), analyzer, &cfg.Upload),
	}, nil
}

// openInput opens a local PDF as a service input. The caller closes the file.
func openInput(path string) (service.DocumentInput, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return service.DocumentInput{}, nil, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return service.DocumentInput{}, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return service.DocumentInput{
		FileName: info.Name(),
		Size:     info.Size(),
		File:     f,
	}, f, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}
