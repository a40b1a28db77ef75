package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/owlim/ytscribe/internal/config"
	"github.com/owlim/ytscribe/internal/server"
	"github.com/owlim/ytscribe/pkg/transcript"
)

const version = "0.3.0"

var (
	cfgFile string
	verbose bool

	lang       string
	apiKey     string
	jsonOutput bool
	listenAddr string
)

var rootCmd = &cobra.Command{
	Use:   "ytscribe",
	Short: "Extract text transcripts from YouTube videos",
	Long: `ytscribe pulls transcripts out of YouTube videos by trying several
caption sources in priority order: the official Data API, the internal
player API, watch-page scraping and third-party caption libraries.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the transcript extraction HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		if listenAddr != "" {
			cfg.Server.Addr = listenAddr
		}

		svc := transcript.New(cfg, logger)
		srv := server.New(svc, logger)
		return srv.ListenAndServe(cfg.Server)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <videoID|url>",
	Short: "Extract a transcript once and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		if apiKey != "" {
			cfg.Extraction.APIKey = apiKey
		}

		svc := transcript.New(cfg, logger)
		result, attempts, err := svc.Extract(context.Background(), args[0], transcript.Options{
			Language: lang,
		})
		if err != nil {
			for _, a := range attempts {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", a.Method, a.Detail)
			}
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		fmt.Println(result.Transcript)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Secrets like YOUTUBE_API_KEY come from .env in development.
	godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/ytscribe/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (overrides config)")

	getCmd.Flags().StringVar(&lang, "lang", "", "preferred caption language")
	getCmd.Flags().StringVar(&apiKey, "api-key", "", "YouTube Data API key")
	getCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the full result as JSON")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(getCmd)
}

func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := parseLevel(cfg.Logging.Level)
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return cfg, logger, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
