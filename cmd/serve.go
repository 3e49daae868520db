package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataloom/internal/pipeline"
	"github.com/KaramelBytes/dataloom/internal/server"
)

var serveListenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP service exposing the pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveListenAddr
		if addr == "" && cfg != nil {
			addr = cfg.ListenAddr
		}
		if addr == "" {
			addr = ":8080"
		}

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		maxCats := 0
		if cfg != nil {
			maxCats = cfg.MaxCategories
		}
		runner := pipeline.NewRunner(newGenerator(), logger, maxCats)
		srv := server.New(runner, logger)

		logger.Info("listening", slog.String("addr", addr))
		if err := http.ListenAndServe(addr, srv.Router()); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListenAddr, "listen", "", "listen address (default from config, e.g. :8080)")
}
