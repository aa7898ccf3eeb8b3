package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/asselect/internal/server"
	"github.com/sells-group/asselect/internal/store"
)

var (
	servePort    int
	serveDataset string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP conversion API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		cfg.Dataset.Source = datasetSource(cfg, serveDataset)
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var st store.Store
		if s, err := initStore(ctx, cfg); err != nil {
			zap.L().Warn("serve: store unavailable, runs will not be recorded", zap.Error(err))
		} else {
			st = s
			defer st.Close() //nolint:errcheck
		}

		srv := server.New(server.Options{
			Source:         cfg.Dataset.Source,
			DatasetTTL:     cfg.Server.DatasetTTL(),
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Opener:         newOpener(cfg),
			Store:          st,
		})

		return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Server.Port))
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveDataset, "dataset", "", "dataset file or URL (default from config)")
	rootCmd.AddCommand(serveCmd)
}
