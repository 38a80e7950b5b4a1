package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/obraflow/obraflow/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the obraflow HTTP server",
	Long:  `Starts the HTTP API: POST /api/ask answers questions, GET /api/entities/search resolves entities, and /metrics exposes Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := buildApp(cfg, newRecorder())
		if err != nil {
			return err
		}
		defer a.Close()

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.CORSAllowAll,
		}, a.assistant, a.pipeline, a.resolver, a.cache)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-stop:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
