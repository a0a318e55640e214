package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadp "onboarding-service/internal/adapter/http"
	"onboarding-service/internal/infrastructure/db"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the onboarding HTTP server",
		Long: `Serve the onboarding form, the submit API and the lookup API.

Configuration comes from the environment (and an optional .env file).
The server stops gracefully on SIGINT or SIGTERM.`,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address, overrides APP_HOST/APP_PORT")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer a.close()

	e, err := httpadp.NewServer(httpadp.Deps{
		Config:      cfg,
		Logger:      a.log,
		Submissions: a.uc,
		Redis:       a.redis,
		Ping:        func(ctx context.Context) error { return db.Ping(ctx, a.gdb) },
	})
	if err != nil {
		return err
	}

	addr := cfg.Addr()
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		addr = v
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening",
			zap.String("addr", addr),
			zap.String("db_driver", cfg.DBDriver),
			zap.String("upload_dir", cfg.UploadDir),
			zap.Bool("unique_filenames", cfg.UniqueFilenames),
			zap.Bool("idempotency", a.redis != nil),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
