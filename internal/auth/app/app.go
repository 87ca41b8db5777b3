package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	authhttp "github.com/hallpass-io/hallpass/internal/auth/http"
	"github.com/hallpass-io/hallpass/internal/auth/service"
	"github.com/hallpass-io/hallpass/internal/auth/store/drivers/sqlite"
	"github.com/hallpass-io/hallpass/internal/auth/transport"
	"github.com/hallpass-io/hallpass/pkg/cryptox"
	"github.com/hallpass-io/hallpass/pkg/httpx"
	"github.com/hallpass-io/hallpass/pkg/slogx"
)

// Run starts the service and blocks until ctx is cancelled, then drains
// in-flight requests for the configured grace period.
func Run(ctx context.Context, cfg Config, log *slog.Logger) error {
	if cfg.PasswordPepper != "" {
		cryptox.SetPepper(cfg.PasswordPepper)
	}

	st, err := sqlite.NewStore(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("closing store", "err", err)
		}
	}()

	if err := st.ApplyMigrations(); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	log.Info("database ready", "file", cfg.DatabaseFile)

	keys, err := loadSigningKeys(cfg, log)
	if err != nil {
		return err
	}

	carrier, err := transport.New(cfg.TokenCarrier, transport.Options{
		AccessTTL:   cfg.AccessTTL,
		RefreshTTL:  cfg.RefreshTTL,
		Secure:      cfg.CookieSecure,
		CSRFProtect: cfg.CSRFProtection,
	})
	if err != nil {
		return err
	}

	router := &authhttp.Router{
		Store:           st,
		RegisterService: &service.RegisterService{Store: st},
		LoginService: &service.LoginService{
			Store:            st,
			LockoutThreshold: cfg.LockoutThreshold,
			LockoutWindow:    cfg.LockoutWindow,
		},
		TokenService: &service.TokenService{
			Keys:       keys,
			Issuer:     cfg.Issuer,
			AccessTTL:  cfg.AccessTTL,
			RefreshTTL: cfg.RefreshTTL,
		},
		Carrier: carrier,
	}

	mux := http.NewServeMux()
	router.ApplyRoutes(mux)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           httpx.Chain(mux, slogx.HTTPMiddleware(log)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr, "carrier", cfg.TokenCarrier)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", "grace_period", cfg.ShutdownGracePeriod)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGracePeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
