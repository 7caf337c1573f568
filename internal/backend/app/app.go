// Package app wires the backend together: config, store, services, router
// and the HTTP server lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	backendhttp "github.com/robochamp/backend/internal/backend/http"
	"github.com/robochamp/backend/internal/backend/mail"
	"github.com/robochamp/backend/internal/backend/service"
	"github.com/robochamp/backend/internal/backend/store/drivers/sqlite"
	"github.com/robochamp/backend/pkg/cryptox"
	"github.com/robochamp/backend/pkg/jwtx"
	"github.com/robochamp/backend/pkg/slogx"
)

// Application owns every long-lived component of the backend process.
type Application struct {
	cfg    Config
	log    *slog.Logger
	store  *sqlite.Store
	server *http.Server

	housekeeping *service.HousekeepingService
}

// New builds the full application from cfg. Nothing is listening yet; call
// Run.
func New(cfg Config) (*Application, error) {
	log := slogx.New(slogx.Config{
		Service: "robochamp-backend",
		Version: cfg.Version,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	cryptox.SetPepperPath(cfg.PepperPath)

	st, err := sqlite.NewStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	access, err := jwtx.NewSigner([]byte(cfg.AccessTokenSecret), cfg.TokenIssuer, cfg.AccessTokenTTL)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("access signer: %w", err)
	}
	refresh, err := jwtx.NewSigner([]byte(cfg.RefreshTokenSecret), cfg.TokenIssuer, cfg.RefreshTokenTTL)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("refresh signer: %w", err)
	}

	var mailer mail.Mailer = mail.LogMailer{}
	if cfg.SMTPAddr != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	}

	auth := service.NewAuthService(st, mailer, access, refresh, service.AuthConfig{
		VerificationTTL: cfg.VerificationTTL,
		FrontendURL:     cfg.FrontendURL,
	})

	router := backendhttp.NewRouter(backendhttp.Services{
		Auth:       auth,
		Arenas:     service.NewArenaService(st),
		Categories: service.NewCategoryService(st),
		Teams:      service.NewTeamService(st),
		Matches:    service.NewMatchService(st),
		Users:      service.NewUserService(st),
	}, access, st.Ping)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.Handler(log),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	return &Application{
		cfg:          cfg,
		log:          log,
		store:        st,
		server:       srv,
		housekeeping: service.NewHousekeepingService(st, cfg.HousekeepingInterval),
	}, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully within the configured grace period.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = slogx.WithContext(ctx, a.log)
	go a.housekeeping.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", slog.String("addr", a.cfg.Addr()))
		if err := a.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		_ = a.store.Close()
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownGrace)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	if cerr := a.store.Close(); err == nil {
		err = cerr
	}
	return err
}
