package application

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/techwayfit/twf-pulse-sub000/internal/agenda"
	"github.com/techwayfit/twf-pulse-sub000/internal/config"
	"github.com/techwayfit/twf-pulse-sub000/internal/database"
	"github.com/techwayfit/twf-pulse-sub000/internal/handler"
	"github.com/techwayfit/twf-pulse-sub000/internal/router"
	"github.com/techwayfit/twf-pulse-sub000/internal/service"
	"github.com/techwayfit/twf-pulse-sub000/internal/store"
)

// API is the HTTP + WebSocket API application.
type API struct {
	cfg *config.Config
	srv *http.Server
	db  *gorm.DB
	hub *service.EventHub
}

// NewAPI creates the API application: validates config, runs migrations,
// opens the database and wires services into the router.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	logger, _ := zap.NewProduction()
	if cfg.AppEnv == "development" {
		logger, _ = zap.NewDevelopment()
	}

	hub := service.NewEventHub(cfg.WSReadBufferSize, cfg.WSWriteBufferSize, cfg.WSMaxMessageSize, logger)
	st := store.New(db)

	var drafter service.AgendaDrafter
	if cfg.AgendaServiceURL != "" {
		drafter = agenda.NewClient(cfg.AgendaServiceURL,
			time.Duration(cfg.AgendaTimeoutSeconds)*time.Second, logger)
	}

	sessionSvc := service.NewSessionService(st, cfg, hub, logger)
	activitySvc := service.NewActivityService(st, drafter, hub, logger)
	participantSvc := service.NewParticipantService(st, logger)
	responseSvc := service.NewResponseService(st, hub, logger)
	dashboardSvc := service.NewDashboardService(st, logger)

	r := router.New(
		handler.NewSessionHandler(sessionSvc, cfg.WSBaseURL),
		handler.NewActivityHandler(activitySvc),
		handler.NewParticipantHandler(participantSvc),
		handler.NewResponseHandler(responseSvc),
		handler.NewDashboardHandler(dashboardSvc),
		handler.NewEventWSHandler(hub, sessionSvc, logger),
		handler.NewHealthHandler(),
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, srv: srv, db: db, hub: hub}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled; then shuts
// down gracefully.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	log.Printf("HTTP server listening on %s", a.srv.Addr)
	log.Printf("  Health:    %s/health", base)
	log.Printf("  Sessions:  %s/sessions", base)
	log.Printf("  WebSocket: ws://%s:%s/ws/sessions/:code/:subscriber_id", host, a.cfg.HTTPPort)

	go func() {
		if err := a.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
