package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/mudithakuruppu/employeemanagement-ui/internal"
	"github.com/mudithakuruppu/employeemanagement-ui/internal/auth"
	"github.com/mudithakuruppu/employeemanagement-ui/internal/auth/sqlite"
	"github.com/mudithakuruppu/employeemanagement-ui/internal/core/events"
	"github.com/mudithakuruppu/employeemanagement-ui/internal/employee"
	"github.com/mudithakuruppu/employeemanagement-ui/internal/employee/rest"
	"github.com/mudithakuruppu/employeemanagement-ui/internal/report"
	"github.com/mudithakuruppu/employeemanagement-ui/internal/transport"
	"github.com/mudithakuruppu/employeemanagement-ui/internal/transport/middleware"
	"github.com/mudithakuruppu/employeemanagement-ui/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config    *internal.Config
	Logger    *slog.Logger
	Session   *auth.Session
	Auth      *auth.Client
	Employees *employee.ViewModel
	Reports   *report.Generator
	EventBus  *events.EventBus

	db *gorm.DB
}

func initializeDependencies(ctx context.Context, out io.Writer) (*Dependencies, error) {
	cfg, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.LoggerEnv(), cfg.Observability.Logging.Level)
	lg := logger.L()

	db, err := sqlite.Open(cfg.Session.Path)
	if err != nil {
		return nil, err
	}

	session := auth.NewSession(sqlite.NewStore(db), cfg.Session.Key, lg)
	initCtx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()
	if err := session.Init(initCtx); err != nil {
		closeDB(db)
		return nil, err
	}

	// RequestID runs first so Logging can pick up the trace id it sets
	httpClient := &http.Client{
		Timeout: cfg.API.Timeout,
		Transport: middleware.Chain(http.DefaultTransport,
			middleware.RequestID,
			middleware.BearerToken(session.Token),
			middleware.Logging(lg),
		),
	}
	base := transport.NewBaseClient(cfg.API.BaseURL, httpClient, lg)

	bus := events.NewEventBus(lg)
	subscribeNotifications(bus, out)

	return &Dependencies{
		Config:    cfg,
		Logger:    lg,
		Session:   session,
		Auth:      auth.NewClient(base),
		Employees: employee.NewViewModel(rest.NewClient(base), events.NewNotifier(bus), lg),
		Reports:   report.NewGenerator(nil),
		EventBus:  bus,
		db:        db,
	}, nil
}

func (d *Dependencies) Close() {
	closeDB(d.db)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// subscribeNotifications prints notifications the way the web UI shows toasts.
func subscribeNotifications(bus *events.EventBus, out io.Writer) {
	printer := func(prefix string) events.Handler {
		return func(ctx context.Context, event events.Event) error {
			n, ok := event.(*events.NotificationEvent)
			if !ok {
				return nil
			}
			_, err := fmt.Fprintf(out, "%s %s\n", prefix, n.Message)
			return err
		}
	}
	bus.Subscribe(events.EventTypeNotificationSuccess, printer("✓"))
	bus.Subscribe(events.EventTypeNotificationError, printer("✗"))
}

// withDependencies wires everything for one command run and tears it down afterwards.
func withDependencies(run func(cmd *cobra.Command, args []string, deps *Dependencies) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to initialize dependencies: %w", err)
		}
		defer deps.Close()

		// one trace id per invocation so every request a command makes shares it
		cmd.SetContext(logger.WithTraceID(cmd.Context(), uuid.NewString()))
		return run(cmd, args, deps)
	}
}
