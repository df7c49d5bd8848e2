package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/backend-labs/pricing/internal/dal/postgres"
	"github.com/corray333/backend-labs/pricing/internal/dal/rabbitmq"
	auditrepo "github.com/corray333/backend-labs/pricing/internal/dal/repositories/audit"
	"github.com/corray333/backend-labs/pricing/internal/otel"
	"github.com/corray333/backend-labs/pricing/internal/service/services/ordersvc"
	httptransport "github.com/corray333/backend-labs/pricing/internal/transport/http"
	auditworker "github.com/corray333/backend-labs/pricing/internal/worker/audit"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	auditWorker    *auditworker.Worker
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.NewClient()

	var rabbitClient *rabbitmq.Client
	var auditWorker *auditworker.Worker
	if viper.GetBool("rabbitmq.enabled") {
		client, err := rabbitmq.NewClient()
		if err != nil {
			slog.Warn("Audit trail disabled: RabbitMQ is unreachable", "error", err)
		} else {
			repo, err := auditrepo.NewAuditRabbitMQRepository(client)
			if err != nil {
				slog.Warn("Audit trail disabled: queue declaration failed", "error", err)
				if closeErr := client.Close(); closeErr != nil {
					slog.Error("RabbitMQ close error", "error", closeErr)
				}
			} else {
				rabbitClient = client
				auditWorker = auditworker.NewWorker(repo)
			}
		}
	}

	var orderSvc *ordersvc.OrderService
	if auditWorker != nil {
		orderSvc = ordersvc.MustNewOrderService(
			ordersvc.WithPostgresClient(postgresClient),
			ordersvc.WithAuditPublisher(auditWorker),
		)
	} else {
		orderSvc = ordersvc.MustNewOrderService(
			ordersvc.WithPostgresClient(postgresClient),
		)
	}

	transport := httptransport.NewHTTPTransport(orderSvc)
	transport.RegisterRoutes()

	return &App{
		orderSvc:       orderSvc,
		transport:      transport,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		auditWorker:    auditWorker,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Provision the schema up front; failures are recoverable later via
	// the setup endpoint, so the server still starts.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 15*time.Second)
	if err := a.orderSvc.EnsureSchema(startupCtx); err != nil {
		slog.Warn("Schema provisioning failed at startup, retry via /api/setup", "error", err)
	}
	cancelStartup()

	if a.auditWorker != nil {
		go a.auditWorker.Start(context.Background())
	}

	go func() {
		slog.Info("Starting HTTP server", "url", httptransport.PublicBaseURL())
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if a.auditWorker != nil {
		a.auditWorker.Stop()
	}

	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ close error", "error", err)
		}
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
