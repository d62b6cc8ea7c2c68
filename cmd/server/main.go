package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/altamira-viajes/backoffice/db"
	"github.com/altamira-viajes/backoffice/db/migrations"
	"github.com/altamira-viajes/backoffice/lib/logging"
	"github.com/altamira-viajes/backoffice/lib/service"
	"github.com/altamira-viajes/backoffice/lib/tokens"
	"github.com/altamira-viajes/backoffice/lib/transport"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/uptrace/bun/migrate"
)

func main() {

	c := &service.Config{}

	// Load configuration from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configured log file
	logger := logging.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}

	// Migrate the DB
	startupCtx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	_, err = migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}

	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			IgnoreErrors:     []string{"401"},
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	svc := &service.AgencyService{
		Config:        c,
		DB:            dbConn,
		Logger:        logger,
		PaymentPubSub: service.NewPubsub(),
	}

	e := transport.InitEcho(c, logger)
	logMw := transport.CreateLoggingMiddleware(logger)

	secured := e.Group("", tokens.Middleware(c.JWTSecret), logMw)
	transport.RegisterEndpoints(svc, e, secured, logMw)

	var backgroundWg sync.WaitGroup
	backGroundCtx, _ := signal.NotifyContext(context.Background(), os.Interrupt)

	// Reclassify overdue installments and accounts in the background
	backgroundWg.Add(1)
	go func() {
		err = svc.StartOverdueSweepRoutine(backGroundCtx)
		if err != nil {
			sentry.CaptureException(err)
			svc.Logger.Error(err)
		}
		svc.Logger.Info("Overdue sweep routine done")
		backgroundWg.Done()
	}()

	// Relay posted payments to the configured webhook
	if svc.Config.WebhookUrl != "" {
		backgroundWg.Add(1)
		go func() {
			svc.StartWebhookSubscription(backGroundCtx, svc.Config.WebhookUrl)
			svc.Logger.Info("Webhook routine done")
			backgroundWg.Done()
		}()
	}

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-backGroundCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	// Wait for graceful shutdown of background routines
	backgroundWg.Wait()
	svc.Logger.Info("Backoffice exiting gracefully. Goodbye.")
}
