package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderdesk/cmd"
	"orderdesk/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	loadDotEnv()
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var gormDB *gorm.DB
	if configs.UsesPostgres() {
		gormDB = openDatabase(configs)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Shutdown cleanup failed", "error", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := app.CreateRouter(ctx)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	if feed := app.Feed(); feed != nil {
		g.Go(func() error {
			return feed.Run(gctx)
		})
	}
	g.Go(func() error {
		return startWebServer(e, configs.HTTPPort)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		e.Logger.Error(err)
	}
}

func loadDotEnv() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		StoreTimeout:     goDotEnvVariable("STORE_TIMEOUT"),
		CartTTL:          goDotEnvVariable("CART_TTL"),
		BoardRefreshSpec: goDotEnvVariable("BOARD_REFRESH_SPEC"),
		StaffUsername:    goDotEnvVariable("STAFF_USERNAME"),
		StaffPassword:    goDotEnvVariable("STAFF_PASSWORD"),
		StaffID:          goDotEnvVariable("STAFF_ID"),
		StaffName:        goDotEnvVariable("STAFF_NAME"),
		RabbitMQURL:      goDotEnvVariable("RABBITMQ_URL"),
		RabbitMQExchange: goDotEnvVariable("RABBITMQ_EXCHANGE"),
		Timezone:         goDotEnvVariable("TIMEZONE"),
	}
	if config.HTTPPort == "" {
		config.HTTPPort = "8082"
	}
	return config
}

func goDotEnvVariable(key string) string {
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	db, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

func startWebServer(e *echo.Echo, port string) error {
	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
