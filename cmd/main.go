package main

import (
	"context"
	"log"

	"github.com/sowmyavarshini/Inventory-Management-System/cmd/server"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/config"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/logging"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/observability"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/storage"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	tracerProvider := otel.GetTracerProvider()
	withOTel := config.Env.OtelEndpoint != ""

	if withOTel {
		tp, shutdown, err := observability.Setup(ctx, config.Env.OtelEndpoint, config.Env.OtelAuthHeader)
		if err != nil {
			log.Fatalf("failed to set up opentelemetry: %v", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ExportTimeout)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Printf("failed to flush opentelemetry: %v", err)
			}
		}()
		tracerProvider = tp
	}

	logger, err := logging.NewLogger(config.Env.LogLevel, withOTel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := storage.NewPostgresDB(config.Env.PostgresConnStr)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}

	if err := storage.Migrate(ctx, db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	srv := server.NewServer(&server.ServerConfig{
		Addr:            config.Env.ServerAddr,
		DB:              db,
		Logger:          logger,
		TracerProvider:  tracerProvider,
		KafkaBroker:     config.Env.KafkaBroker,
		KafkaTopic:      config.Env.KafkaTopic,
		OrderMaxRetries: config.Env.OrderMaxRetries,
		ShutdownTimeout: config.Env.ShutdownTimeout,
	})

	if err := srv.Run(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
	}
}
