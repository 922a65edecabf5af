package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"google.golang.org/grpc/credentials/insecure"

	item_repository "go-shop-microservices/internal/adapters/repository/item"
	item_rest "go-shop-microservices/internal/adapters/rest/item"
	item_service "go-shop-microservices/internal/services/item"
	"go-shop-microservices/pkg/diagnostics"
	"go-shop-microservices/pkg/tracing"
)

const (
	defaultPort            = 8081
	defaultDiagnosticsPort = 9081
	defaultMongoURI        = "mongodb://localhost:27017"
	defaultOTLPEndpoint    = "localhost:4317"

	databaseName = "item-service"

	connectTimeout = 10 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	exporter, err := otlptracegrpc.New(
		context.Background(),
		otlptracegrpc.WithEndpoint(envOr("OTLP_ENDPOINT", defaultOTLPEndpoint)),
		otlptracegrpc.WithReconnectionPeriod(5*time.Second),
		otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		logger.Error("exporter_init_failed", "error", err)
		os.Exit(1)
	}

	db := connectStore(logger, envOr("MONGO_URI", defaultMongoURI))

	itemRepository := item_repository.NewMongoRepository(db)
	itemServiceTracer := tracing.NewTracer("item-service", exporter)
	itemService := item_service.NewService(itemRepository, itemServiceTracer)

	itemRestAPITracer := tracing.NewTracer("item-rest-api", exporter)
	itemRestAPI := item_rest.NewServer(itemService, itemRestAPITracer)

	diagnosticsServer := diagnostics.NewServer(envInt(logger, "DIAGNOSTICS_PORT", defaultDiagnosticsPort))
	go func() {
		if err := diagnosticsServer.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("diagnostics_server_failed", "error", err)
		}
	}()

	port := envInt(logger, "PORT", defaultPort)
	logger.Info("item_service_starting", "port", port)

	if err := itemRestAPI.ListenAndServe(port); err != nil {
		panic(err)
	}
}

// connectStore dials the document store. A failed ping is logged and the
// service keeps running; handlers keep reporting store errors per request
// until the store becomes reachable.
func connectStore(logger *slog.Logger, uri string) *mongo.Database {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Error("store_connect_failed", "error", err)
		os.Exit(1)
	}

	if err := client.Ping(ctx, nil); err != nil {
		logger.Error("store_unreachable", "uri", uri, "error", err)
	} else {
		logger.Info("store_connected", "uri", uri)
	}

	return client.Database(databaseName)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envInt(logger *slog.Logger, key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Error("invalid_port", "key", key, "value", v, "error", err)

		return fallback
	}

	return n
}
