package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"google.golang.org/grpc/credentials/insecure"

	"go-shop-microservices/internal/adapters/downstream"
	"go-shop-microservices/internal/adapters/rest/gateway"
	"go-shop-microservices/pkg/diagnostics"
	"go-shop-microservices/pkg/tracing"
)

const (
	defaultPort            = 8080
	defaultDiagnosticsPort = 9080
	defaultOTLPEndpoint    = "localhost:4317"

	// Backend locations are fixed; there is no service discovery.
	itemServiceAddress  = "http://localhost:8081"
	orderServiceAddress = "http://localhost:8082"
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

	itemClientTracer := tracing.NewTracer("item-client", exporter)
	itemClient := downstream.NewClient(&downstream.Config{
		Address:    itemServiceAddress,
		HTTPClient: &http.Client{},
		Tracer:     itemClientTracer,
	})

	orderClientTracer := tracing.NewTracer("order-client", exporter)
	orderClient := downstream.NewClient(&downstream.Config{
		Address:    orderServiceAddress,
		HTTPClient: &http.Client{},
		Tracer:     orderClientTracer,
	})

	gatewayRestAPITracer := tracing.NewTracer("gateway-rest-api", exporter)
	gatewayRestAPI := gateway.NewServer(itemClient, orderClient, gatewayRestAPITracer)

	diagnosticsServer := diagnostics.NewServer(envInt(logger, "DIAGNOSTICS_PORT", defaultDiagnosticsPort))
	go func() {
		if err := diagnosticsServer.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("diagnostics_server_failed", "error", err)
		}
	}()

	port := envInt(logger, "PORT", defaultPort)
	logger.Info("gateway_starting",
		"port", port,
		"item_service", itemServiceAddress,
		"order_service", orderServiceAddress,
	)

	if err := gatewayRestAPI.ListenAndServe(port); err != nil {
		panic(err)
	}
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
