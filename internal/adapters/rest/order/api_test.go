package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"

	order_repository "go-shop-microservices/internal/adapters/repository/order"
	"go-shop-microservices/internal/domain"
	order_service "go-shop-microservices/internal/services/order"
	"go-shop-microservices/pkg/tracing"
)

var errStoreOffline = errors.New("store offline")

// failingRepository stands in for an unreachable document store.
type failingRepository struct{}

func (failingRepository) List(ctx context.Context) ([]*domain.Order, error) {
	return nil, errStoreOffline
}

func (failingRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	return nil, errStoreOffline
}

func (failingRepository) Create(ctx context.Context, order *domain.Order) error {
	return errStoreOffline
}

func (failingRepository) Update(
	ctx context.Context,
	id string,
	update *domain.OrderUpdate,
) (*domain.Order, error) {
	return nil, errStoreOffline
}

func (failingRepository) Delete(ctx context.Context, id string) (*domain.Order, error) {
	return nil, errStoreOffline
}

func newTestTracer(t *testing.T) tracing.Tracer {
	t.Helper()

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(io.Discard))
	if err != nil {
		t.Fatalf("failed to create exporter: %v", err)
	}

	return tracing.NewTracer("order-rest-api-test", exporter)
}

// newMongoTestRepository builds the Mongo-backed repository without a
// reachable store; the requests under test fail before any round trip.
func newMongoTestRepository(t *testing.T) order_repository.Repository {
	t.Helper()

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	return order_repository.NewMongoRepository(client.Database("order-service-test"))
}

func newTestServer(t *testing.T, repo order_repository.Repository) *Server {
	t.Helper()

	tracer := newTestTracer(t)

	return NewServer(order_service.NewService(repo, tracer), tracer)
}

func jsonRequest(method, path, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

func decodeOrder(t *testing.T, resp *http.Response) domain.Order {
	t.Helper()

	var o domain.Order
	if err := json.NewDecoder(resp.Body).Decode(&o); err != nil {
		t.Fatalf("failed to decode order: %v", err)
	}

	return o
}

func TestOrderAPI_CreateAndGetByID(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, order_repository.NewMemoryRepository())

	resp := s.Test(jsonRequest(
		http.MethodPost,
		"/orders",
		`{"productName":"Pen","quantity":3,"totalPrice":4.5}`,
	))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	created := decodeOrder(t, resp)
	if created.ID == "" {
		t.Errorf("Expected assigned id in response")
	}

	resp = s.Test(jsonRequest(http.MethodGet, "/orders/"+created.ID, ""))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	got := decodeOrder(t, resp)
	if got != created {
		t.Errorf("Round trip mismatch: %+v != %+v", got, created)
	}
}

// Unlike the item service, a read on a missing order id is 404. The id
// "unknown" is no valid store identifier either, so this answer must not
// depend on which store implementation backs the service.
func TestOrderAPI_GetUnknownID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		repo order_repository.Repository
	}{
		{name: "memory store", repo: order_repository.NewMemoryRepository()},
		{name: "mongo store", repo: newMongoTestRepository(t)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestServer(t, tt.repo)

			resp := s.Test(jsonRequest(http.MethodGet, "/orders/unknown", ""))
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("Expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
			}
		})
	}
}

func TestOrderAPI_ReadFailuresAre500(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, failingRepository{})

	tests := []struct {
		name string
		req  *http.Request
	}{
		{name: "list", req: jsonRequest(http.MethodGet, "/orders", "")},
		{name: "get", req: jsonRequest(http.MethodGet, "/orders/some-id", "")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := s.Test(tt.req)
			if resp.StatusCode != http.StatusInternalServerError {
				t.Errorf("Expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
			}
		})
	}
}

func TestOrderAPI_WriteFailuresAre400(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, failingRepository{})

	tests := []struct {
		name string
		req  *http.Request
	}{
		{name: "create", req: jsonRequest(http.MethodPost, "/orders", `{"productName":"Pen"}`)},
		{name: "update", req: jsonRequest(http.MethodPut, "/orders/some-id", `{"quantity":2}`)},
		{name: "delete", req: jsonRequest(http.MethodDelete, "/orders/some-id", "")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := s.Test(tt.req)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("Expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
			}
		})
	}
}

func TestOrderAPI_UpdateAppliesOnlySuppliedFields(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, order_repository.NewMemoryRepository())

	resp := s.Test(jsonRequest(
		http.MethodPost,
		"/orders",
		`{"productName":"Pen","quantity":3,"totalPrice":4.5}`,
	))
	created := decodeOrder(t, resp)

	resp = s.Test(jsonRequest(http.MethodPut, "/orders/"+created.ID, `{"quantity":5}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	updated := decodeOrder(t, resp)
	if updated.Quantity != 5 {
		t.Errorf("Expected quantity 5, got %v", updated.Quantity)
	}
	if updated.ProductName != "Pen" || updated.TotalPrice != 4.5 {
		t.Errorf("Omitted fields changed: %+v", updated)
	}
}

func TestOrderAPI_UpdateUnknownID(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, order_repository.NewMemoryRepository())

	resp := s.Test(jsonRequest(http.MethodPut, "/orders/unknown", `{"quantity":5}`))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestOrderAPI_DeleteTwice(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, order_repository.NewMemoryRepository())

	resp := s.Test(jsonRequest(http.MethodPost, "/orders", `{"productName":"Pen"}`))
	created := decodeOrder(t, resp)

	resp = s.Test(jsonRequest(http.MethodDelete, "/orders/"+created.ID, ""))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = s.Test(jsonRequest(http.MethodDelete, "/orders/"+created.ID, ""))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status %d on repeated delete, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}
