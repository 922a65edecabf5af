package item

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
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"

	item_repository "go-shop-microservices/internal/adapters/repository/item"
	"go-shop-microservices/internal/domain"
	item_service "go-shop-microservices/internal/services/item"
	"go-shop-microservices/pkg/tracing"
)

var errStoreOffline = errors.New("store offline")

// failingRepository stands in for an unreachable document store.
type failingRepository struct{}

func (failingRepository) List(ctx context.Context) ([]*domain.Item, error) {
	return nil, errStoreOffline
}

func (failingRepository) Get(ctx context.Context, id string) (*domain.Item, error) {
	return nil, errStoreOffline
}

func (failingRepository) Create(ctx context.Context, item *domain.Item) error {
	return errStoreOffline
}

func (failingRepository) Update(
	ctx context.Context,
	id string,
	update *domain.ItemUpdate,
) (*domain.Item, error) {
	return nil, errStoreOffline
}

func (failingRepository) Delete(ctx context.Context, id string) (*domain.Item, error) {
	return nil, errStoreOffline
}

func newTestServer(t *testing.T, repo item_repository.Repository) *Server {
	t.Helper()

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(io.Discard))
	if err != nil {
		t.Fatalf("failed to create exporter: %v", err)
	}
	tracer := tracing.NewTracer("item-rest-api-test", exporter)

	return NewServer(item_service.NewService(repo, tracer), tracer)
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

func decodeItem(t *testing.T, resp *http.Response) domain.Item {
	t.Helper()

	var it domain.Item
	if err := json.NewDecoder(resp.Body).Decode(&it); err != nil {
		t.Fatalf("failed to decode item: %v", err)
	}

	return it
}

func TestItemAPI_CreateAndGetByID(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, item_repository.NewMemoryRepository())

	resp := s.Test(jsonRequest(
		http.MethodPost,
		"/items",
		`{"name":"Pen","description":"Blue pen","price":1.5}`,
	))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	created := decodeItem(t, resp)
	if created.ID == "" {
		t.Errorf("Expected assigned id in response")
	}
	if created.Name != "Pen" || created.Description != "Blue pen" || created.Price != 1.5 {
		t.Errorf("Unexpected created item: %+v", created)
	}

	resp = s.Test(jsonRequest(http.MethodGet, "/getById/"+created.ID, ""))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	got := decodeItem(t, resp)
	if got != created {
		t.Errorf("Round trip mismatch: %+v != %+v", got, created)
	}
}

func TestItemAPI_GetAllItems(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, item_repository.NewMemoryRepository())

	resp := s.Test(jsonRequest(http.MethodGet, "/getAllItems", ""))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var items []domain.Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty collection, got %d items", len(items))
	}

	s.Test(jsonRequest(http.MethodPost, "/items", `{"name":"Pen","price":1.5}`))
	s.Test(jsonRequest(http.MethodPost, "/items", `{"name":"Pencil","price":0.5}`))

	resp = s.Test(jsonRequest(http.MethodGet, "/getAllItems", ""))
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode items: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Pen" || items[1].Name != "Pencil" {
		t.Errorf("Unexpected collection: %+v", items)
	}
}

// A missing id surfaces as the store failure status, not as 404. The gateway
// owns the not-found presentation.
func TestItemAPI_GetUnknownID(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, item_repository.NewMemoryRepository())

	resp := s.Test(jsonRequest(http.MethodGet, "/getById/unknown", ""))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

// Every store failure on the item service is 400, reads and writes alike;
// the service never answers 500.
func TestItemAPI_StoreFailuresAre400(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, failingRepository{})

	tests := []struct {
		name string
		req  *http.Request
	}{
		{name: "create", req: jsonRequest(http.MethodPost, "/items", `{"name":"Pen","price":1.5}`)},
		{name: "list", req: jsonRequest(http.MethodGet, "/getAllItems", "")},
		{name: "get", req: jsonRequest(http.MethodGet, "/getById/some-id", "")},
		{name: "update", req: jsonRequest(http.MethodPut, "/update/some-id", `{"price":2}`)},
		{name: "delete", req: jsonRequest(http.MethodDelete, "/delete/some-id", "")},
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

func TestItemAPI_UpdateAppliesOnlySuppliedFields(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, item_repository.NewMemoryRepository())

	resp := s.Test(jsonRequest(
		http.MethodPost,
		"/items",
		`{"name":"Pen","description":"Blue pen","price":1.5}`,
	))
	created := decodeItem(t, resp)

	resp = s.Test(jsonRequest(http.MethodPut, "/update/"+created.ID, `{"price":2}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	updated := decodeItem(t, resp)
	if updated.Price != 2 {
		t.Errorf("Expected price 2, got %v", updated.Price)
	}
	if updated.Name != "Pen" || updated.Description != "Blue pen" {
		t.Errorf("Omitted fields changed: %+v", updated)
	}
}

func TestItemAPI_UpdateUnknownID(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, item_repository.NewMemoryRepository())

	resp := s.Test(jsonRequest(http.MethodPut, "/update/unknown", `{"price":2}`))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestItemAPI_DeleteFlow(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, item_repository.NewMemoryRepository())

	resp := s.Test(jsonRequest(http.MethodPost, "/items", `{"name":"Pen","price":1.5}`))
	created := decodeItem(t, resp)

	resp = s.Test(jsonRequest(http.MethodDelete, "/delete/"+created.ID, ""))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	deleted := decodeItem(t, resp)
	if deleted.ID != created.ID {
		t.Errorf("Expected deleted item %s, got %+v", created.ID, deleted)
	}

	// Deleting the same id again must not crash the service.
	resp = s.Test(jsonRequest(http.MethodDelete, "/delete/"+created.ID, ""))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status %d on repeated delete, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	resp = s.Test(jsonRequest(http.MethodGet, "/getById/"+created.ID, ""))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status %d after delete, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}
