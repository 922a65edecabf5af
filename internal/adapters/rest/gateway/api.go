package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"go-shop-microservices/internal/adapters/downstream"
	"go-shop-microservices/pkg/tracing"
)

const (
	genericFailureMessage = "something went wrong"
	itemNotFoundMessage   = "item not found"
	orderNotFoundMessage  = "order not found"
)

// relayPolicy is the fixed outward mapping for one route: the status used
// when the downstream call succeeds and the status plus generic message used
// on any failure. Transport errors and non-2xx downstream answers collapse
// into the same failure response; the downstream detail is discarded.
type relayPolicy struct {
	success int
	failure int
	message string
}

type Server struct {
	e           *echo.Echo
	itemClient  downstream.Client
	orderClient downstream.Client
}

func (s *Server) ListenAndServe(port int) error {
	err := s.e.Start(fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) Test(req *http.Request) *http.Response {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	return rec.Result()
}

// NewServer builds the gateway. Every route forwards 1:1 to one backend call
// and relays status plus body; the gateway holds no state and aggregates
// nothing.
func NewServer(itemClient, orderClient downstream.Client, tracer tracing.Tracer) *Server {
	e := echo.New()

	s := &Server{
		e:           e,
		itemClient:  itemClient,
		orderClient: orderClient,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(echo.WrapMiddleware(tracing.NewTracingMiddleware(tracer)))

	e.GET("/items", func(c echo.Context) error {
		return s.relay(c, s.itemClient, http.MethodGet, "/getAllItems", false, relayPolicy{
			success: http.StatusOK,
			failure: http.StatusInternalServerError,
			message: genericFailureMessage,
		})
	})

	e.GET("/item/:id", func(c echo.Context) error {
		path := fmt.Sprintf("/getById/%s", c.Param("id"))

		return s.relay(c, s.itemClient, http.MethodGet, path, false, relayPolicy{
			success: http.StatusOK,
			failure: http.StatusNotFound,
			message: itemNotFoundMessage,
		})
	})

	e.POST("/item", func(c echo.Context) error {
		return s.relay(c, s.itemClient, http.MethodPost, "/items", true, relayPolicy{
			success: http.StatusCreated,
			failure: http.StatusInternalServerError,
			message: genericFailureMessage,
		})
	})

	e.PUT("/item/:id", func(c echo.Context) error {
		path := fmt.Sprintf("/update/%s", c.Param("id"))

		return s.relay(c, s.itemClient, http.MethodPut, path, true, relayPolicy{
			success: http.StatusOK,
			failure: http.StatusInternalServerError,
			message: genericFailureMessage,
		})
	})

	e.DELETE("/item/:id", func(c echo.Context) error {
		path := fmt.Sprintf("/delete/%s", c.Param("id"))

		return s.relay(c, s.itemClient, http.MethodDelete, path, false, relayPolicy{
			success: http.StatusOK,
			failure: http.StatusInternalServerError,
			message: genericFailureMessage,
		})
	})

	e.GET("/orders", func(c echo.Context) error {
		return s.relay(c, s.orderClient, http.MethodGet, "/orders", false, relayPolicy{
			success: http.StatusOK,
			failure: http.StatusInternalServerError,
			message: genericFailureMessage,
		})
	})

	e.GET("/order/:id", func(c echo.Context) error {
		path := fmt.Sprintf("/orders/%s", c.Param("id"))

		return s.relay(c, s.orderClient, http.MethodGet, path, false, relayPolicy{
			success: http.StatusOK,
			failure: http.StatusNotFound,
			message: orderNotFoundMessage,
		})
	})

	e.POST("/order", func(c echo.Context) error {
		return s.relay(c, s.orderClient, http.MethodPost, "/orders", true, relayPolicy{
			success: http.StatusCreated,
			failure: http.StatusInternalServerError,
			message: genericFailureMessage,
		})
	})

	e.PUT("/order/:id", func(c echo.Context) error {
		path := fmt.Sprintf("/orders/%s", c.Param("id"))

		return s.relay(c, s.orderClient, http.MethodPut, path, true, relayPolicy{
			success: http.StatusOK,
			failure: http.StatusInternalServerError,
			message: genericFailureMessage,
		})
	})

	e.DELETE("/order/:id", func(c echo.Context) error {
		path := fmt.Sprintf("/orders/%s", c.Param("id"))

		return s.relay(c, s.orderClient, http.MethodDelete, path, false, relayPolicy{
			success: http.StatusOK,
			failure: http.StatusInternalServerError,
			message: genericFailureMessage,
		})
	})

	return s
}

func (s *Server) relay(
	c echo.Context,
	client downstream.Client,
	method, path string,
	forwardBody bool,
	policy relayPolicy,
) error {
	var body io.Reader
	var contentType string
	if forwardBody {
		body = c.Request().Body
		contentType = c.Request().Header.Get(echo.HeaderContentType)
	}

	res, err := client.Do(c.Request().Context(), method, path, body, contentType)
	if err != nil || !res.Succeeded() {
		return c.JSON(policy.failure, ErrorMessageResp{
			Message: policy.message,
		})
	}

	return c.JSONBlob(policy.success, res.Body)
}

type ErrorMessageResp struct {
	Message string `json:"message"`
}
