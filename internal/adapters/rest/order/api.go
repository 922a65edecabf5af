package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	order_repository "go-shop-microservices/internal/adapters/repository/order"
	"go-shop-microservices/internal/domain"
	"go-shop-microservices/internal/services/order"
	"go-shop-microservices/pkg/tracing"
)

type Server struct {
	e            *echo.Echo
	orderService order.Service
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

// NewServer builds the order service REST API. Unlike the item service, read
// failures here are 500 and a read on a missing id is 404; write failures stay
// at 400. The asymmetry is part of the wire contract the gateway was built
// against, so it is kept rather than unified.
func NewServer(orderService order.Service, tracer tracing.Tracer) *Server {
	e := echo.New()

	s := &Server{
		e:            e,
		orderService: orderService,
	}

	e.HTTPErrorHandler = customHTTPErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(echo.WrapMiddleware(tracing.NewTracingMiddleware(tracer)))

	e.GET("/orders", func(c echo.Context) error {
		orders, err := s.orderService.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, ErrorMessageResp{
				Message: "could not list orders",
				Error:   err.Error(),
			})
		}

		return c.JSON(http.StatusOK, orders)
	})

	e.GET("/orders/:id", func(c echo.Context) error {
		o, err := s.orderService.Get(c.Request().Context(), c.Param("id"))
		if errors.Is(err, order_repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, ErrorMessageResp{
				Message: "order not found",
				Error:   err.Error(),
			})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, ErrorMessageResp{
				Message: "could not get order",
				Error:   err.Error(),
			})
		}

		return c.JSON(http.StatusOK, o)
	})

	e.POST("/orders", func(c echo.Context) error {
		var o domain.Order
		if err := c.Bind(&o); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorMessageResp{
				Message: "invalid request body",
				Error:   err.Error(),
			})
		}
		o.ID = ""

		if err := s.orderService.Create(c.Request().Context(), &o); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorMessageResp{
				Message: "could not create order",
				Error:   err.Error(),
			})
		}

		return c.JSON(http.StatusCreated, o)
	})

	e.PUT("/orders/:id", func(c echo.Context) error {
		var update domain.OrderUpdate
		if err := c.Bind(&update); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorMessageResp{
				Message: "invalid request body",
				Error:   err.Error(),
			})
		}

		o, err := s.orderService.Update(c.Request().Context(), c.Param("id"), &update)
		if errors.Is(err, order_repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, ErrorMessageResp{
				Message: "order not found",
			})
		}
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorMessageResp{
				Message: "could not update order",
				Error:   err.Error(),
			})
		}

		return c.JSON(http.StatusOK, o)
	})

	e.DELETE("/orders/:id", func(c echo.Context) error {
		o, err := s.orderService.Delete(c.Request().Context(), c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorMessageResp{
				Message: "could not delete order",
				Error:   err.Error(),
			})
		}

		return c.JSON(http.StatusOK, o)
	})

	return s
}

func customHTTPErrorHandler(rootError error, c echo.Context) {
	err := findHTTPError(rootError)

	if err == nil {
		err = rootError
	}

	c.Echo().DefaultHTTPErrorHandler(err, c)
}

func findHTTPError(err error) error {
	if err == nil {
		return nil
	}

	var e *echo.HTTPError
	if errors.As(err, &e) {
		return e
	}

	return findHTTPError(errors.Unwrap(err))
}

type ErrorMessageResp struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
