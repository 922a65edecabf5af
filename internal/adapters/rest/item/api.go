package item

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	item_repository "go-shop-microservices/internal/adapters/repository/item"
	"go-shop-microservices/internal/domain"
	"go-shop-microservices/internal/services/item"
	"go-shop-microservices/pkg/tracing"
)

type Server struct {
	e           *echo.Echo
	itemService item.Service
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

// NewServer builds the item service REST API. Store failures surface as 400
// with the error detail; only an update on a missing item yields 404. Clients
// behind the gateway never see the detail, the gateway collapses it.
func NewServer(itemService item.Service, tracer tracing.Tracer) *Server {
	e := echo.New()

	s := &Server{
		e:           e,
		itemService: itemService,
	}

	e.HTTPErrorHandler = customHTTPErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(echo.WrapMiddleware(tracing.NewTracingMiddleware(tracer)))

	e.POST("/items", func(c echo.Context) error {
		var it domain.Item
		if err := c.Bind(&it); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorMessageResp{
				Message: "invalid request body",
				Error:   err.Error(),
			})
		}
		it.ID = ""

		if err := s.itemService.Create(c.Request().Context(), &it); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorMessageResp{
				Message: "could not create item",
				Error:   err.Error(),
			})
		}

		return c.JSON(http.StatusCreated, it)
	})

	e.GET("/getAllItems", func(c echo.Context) error {
		items, err := s.itemService.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorMessageResp{
				Message: "could not list items",
				Error:   err.Error(),
			})
		}

		return c.JSON(http.StatusOK, items)
	})

	// A malformed or unknown id is reported as a plain store failure here,
	// not as 404. The gateway turns it into its fixed not-found response.
	e.GET("/getById/:id", func(c echo.Context) error {
		it, err := s.itemService.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorMessageResp{
				Message: "could not get item",
				Error:   err.Error(),
			})
		}

		return c.JSON(http.StatusOK, it)
	})

	e.PUT("/update/:id", func(c echo.Context) error {
		var update domain.ItemUpdate
		if err := c.Bind(&update); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorMessageResp{
				Message: "invalid request body",
				Error:   err.Error(),
			})
		}

		it, err := s.itemService.Update(c.Request().Context(), c.Param("id"), &update)
		if errors.Is(err, item_repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, ErrorMessageResp{
				Message: "item not found",
			})
		}
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorMessageResp{
				Message: "could not update item",
				Error:   err.Error(),
			})
		}

		return c.JSON(http.StatusOK, it)
	})

	e.DELETE("/delete/:id", func(c echo.Context) error {
		it, err := s.itemService.Delete(c.Request().Context(), c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorMessageResp{
				Message: "could not delete item",
				Error:   err.Error(),
			})
		}

		return c.JSON(http.StatusOK, it)
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
