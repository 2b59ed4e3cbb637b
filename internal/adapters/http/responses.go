package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/planner/internal/adapters/repository"
	"github.com/taskmaster/planner/internal/domain/entities"
)

// ResourceKey is the echo context key naming the resource a route serves
const ResourceKey = "resource"

// MessageResponse carries a human readable message
type MessageResponse struct {
	Message string `json:"message"`
}

// SuccessResponse acknowledges a command
type SuccessResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
}

// Resource binds a route to a fixed document resource
func Resource(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ResourceKey, name)
			return next(c)
		}
	}
}

func resourceOf(c echo.Context) string {
	if name, ok := c.Get(ResourceKey).(string); ok && name != "" {
		return name
	}
	return c.Param("collection")
}

func intParam(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return v, nil
}

// bindRecord decodes the JSON body only, leaving path and query parameters out
func bindRecord(c echo.Context) (repository.Record, error) {
	rec := repository.Record{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &rec); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	return rec, nil
}

func storeError(err error) error {
	if errors.Is(err, entities.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}
	if errors.Is(err, entities.ErrConflict) {
		return echo.NewHTTPError(http.StatusConflict, "Id already taken")
	}
	return err
}
