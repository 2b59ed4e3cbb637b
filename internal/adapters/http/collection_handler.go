package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/planner/internal/adapters/repository"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/ports"
)

// CollectionHandler serves id-keyed collections and singular resources of the document
type CollectionHandler struct {
	db     *repository.Database
	logger *logger.Logger
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(db *repository.Database, logger *logger.Logger) *CollectionHandler {
	return &CollectionHandler{
		db:     db,
		logger: logger,
	}
}

// List godoc
// @Summary List records
// @Description List a collection. Query parameters filter by field equality.
// @Tags collections
// @Produce json
// @Param collection path string true "Collection name"
// @Success 200 {array} object
// @Failure 404 {object} MessageResponse
// @Router /{collection} [get]
func (h *CollectionHandler) List(c echo.Context) error {
	filter := ports.Filter{}
	for key, values := range c.QueryParams() {
		if len(values) > 0 {
			filter[key] = values[0]
		}
	}

	items, err := h.db.List(resourceOf(c), filter)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Get record by ID
// @Tags collections
// @Produce json
// @Param collection path string true "Collection name"
// @Param id path int true "Record ID"
// @Success 200 {object} object
// @Failure 404 {object} MessageResponse
// @Router /{collection}/{id} [get]
func (h *CollectionHandler) Get(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}

	rec, err := h.db.Get(resourceOf(c), id)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

// Create godoc
// @Summary Create a record
// @Description The id in the body is kept, otherwise the next free id is assigned
// @Tags collections
// @Accept json
// @Produce json
// @Param collection path string true "Collection name"
// @Success 201 {object} object
// @Failure 400 {object} MessageResponse
// @Failure 409 {object} MessageResponse
// @Router /{collection} [post]
func (h *CollectionHandler) Create(c echo.Context) error {
	rec, err := bindRecord(c)
	if err != nil {
		return err
	}

	name := resourceOf(c)
	created, err := h.db.Insert(c.Request().Context(), name, rec)
	if err != nil {
		h.logger.Errorw("Create record failed", "collection", name, "error", err)
		return storeError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Patch godoc
// @Summary Merge fields into a record
// @Tags collections
// @Accept json
// @Produce json
// @Param collection path string true "Collection name"
// @Param id path int true "Record ID"
// @Success 200 {object} object
// @Failure 404 {object} MessageResponse
// @Router /{collection}/{id} [patch]
func (h *CollectionHandler) Patch(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	patch, err := bindRecord(c)
	if err != nil {
		return err
	}

	rec, err := h.db.Patch(c.Request().Context(), resourceOf(c), id, patch)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

// Replace godoc
// @Summary Replace a record
// @Tags collections
// @Accept json
// @Produce json
// @Param collection path string true "Collection name"
// @Param id path int true "Record ID"
// @Success 200 {object} object
// @Failure 404 {object} MessageResponse
// @Router /{collection}/{id} [put]
func (h *CollectionHandler) Replace(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	body, err := bindRecord(c)
	if err != nil {
		return err
	}

	rec, err := h.db.Replace(c.Request().Context(), resourceOf(c), id, body)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

// Delete godoc
// @Summary Delete a record
// @Tags collections
// @Param collection path string true "Collection name"
// @Param id path int true "Record ID"
// @Success 200 {object} object
// @Failure 404 {object} MessageResponse
// @Router /{collection}/{id} [delete]
func (h *CollectionHandler) Delete(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}

	name := resourceOf(c)
	if err := h.db.Delete(c.Request().Context(), name, id); err != nil {
		return storeError(err)
	}
	h.logger.Debugw("Record deleted", "collection", name, "id", id)
	return c.JSON(http.StatusOK, map[string]interface{}{})
}

// GetObject godoc
// @Summary Get a singular resource
// @Tags resources
// @Produce json
// @Success 200 {object} entities.Stats
// @Router /stats [get]
func (h *CollectionHandler) GetObject(c echo.Context) error {
	obj, err := h.db.Object(resourceOf(c))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, obj)
}

// PatchObject godoc
// @Summary Merge fields into a singular resource
// @Tags resources
// @Accept json
// @Produce json
// @Success 200 {object} entities.Stats
// @Router /stats [patch]
func (h *CollectionHandler) PatchObject(c echo.Context) error {
	patch, err := bindRecord(c)
	if err != nil {
		return err
	}

	obj, err := h.db.PatchObject(c.Request().Context(), resourceOf(c), patch)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, obj)
}
