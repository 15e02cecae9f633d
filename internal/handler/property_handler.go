package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"propertyhub-api/internal/model"
	"propertyhub-api/pkg/logger"
	"propertyhub-api/prometheus"
)

// PropertyHandler serves plain CRUD over the property store. Mutations carry
// no ownership check against the session claim; listings are not tied to the
// account that created them.
type PropertyHandler struct {
	Repo PropertyStore
}

func NewPropertyHandler(repo PropertyStore) *PropertyHandler {
	return &PropertyHandler{Repo: repo}
}

// List returns every property.
func (h *PropertyHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordPropertyOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	properties, err := h.Repo.FindAll(c.Request().Context())
	if err != nil {
		log.Error("Failed to list properties", zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No products found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"properties": properties})
}

// Create persists a new property.
func (h *PropertyHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordPropertyOperation("create")

	var req model.PropertyInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse property", zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Unable to add property"})
	}
	if errs := req.Validate(); len(errs) > 0 {
		log.Error("Invalid property", zap.Strings("errors", errs))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Unable to add property"})
	}

	property := &model.Property{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.Repo.Insert(c.Request().Context(), property); err != nil {
		log.Error("Failed to insert property", zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Unable to add property"})
	}

	return c.JSON(http.StatusOK, echo.Map{"property": property})
}

// Get returns a property by ID.
func (h *PropertyHandler) Get(c echo.Context) error {
	prometheus.RecordPropertyOperation("get")

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Property not found"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	property, err := h.Repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Property not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"property": property})
}

// Update replaces a property's fields.
func (h *PropertyHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordPropertyOperation("update")

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Unable to update property details"})
	}

	var req model.PropertyInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse property", zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Unable to update property details"})
	}
	if errs := req.Validate(); len(errs) > 0 {
		log.Error("Invalid property", zap.Strings("errors", errs))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Unable to update property details"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	property, err := h.Repo.Update(c.Request().Context(), id, &req)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Unable to update property details"})
	}

	return c.JSON(http.StatusOK, echo.Map{"property": property})
}

// Delete removes a property and returns the deleted record.
func (h *PropertyHandler) Delete(c echo.Context) error {
	prometheus.RecordPropertyOperation("delete")

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Unable to delete the property details"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	property, err := h.Repo.Delete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Unable to delete the property details"})
	}

	return c.JSON(http.StatusOK, echo.Map{"property": property})
}
