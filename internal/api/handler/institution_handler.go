package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kolecta/collection-system/internal/core/domain"
	"github.com/kolecta/collection-system/internal/core/ports"
)

// InstitutionHandler serves the super-admin tenant console.
type InstitutionHandler struct {
	repo ports.InstitutionRepository
}

func NewInstitutionHandler(repo ports.InstitutionRepository) *InstitutionHandler {
	return &InstitutionHandler{repo: repo}
}

type createInstitutionRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required"`
	City string `json:"city"`
}

// List handles GET /v1/institutions.
//
// @Summary      List tenant institutions
// @Tags         institutions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Institution
// @Router       /v1/institutions [get]
func (h *InstitutionHandler) List(c echo.Context) error {
	institutions, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, institutions)
}

// Create handles POST /v1/institutions.
//
// @Summary      Register a tenant institution
// @Tags         institutions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createInstitutionRequest  true  "Institution details"
// @Success      201   {object}  domain.Institution
// @Failure      409   {object}  map[string]string
// @Router       /v1/institutions [post]
func (h *InstitutionHandler) Create(c echo.Context) error {
	var req createInstitutionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	institution := &domain.Institution{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Code:      req.Code,
		City:      req.City,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.repo.Create(c.Request().Context(), institution); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, institution)
}
