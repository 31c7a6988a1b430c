package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kolecta/collection-system/internal/api/metrics"
	"github.com/kolecta/collection-system/internal/core/domain"
	"github.com/kolecta/collection-system/internal/core/ports"
)

// KycHandler exposes the document-verification workflow.
type KycHandler struct {
	kyc ports.KycService
}

func NewKycHandler(kyc ports.KycService) *KycHandler {
	return &KycHandler{kyc: kyc}
}

type kycDecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
	Comment  string `json:"comment"`
}

// List handles GET /v1/kyc?state=PENDING|APPROVED|REJECTED|ALL.
//
// @Summary      List KYC records
// @Tags         kyc
// @Produce      json
// @Security     BearerAuth
// @Param        state  query     string  false  "State filter (default ALL)"
// @Success      200    {object}  ports.KycListing
// @Failure      400    {object}  map[string]string
// @Router       /v1/kyc [get]
func (h *KycHandler) List(c echo.Context) error {
	state, err := parseStateFilter(c.QueryParam("state"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown state filter")
	}

	listing, err := h.kyc.List(c.Request().Context(), state)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// Decide handles POST /v1/kyc/:id/decision.
//
// @Summary      Decide a pending KYC record
// @Tags         kyc
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "KYC record id"
// @Param        body  body      kycDecisionRequest  true  "Decision"
// @Success      200   {object}  domain.KycRecord
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/kyc/{id}/decision [post]
func (h *KycHandler) Decide(c echo.Context) error {
	var req kycDecisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	record, err := h.kyc.Decide(c.Request().Context(), c.Param("id"), domain.KycState(req.Decision), req.Comment)
	if err != nil {
		return err
	}

	metrics.KycDecisionsTotal.WithLabelValues(req.Decision).Inc()
	return c.JSON(http.StatusOK, record)
}

// parseStateFilter maps the query value to a state filter; empty and "ALL"
// mean no filter.
func parseStateFilter(raw string) (domain.KycState, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", "ALL":
		return "", nil
	case string(domain.KycPending):
		return domain.KycPending, nil
	case string(domain.KycApproved):
		return domain.KycApproved, nil
	case string(domain.KycRejected):
		return domain.KycRejected, nil
	default:
		return "", domain.ErrInvalidDecision
	}
}
