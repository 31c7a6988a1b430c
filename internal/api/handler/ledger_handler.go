package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kolecta/collection-system/internal/api/metrics"
	"github.com/kolecta/collection-system/internal/api/middleware"
	"github.com/kolecta/collection-system/internal/core/ports"
)

// LedgerHandler records collections and withdrawals.
type LedgerHandler struct {
	ledger   ports.LedgerService
	identity ports.IdentityService
}

func NewLedgerHandler(ledger ports.LedgerService, identity ports.IdentityService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, identity: identity}
}

type recordCollectionRequest struct {
	AccountNumber string  `json:"account_number" validate:"required"`
	Amount        float64 `json:"amount"         validate:"required,gt=0"`
	PaymentMode   string  `json:"payment_mode"   validate:"required,oneof=cash mobile_money"`
	ProofURL      string  `json:"proof_url"`
}

type recordWithdrawalRequest struct {
	AccountNumber string  `json:"account_number" validate:"required"`
	Amount        float64 `json:"amount"         validate:"required,gt=0"`
	Reason        string  `json:"reason"`
}

// RecordCollection handles POST /v1/collections. The acting agent comes from
// the session, never from the payload.
//
// @Summary      Record a cash collection
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordCollectionRequest  true  "Collection details"
// @Success      201   {object}  domain.Collection
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/collections [post]
func (h *LedgerHandler) RecordCollection(c echo.Context) error {
	var req recordCollectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	principal, ok := middleware.CtxPrincipal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	agent, err := h.identity.ResolveAgent(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	collection, err := h.ledger.RecordCollection(c.Request().Context(), ports.RecordCollectionInput{
		AccountNumber: req.AccountNumber,
		AgentID:       agent.ID,
		Amount:        req.Amount,
		PaymentMode:   req.PaymentMode,
		ProofURL:      req.ProofURL,
	})
	if err != nil {
		return err
	}

	metrics.CollectionsRecordedTotal.WithLabelValues(req.PaymentMode).Inc()
	return c.JSON(http.StatusCreated, collection)
}

// RecordWithdrawal handles POST /v1/withdrawals (caisse).
//
// @Summary      Record a withdrawal
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordWithdrawalRequest  true  "Withdrawal details"
// @Success      201   {object}  domain.Withdrawal
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/withdrawals [post]
func (h *LedgerHandler) RecordWithdrawal(c echo.Context) error {
	var req recordWithdrawalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	withdrawal, err := h.ledger.RecordWithdrawal(c.Request().Context(), ports.RecordWithdrawalInput{
		AccountNumber: req.AccountNumber,
		Amount:        req.Amount,
		Reason:        req.Reason,
	})
	if err != nil {
		return err
	}

	metrics.WithdrawalsRecordedTotal.Inc()
	return c.JSON(http.StatusCreated, withdrawal)
}

// ListWithdrawals handles GET /v1/withdrawals?commercant_id=…
//
// @Summary      List withdrawals for a commerçant
// @Tags         ledger
// @Produce      json
// @Security     BearerAuth
// @Param        commercant_id  query     string  true  "Commerçant id"
// @Success      200            {array}   domain.Withdrawal
// @Failure      400            {object}  map[string]string
// @Router       /v1/withdrawals [get]
func (h *LedgerHandler) ListWithdrawals(c echo.Context) error {
	commercantID := c.QueryParam("commercant_id")
	if commercantID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "commercant_id is required")
	}

	withdrawals, err := h.ledger.ListWithdrawals(c.Request().Context(), commercantID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, withdrawals)
}
