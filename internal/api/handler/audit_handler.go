package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Abdikarim-dev/inventory-MS/internal/core/ports"
)

type AuditHandler struct {
	auditService ports.AuditService
}

func NewAuditHandler(auditService ports.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListByAccount returns the lifecycle audit trail for one account.
//
// @Summary      List an account's lifecycle events
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  apiResponse
// @Failure      403  {object}  apiResponse
// @Router       /api/users/{id}/events [get]
func (h *AuditHandler) ListByAccount(c echo.Context) error {
	events, err := h.auditService.ListByAccount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, len(events), toAccountEventResponses(events))
}
