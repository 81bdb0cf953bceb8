package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initAccountRoutes(api *gin.RouterGroup) {
	accounts := api.Group("/accounts", h.accountIdentityMiddleware)
	accounts.GET("/:id/receipt", h.accountReceipt)
}

// @Summary Registration receipt
// @Tags Account
// @Description Renders the registration receipt of the account as a PDF
// @ModuleID accountReceipt
// @Produce  application/pdf
// @Param id path string true "account id"
// @Success 200 {file} binary
// @Failure 403
// @Failure 404 {object} ErrorStruct
// @Security AccountAuth
// @Router /accounts/{id}/receipt [get]
func (h *Handler) accountReceipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponseWithStatus(c, http.StatusNotFound, AccountNotFoundCode)
		return
	}

	if owner, _ := c.Get(accountCtx); owner != id {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	receipt, err := h.services.Accounts.Receipt(c.Request.Context(), id)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", "receipt-"+id.String()+".pdf"))
	c.Data(http.StatusOK, "application/pdf", receipt)
}
