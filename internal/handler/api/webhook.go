package api

import (
	"net/http"

	reqdto "homeclean/internal/handler/dto/request"
	resdto "homeclean/internal/handler/dto/response"
	"homeclean/internal/handler/httperr"
	"homeclean/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	cmds commands.PaymentCommands
}

func NewWebhookHandler(cmds commands.PaymentCommands) *WebhookHandler {
	return &WebhookHandler{cmds: cmds}
}

// @Summary Payment webhook
// @Description Apply a payment provider notification to an order. Replays are idempotent.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Webhook-Secret header string true "Shared webhook secret"
// @Param request body reqdto.PaymentWebhookRequest true "Payment event"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/webhooks/payment [post]
func (h *WebhookHandler) Payment(c *gin.Context) {
	var req reqdto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	ev, err := req.ToEvent()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid orderId", nil)
		return
	}

	result, err := h.cmds.ApplyPaymentEvent(c.Request.Context(), ev)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err, "Payment event failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTransitionResult(result))
}
