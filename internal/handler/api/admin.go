package api

import (
	"net/http"

	reqdto "homeclean/internal/handler/dto/request"
	resdto "homeclean/internal/handler/dto/response"
	"homeclean/internal/handler/httperr"
	"homeclean/internal/handler/middleware"
	"homeclean/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	cmds commands.OrderCommands
}

func NewAdminHandler(cmds commands.OrderCommands) *AdminHandler {
	return &AdminHandler{cmds: cmds}
}

// @Summary Change order status
// @Description Staff move an order along its lifecycle
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.ChangeStatusRequest true "Target status"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/orders/{id}/status [patch]
func (h *AdminHandler) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req reqdto.ChangeStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.cmds.ChangeStatus(c.Request.Context(), id, req.Status, commands.Actor{UserID: &userID, Role: role})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err, "Status change failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTransitionResult(result))
}
