package api

import (
	"net/http"
	"strconv"

	reqdto "homeclean/internal/handler/dto/request"
	resdto "homeclean/internal/handler/dto/response"
	"homeclean/internal/handler/httperr"
	"homeclean/internal/handler/middleware"
	"homeclean/internal/pkg/cookie"
	"homeclean/internal/usecase/commands"
	"homeclean/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q}
}

// @Summary Create order
// @Description Book a cleaning slot. Anonymous callers keep the returned pending token to pay and track the order.
// @Tags orders
// @Accept json
// @Produce json
// @Param request body reqdto.CreateOrderRequest true "Order request"
// @Success 201 {object} resdto.CreateOrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	result, err := h.cmds.CreateOrder(c.Request.Context(), req.ToInput(userID))
	if err != nil {
		httperr.AbortWithUseCaseError(c, err, "Create order failed")
		return
	}

	c.Header("Location", "/api/orders/"+result.OrderID.String())
	c.JSON(http.StatusCreated, resdto.FromCreateResult(result))
}

// @Summary Get order
// @Description Owner, staff, or the holder of the pending token can view an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param X-Pending-Token header string false "Pending token returned at creation"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id, viewerFrom(c))
	if err != nil {
		httperr.AbortWithUseCaseError(c, err, "Failed to load order")
		return
	}

	resp, err := resdto.FromOrderView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render order", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List my orders
// @Description Orders of the signed-in customer, newest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 100)"
// @Param after query string false "Cursor from the previous page"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		limit = n
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	views, next, err := h.q.ListByUser(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err, "Failed to list orders")
		return
	}

	resp, err := resdto.FromOrderViews(views, next)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render orders", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Claim order
// @Description Link an anonymous order to the signed-in customer
// @Tags orders
// @Accept json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.ClaimOrderRequest true "Pending token"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/orders/{id}/claim [post]
func (h *OrderHandler) Claim(c *gin.Context) {
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
	var req reqdto.ClaimOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.ClaimOrder(c.Request.Context(), id, userID, req.PendingToken); err != nil {
		httperr.AbortWithUseCaseError(c, err, "Claim failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel order
// @Description Cancel an order the caller owns or holds the pending token for
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param X-Pending-Token header string false "Pending token returned at creation"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	v := viewerFrom(c)
	result, err := h.cmds.CancelOrder(c.Request.Context(), id, commands.Actor{
		UserID:       v.UserID,
		Role:         v.Role,
		PendingToken: v.PendingToken,
	})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err, "Cancel failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTransitionResult(result))
}

func viewerFrom(c *gin.Context) queries.Viewer {
	v := queries.Viewer{PendingToken: cookie.GetPendingToken(c)}
	if id, ok := middleware.GetUserID(c); ok {
		v.UserID = &id
		v.Role, _ = middleware.GetUserRole(c)
	}
	return v
}
