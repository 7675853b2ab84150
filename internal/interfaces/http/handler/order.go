package handler

import (
	orderapp "github.com/flx/storefront/internal/application/order"
	"github.com/flx/storefront/internal/interfaces/http/dto"
	"github.com/flx/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles storefront order API endpoints
type OrderHandler struct {
	BaseHandler
	checkout *orderapp.CheckoutService
	orders   *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(checkout *orderapp.CheckoutService, orders *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		orders:   orders,
	}
}

// PlaceOrder godoc
// @ID           placeOrder
// @Summary      Place an order
// @Description  Checks out a cart. The order receives the next free FLX-YYMMDD-NNNN number for the current UTC day.
// @Description  Sending the same Idempotency-Key twice within its TTL yields 409 DUPLICATE_REQUEST instead of a second order.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Client generated key that guards against double submission"
// @Param        request body orderapp.PlaceOrderRequest true "Checkout request"
// @Success      201 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req orderapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	req.IdempotencyKey = c.GetHeader(middleware.IdempotencyKeyHeader)

	order, err := h.checkout.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/orders/"+order.OrderNumber)
	h.Created(c, order)
}

// List godoc
// @ID           listOrders
// @Summary      List orders
// @Description  Paginated order list, newest first by default
// @Tags         orders
// @Produce      json
// @Param        search query string false "Matches order number, customer name or email"
// @Param        status query string false "Order status" Enums(PENDING, PAID, SHIPPED, DELIVERED, CANCELLED)
// @Param        date query string false "Orders numbered on this UTC day, YYMMDD" minlength(6) maxlength(6)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Sort field" default(created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc) default(desc)
// @Success      200 {object} APIResponse[[]orderapp.OrderListItemResponse]
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	orders, total, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = dto.DefaultPage
	}
	h.SuccessWithMeta(c, orders, total, page, filter.PageSize)
}

// GetByNumber godoc
// @ID           getOrderByNumber
// @Summary      Get order by number
// @Description  Looks an order up by its FLX-YYMMDD-NNNN number
// @Tags         orders
// @Produce      json
// @Param        orderNumber path string true "Order number" example(FLX-240615-0001)
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{orderNumber} [get]
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	order, err := h.orders.GetByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus godoc
// @ID           updateOrderStatus
// @Summary      Update order status
// @Description  Moves an order along PENDING, PAID, SHIPPED, DELIVERED. Any non-final order may be cancelled.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        orderNumber path string true "Order number"
// @Param        request body orderapp.UpdateStatusRequest true "Target status"
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{orderNumber}/status [post]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req orderapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("orderNumber"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel godoc
// @ID           cancelOrder
// @Summary      Cancel order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        orderNumber path string true "Order number"
// @Param        request body orderapp.CancelOrderRequest true "Cancel reason"
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{orderNumber}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	var req orderapp.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	order, err := h.orders.Cancel(c.Request.Context(), c.Param("orderNumber"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// PreviewNextNumber godoc
// @ID           previewNextOrderNumber
// @Summary      Preview next order number
// @Description  Reports the number the next checkout would receive right now. Nothing is reserved.
// @Tags         order-numbers
// @Produce      json
// @Success      200 {object} APIResponse[orderapp.NextNumberResponse]
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /order-numbers/next [get]
func (h *OrderHandler) PreviewNextNumber(c *gin.Context) {
	next, err := h.orders.PreviewNextNumber(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, next)
}
