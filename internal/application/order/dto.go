package order

import (
	"time"

	"github.com/flx/storefront/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest represents a checkout request
type PlaceOrderRequest struct {
	CustomerName    string                `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerEmail   string                `json:"customer_email" binding:"required,email,max=254"`
	ShippingAddress string                `json:"shipping_address" binding:"max=500"`
	Items           []PlaceOrderItemInput `json:"items" binding:"required,min=1,dive"`
	Remark          string                `json:"remark" binding:"max=500"`

	// IdempotencyKey is taken from the Idempotency-Key header, never from the body
	IdempotencyKey string `json:"-"`
}

// PlaceOrderItemInput represents a product line in the checkout request
type PlaceOrderItemInput struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name" binding:"required,min=1,max=200"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdateStatusRequest represents a request to move an order through its lifecycle
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PAID SHIPPED DELIVERED CANCELLED"`
	Reason string `json:"reason" binding:"max=500"`
}

// CancelOrderRequest represents a request to cancel an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING PAID SHIPPED DELIVERED CANCELLED"`
	Date     string `form:"date" binding:"omitempty,len=6,numeric"` // YYMMDD, orders numbered on that UTC day
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"order_number"`
	CustomerName    string              `json:"customer_name"`
	CustomerEmail   string              `json:"customer_email"`
	ShippingAddress string              `json:"shipping_address,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	ItemCount       int                 `json:"item_count"`
	TotalQuantity   int                 `json:"total_quantity"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          string              `json:"status"`
	Remark          string              `json:"remark,omitempty"`
	PaidAt          *time.Time          `json:"paid_at,omitempty"`
	ShippedAt       *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason    string              `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Version         int                 `json:"version"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderListItemResponse represents an order in list responses
type OrderListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	ItemCount     int             `json:"item_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NextNumberResponse previews the number the next checkout would receive
type NextNumberResponse struct {
	OrderNumber string `json:"order_number"`
	Date        string `json:"date"`
	Sequence    int    `json:"sequence"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}

	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		ShippingAddress: o.ShippingAddress,
		Items:           items,
		ItemCount:       o.ItemCount(),
		TotalQuantity:   o.TotalQuantity(),
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		Remark:          o.Remark,
		PaidAt:          o.PaidAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
		CancelReason:    o.CancelReason,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Version:         o.Version,
	}
}

// ToOrderListItemResponse converts a domain Order to OrderListItemResponse
func ToOrderListItemResponse(o *order.Order) OrderListItemResponse {
	return OrderListItemResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		ItemCount:     o.ItemCount(),
		TotalAmount:   o.TotalAmount,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
	}
}

// ToOrderListItemResponses converts a slice of domain Orders to list responses
func ToOrderListItemResponses(orders []order.Order) []OrderListItemResponse {
	responses := make([]OrderListItemResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderListItemResponse(&orders[i])
	}
	return responses
}

func toLineItems(inputs []PlaceOrderItemInput) []order.LineItem {
	lines := make([]order.LineItem, len(inputs))
	for i, in := range inputs {
		lines[i] = order.LineItem{
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
		}
	}
	return lines
}
