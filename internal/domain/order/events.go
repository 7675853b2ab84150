package order

import (
	"github.com/flx/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced        = "order.placed"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// OrderItemInfo represents item information carried in events
type OrderItemInfo struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderPlacedEvent is raised when checkout creates an order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	CustomerEmail string          `json:"customer_email"`
	Items         []OrderItemInfo `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	items := make([]OrderItemInfo, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemInfo{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerEmail:   order.CustomerEmail,
		Items:           items,
		TotalAmount:     order.TotalAmount,
	}
}

// OrderStatusChangedEvent is raised on every lifecycle transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID   `json:"order_id"`
	OrderNumber  string      `json:"order_number"`
	FromStatus   OrderStatus `json:"from_status"`
	ToStatus     OrderStatus `json:"to_status"`
	CancelReason string      `json:"cancel_reason,omitempty"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, from OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		FromStatus:      from,
		ToStatus:        order.Status,
		CancelReason:    order.CancelReason,
	}
}
