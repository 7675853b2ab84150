package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/flx/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a storefront order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusPaid || target == OrderStatusCancelled
	case OrderStatusPaid:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// Customer holds the buyer details captured at checkout
type Customer struct {
	Name            string
	Email           string
	ShippingAddress string
}

// LineItem is a product line requested at checkout
type LineItem struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// OrderItem represents a line item of an order
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal // Quantity * UnitPrice
	CreatedAt   time.Time
}

// NewOrderItem creates a new order item
func NewOrderItem(orderID uuid.UUID, line LineItem) (*OrderItem, error) {
	if line.ProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if strings.TrimSpace(line.ProductName) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if line.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if line.UnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   line.ProductID,
		ProductName: line.ProductName,
		Quantity:    line.Quantity,
		UnitPrice:   line.UnitPrice,
		Amount:      line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		CreatedAt:   time.Now(),
	}, nil
}

// Order is the aggregate root for a placed storefront order.
// OrderNumber is assigned once at creation and never changes.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber     string
	CustomerName    string
	CustomerEmail   string
	ShippingAddress string
	Items           []OrderItem
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	Remark          string
	PaidAt          *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string
}

var _ shared.AggregateRoot = (*Order)(nil)

// NewOrder creates a pending order under an allocated order number
func NewOrder(number OrderNumber, customer Customer, lines []LineItem) (*Order, error) {
	if number.IsZero() {
		return nil, ErrInvalidOrderNumber.Wrap(fmt.Errorf("order number is required"))
	}
	if strings.TrimSpace(customer.Name) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(customer.Name) > 200 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 200 characters")
	}
	if !strings.Contains(customer.Email, "@") {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_EMAIL", "Customer email is invalid")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "An order needs at least one item")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       number.String(),
		CustomerName:      customer.Name,
		CustomerEmail:     customer.Email,
		ShippingAddress:   customer.ShippingAddress,
		Items:             make([]OrderItem, 0, len(lines)),
		TotalAmount:       decimal.Zero,
		Status:            OrderStatusPending,
	}

	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if _, dup := seen[line.ProductID]; dup {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product appears more than once in the order")
		}
		seen[line.ProductID] = struct{}{}

		item, err := NewOrderItem(order.ID, line)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, *item)
	}
	order.recalculateTotal()

	order.RecordEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// SetRemark sets the order remark
func (o *Order) SetRemark(remark string) {
	o.Remark = remark
	o.UpdatedAt = time.Now().UTC()
}

// MarkPaid records that payment was captured
func (o *Order) MarkPaid() error {
	return o.transition(OrderStatusPaid, func(now time.Time) { o.PaidAt = &now })
}

// Ship marks the order as shipped
func (o *Order) Ship() error {
	return o.transition(OrderStatusShipped, func(now time.Time) { o.ShippedAt = &now })
}

// Deliver marks the order as delivered
func (o *Order) Deliver() error {
	return o.transition(OrderStatusDelivered, func(now time.Time) { o.DeliveredAt = &now })
}

// Cancel cancels the order
func (o *Order) Cancel(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}
	return o.transition(OrderStatusCancelled, func(now time.Time) {
		o.CancelledAt = &now
		o.CancelReason = reason
	})
}

// TransitionTo moves the order to target, dispatching to the matching lifecycle method
func (o *Order) TransitionTo(target OrderStatus, reason string) error {
	switch target {
	case OrderStatusPaid:
		return o.MarkPaid()
	case OrderStatusShipped:
		return o.Ship()
	case OrderStatusDelivered:
		return o.Deliver()
	case OrderStatusCancelled:
		return o.Cancel(reason)
	}
	return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Cannot move order to %q", target))
}

func (o *Order) transition(target OrderStatus, stamp func(now time.Time)) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	from := o.Status
	now := time.Now().UTC()
	o.Status = target
	stamp(now)
	o.Touch(now)

	o.RecordEvent(NewOrderStatusChangedEvent(o, from))
	return nil
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the sum of all item quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}
