package models

import (
	"time"

	"github.com/flx/storefront/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
// The unique index on order_number is what makes a number claimable only once.
type OrderModel struct {
	AggregateModel
	OrderNumber     string            `gorm:"type:varchar(16);not null;uniqueIndex:idx_orders_order_number"`
	CustomerName    string            `gorm:"type:varchar(200);not null"`
	CustomerEmail   string            `gorm:"type:varchar(254);not null;index"`
	ShippingAddress string            `gorm:"type:text"`
	Items           []OrderItemModel  `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	TotalAmount     decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Status          order.OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Remark          string            `gorm:"type:text"`
	PaidAt          *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		CustomerName:      m.CustomerName,
		CustomerEmail:     m.CustomerEmail,
		ShippingAddress:   m.ShippingAddress,
		TotalAmount:       m.TotalAmount,
		Status:            m.Status,
		Remark:            m.Remark,
		PaidAt:            m.PaidAt,
		ShippedAt:         m.ShippedAt,
		DeliveredAt:       m.DeliveredAt,
		CancelledAt:       m.CancelledAt,
		CancelReason:      m.CancelReason,
		Items:             make([]order.OrderItem, len(m.Items)),
	}
	for i := range m.Items {
		o.Items[i] = m.Items[i].ToDomain()
	}
	return o
}

// OrderModelFromDomain creates a persistence model from a domain Order
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		ShippingAddress: o.ShippingAddress,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		Remark:          o.Remark,
		PaidAt:          o.PaidAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
		CancelReason:    o.CancelReason,
		Items:           make([]OrderItemModel, len(o.Items)),
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	for i := range o.Items {
		m.Items[i] = OrderItemModelFromDomain(&o.Items[i])
	}
	return m
}

// OrderItemModel is the persistence model for an order line
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() order.OrderItem {
	return order.OrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates a persistence model from a domain OrderItem
func OrderItemModelFromDomain(i *order.OrderItem) OrderItemModel {
	return OrderItemModel{
		ID:          i.ID,
		OrderID:     i.OrderID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		Amount:      i.Amount,
		CreatedAt:   i.CreatedAt,
	}
}
