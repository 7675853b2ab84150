package order

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows and pages FindAll and Count
type ListFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	// Search is matched as a literal substring of the order number,
	// customer name or customer email.
	Search string
	Status OrderStatus
	// NumberPrefix keeps orders whose number starts with it, e.g. DayPrefix(day).
	NumberPrefix string
}

// DefaultListFilter returns the first page of 20 orders, newest first
func DefaultListFilter() ListFilter {
	return ListFilter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// NumberStore is the part of the order store the number allocator reads
type NumberStore interface {
	// FindLatestOrderNumberWithPrefix returns the lexicographically greatest order number
	// starting with prefix, or "" when no order carries that prefix
	FindLatestOrderNumberWithPrefix(ctx context.Context, prefix string) (string, error)

	// FindByOrderNumber finds an order by its exact order number.
	// Returns shared.ErrNotFound when no such order exists
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
}

// OrderRepository defines the persistence operations for orders
type OrderRepository interface {
	NumberStore

	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll finds orders matching the filter
	FindAll(ctx context.Context, filter ListFilter) ([]Order, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter ListFilter) (int64, error)

	// Create inserts a new order with its items.
	// An order number already present in the store yields ErrDuplicateOrderNumber
	Create(ctx context.Context, order *Order) error

	// Update persists lifecycle changes using optimistic locking
	Update(ctx context.Context, order *Order) error
}
