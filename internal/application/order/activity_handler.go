package order

import (
	"context"
	"fmt"

	"github.com/flx/storefront/internal/domain/order"
	"github.com/flx/storefront/internal/domain/shared"
	"go.uber.org/zap"
)

// ActivityHandler writes an audit line for every order event delivered by the in-process bus
type ActivityHandler struct {
	logger *zap.Logger
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(logger *zap.Logger) *ActivityHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityHandler{logger: logger.Named("order_activity")}
}

// EventTypes returns the event types this handler is interested in
func (h *ActivityHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced, order.EventTypeOrderStatusChanged}
}

// Handle logs the event
func (h *ActivityHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	switch ev := event.(type) {
	case *order.OrderPlacedEvent:
		h.logger.Info("order placed",
			zap.String("order_number", ev.OrderNumber),
			zap.String("order_id", ev.OrderID.String()),
			zap.Int("items_count", len(ev.Items)),
			zap.String("total_amount", ev.TotalAmount.StringFixed(2)),
		)
	case *order.OrderStatusChangedEvent:
		fields := []zap.Field{
			zap.String("order_number", ev.OrderNumber),
			zap.String("from_status", string(ev.FromStatus)),
			zap.String("to_status", string(ev.ToStatus)),
		}
		if ev.CancelReason != "" {
			fields = append(fields, zap.String("cancel_reason", ev.CancelReason))
		}
		h.logger.Info("order status changed", fields...)
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
	return nil
}
