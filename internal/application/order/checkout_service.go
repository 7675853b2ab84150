package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flx/storefront/internal/domain/order"
	"github.com/flx/storefront/internal/domain/shared"
	"github.com/flx/storefront/internal/infrastructure/logger"
	"github.com/flx/storefront/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultCheckoutRetries bounds how many times checkout re-allocates a number
// after the insert lost a race on the unique order number index
const DefaultCheckoutRetries = 3

const idempotencyKeyPrefix = "checkout:"

// ErrDuplicateRequest is returned when an Idempotency-Key was already used for a checkout
var ErrDuplicateRequest = shared.NewDomainError("DUPLICATE_REQUEST", "This checkout request has already been processed")

// NumberAllocator hands out the next free order number
type NumberAllocator interface {
	Allocate(ctx context.Context) (order.OrderNumber, error)
}

// CheckoutRecorder receives checkout outcomes for metrics
type CheckoutRecorder interface {
	InsertConflict(ctx context.Context, orderNumber string)
	OrderPlaced(ctx context.Context, total decimal.Decimal, attempts int)
}

type nopRecorder struct{}

func (nopRecorder) InsertConflict(context.Context, string)             {}
func (nopRecorder) OrderPlaced(context.Context, decimal.Decimal, int) {}

// CheckoutService places storefront orders
type CheckoutService struct {
	orderRepo      order.OrderRepository
	allocator      NumberAllocator
	eventPublisher shared.EventPublisher
	idempotency    shared.IdempotencyStore
	recorder       CheckoutRecorder
	logger         *zap.Logger
	maxRetries     int
	idempotencyTTL time.Duration
}

// CheckoutOption configures a CheckoutService
type CheckoutOption func(*CheckoutService)

// WithCheckoutRetries sets how many insert attempts a checkout makes
func WithCheckoutRetries(n int) CheckoutOption {
	return func(s *CheckoutService) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithIdempotencyStore enables Idempotency-Key handling
func WithIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) CheckoutOption {
	return func(s *CheckoutService) {
		s.idempotency = store
		if ttl > 0 {
			s.idempotencyTTL = ttl
		}
	}
}

// WithCheckoutRecorder sets the metrics recorder
func WithCheckoutRecorder(r CheckoutRecorder) CheckoutOption {
	return func(s *CheckoutService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(orderRepo order.OrderRepository, allocator NumberAllocator, log *zap.Logger, opts ...CheckoutOption) *CheckoutService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &CheckoutService{
		orderRepo:      orderRepo,
		allocator:      allocator,
		recorder:       nopRecorder{},
		logger:         log.Named("checkout"),
		maxRetries:     DefaultCheckoutRetries,
		idempotencyTTL: shared.DefaultIdempotencyConfig().TTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// PlaceOrder allocates an order number and persists the order.
// A unique violation on insert means another checkout took the same number;
// the number is re-allocated from a fresh read, at most maxRetries times.
func (s *CheckoutService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (resp *OrderResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "place_order")
	defer span.End()
	defer func() {
		if err != nil {
			telemetry.RecordError(span, err)
		}
	}()
	telemetry.SetAttribute(span, telemetry.SpanAttrIdempotent, req.IdempotencyKey != "")

	if req.IdempotencyKey != "" && s.idempotency != nil {
		key := idempotencyKeyPrefix + req.IdempotencyKey
		claimed, claimErr := s.idempotency.MarkProcessed(ctx, key, s.idempotencyTTL)
		if claimErr != nil {
			return nil, fmt.Errorf("claim idempotency key: %w", claimErr)
		}
		if !claimed {
			return nil, ErrDuplicateRequest
		}
		defer func() {
			if err == nil {
				return
			}
			if relErr := s.idempotency.Release(context.WithoutCancel(ctx), key); relErr != nil {
				logger.WithLogger(ctx, s.logger).Warn("Failed to release idempotency key",
					zap.String("idempotency_key", req.IdempotencyKey),
					zap.Error(relErr),
				)
			}
		}()
	}

	customer := order.Customer{
		Name:            req.CustomerName,
		Email:           req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
	}
	lines := toLineItems(req.Items)

	var placed *order.Order
	attempt := 0
	for attempt < s.maxRetries {
		attempt++

		number, allocErr := s.allocator.Allocate(ctx)
		if allocErr != nil {
			return nil, allocErr
		}

		o, buildErr := order.NewOrder(number, customer, lines)
		if buildErr != nil {
			return nil, buildErr
		}
		if req.Remark != "" {
			o.SetRemark(req.Remark)
		}

		createErr := s.orderRepo.Create(ctx, o)
		if createErr == nil {
			placed = o
			break
		}
		if !errors.Is(createErr, order.ErrDuplicateOrderNumber) {
			return nil, createErr
		}

		s.recorder.InsertConflict(ctx, o.OrderNumber)
		telemetry.AddEvent(span, "order_number_conflict", telemetry.SpanAttrOrderNumber, o.OrderNumber, telemetry.SpanAttrAttempt, attempt)
		logger.WithLogger(ctx, s.logger).Warn("Order number taken at insert, re-allocating",
			zap.String("order_number", o.OrderNumber),
			zap.Int("attempt", attempt),
		)
	}

	if placed == nil {
		return nil, order.ErrDuplicateOrderNumber.Wrap(
			fmt.Errorf("order number still taken after %d checkout attempts", attempt))
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderNumber, placed.OrderNumber,
		telemetry.SpanAttrOrderID, placed.ID.String(),
		telemetry.SpanAttrAttempt, attempt,
		telemetry.SpanAttrItemsCount, len(placed.Items),
	)
	s.recorder.OrderPlaced(ctx, placed.TotalAmount, attempt)

	s.publishEvents(ctx, placed)

	logger.WithLogger(ctx, s.logger).Info("Order placed",
		zap.String("order_number", placed.OrderNumber),
		zap.String("order_id", placed.ID.String()),
		zap.Int("attempts", attempt),
	)

	out := ToOrderResponse(placed)
	return &out, nil
}

// publishEvents hands the order's pending events to the publisher.
// The order is already committed, so a publish failure is logged, not returned.
func (s *CheckoutService) publishEvents(ctx context.Context, o *order.Order) {
	events := o.PullDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		logger.WithLogger(ctx, s.logger).Error("Failed to publish order events",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err),
		)
	}
}
