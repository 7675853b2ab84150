package telemetry

import (
	"context"
	"errors"

	"github.com/flx/storefront/internal/domain/order"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Allocation outcomes reported on flx_order_number_allocations_total
const (
	OutcomeOK         = "ok"
	OutcomeOverflow   = "overflow"
	OutcomeExhausted  = "exhausted"
	OutcomeStoreError = "store_error"
	OutcomeError      = "error"
)

// AttemptBuckets are bucket boundaries for allocation and checkout attempt counts.
var AttemptBuckets = []float64{1, 2, 3, 4, 5, 8, 13}

// AllocationMetrics records order number allocation and checkout outcomes.
// It implements order.AllocationObserver and the checkout recorder, so the
// domain and application layers stay free of OpenTelemetry imports.
type AllocationMetrics struct {
	logger *zap.Logger

	allocations        *Counter
	collisions         *Counter
	insertConflicts    *Counter
	ordersPlaced       *Counter
	allocationAttempts *Histogram
	checkoutAttempts   *Histogram
	orderAmount        *Histogram
}

// AllocationMetricsConfig holds configuration for allocation metrics.
type AllocationMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewAllocationMetrics creates the allocation instruments on cfg.Meter.
func NewAllocationMetrics(cfg AllocationMetricsConfig) (*AllocationMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &AllocationMetrics{logger: logger}

	var err error
	if m.allocations, err = NewCounter(cfg.Meter,
		"flx_order_number_allocations_total",
		"Order number allocations by outcome",
		"{allocations}",
	); err != nil {
		return nil, err
	}
	if m.collisions, err = NewCounter(cfg.Meter,
		"flx_order_number_collisions_total",
		"Candidate order numbers found already taken",
		"{collisions}",
	); err != nil {
		return nil, err
	}
	if m.insertConflicts, err = NewCounter(cfg.Meter,
		"flx_checkout_insert_conflicts_total",
		"Order inserts rejected by the unique order number index",
		"{conflicts}",
	); err != nil {
		return nil, err
	}
	if m.ordersPlaced, err = NewCounter(cfg.Meter,
		"flx_orders_placed_total",
		"Orders created by checkout",
		"{orders}",
	); err != nil {
		return nil, err
	}
	if m.allocationAttempts, err = NewHistogram(cfg.Meter,
		"flx_order_number_allocation_attempts",
		"Candidates tried per allocation",
		"{attempts}",
		AttemptBuckets...,
	); err != nil {
		return nil, err
	}
	if m.checkoutAttempts, err = NewHistogram(cfg.Meter,
		"flx_checkout_attempts",
		"Allocate and insert rounds per placed order",
		"{attempts}",
		AttemptBuckets...,
	); err != nil {
		return nil, err
	}
	if m.orderAmount, err = NewHistogram(cfg.Meter,
		"flx_order_amount",
		"Total amount of placed orders",
		"{currency}",
		10, 25, 50, 100, 250, 500, 1000, 5000,
	); err != nil {
		return nil, err
	}

	return m, nil
}

// Collision implements order.AllocationObserver.
func (m *AllocationMetrics) Collision(ctx context.Context, candidate string) {
	m.collisions.Inc(ctx)
	m.logger.Debug("Order number candidate taken", zap.String("candidate", candidate))
}

// Allocated implements order.AllocationObserver.
func (m *AllocationMetrics) Allocated(ctx context.Context, _ order.OrderNumber, attempts int) {
	m.allocations.Inc(ctx, AttrOutcome.String(OutcomeOK))
	m.allocationAttempts.Observe(ctx, float64(attempts))
}

// Failed implements order.AllocationObserver.
func (m *AllocationMetrics) Failed(ctx context.Context, err error, attempts int) {
	outcome := AllocationOutcome(err)
	m.allocations.Inc(ctx, AttrOutcome.String(outcome))
	m.allocationAttempts.Observe(ctx, float64(attempts), AttrOutcome.String(outcome))
}

// InsertConflict records an insert that lost the race for orderNumber.
func (m *AllocationMetrics) InsertConflict(ctx context.Context, orderNumber string) {
	m.insertConflicts.Inc(ctx)
	m.logger.Info("Order number taken at insert, re-allocating", zap.String("order_number", orderNumber))
}

// OrderPlaced records a created order and the checkout rounds it took.
func (m *AllocationMetrics) OrderPlaced(ctx context.Context, total decimal.Decimal, attempts int) {
	m.ordersPlaced.Inc(ctx)
	m.checkoutAttempts.Observe(ctx, float64(attempts))
	m.orderAmount.Observe(ctx, total.InexactFloat64())
}

// AllocationOutcome maps an allocation error to its outcome label.
func AllocationOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, order.ErrSequenceOverflow):
		return OutcomeOverflow
	case errors.Is(err, order.ErrCollisionExhausted):
		return OutcomeExhausted
	case errors.Is(err, order.ErrTransientStore):
		return OutcomeStoreError
	default:
		return OutcomeError
	}
}

// ErrMeterNil is returned when a metrics constructor is given no meter.
var ErrMeterNil = &MetricsError{Op: "NewAllocationMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

var _ order.AllocationObserver = (*AllocationMetrics)(nil)

// AttrOutcome labels allocation results.
var AttrOutcome = attribute.Key("outcome")
