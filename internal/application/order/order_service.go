package order

import (
	"context"
	"time"

	"github.com/flx/storefront/internal/domain/order"
	"github.com/flx/storefront/internal/domain/shared"
	"github.com/flx/storefront/internal/infrastructure/logger"
	"github.com/flx/storefront/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order queries and lifecycle changes
type OrderService struct {
	orderRepo      order.OrderRepository
	allocator      NumberAllocator
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.OrderRepository, allocator NumberAllocator, log *zap.Logger) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{
		orderRepo: orderRepo,
		allocator: allocator,
		logger:    log.Named("orders"),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetByNumber retrieves an order by its order number
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	o, err := s.findByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// List retrieves a paginated list of orders
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	domainFilter, err := toDomainFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListItemResponses(orders), total, nil
}

// UpdateStatus moves an order to the requested status
func (s *OrderService) UpdateStatus(ctx context.Context, orderNumber string, req UpdateStatusRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "orders", "update_status")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderNumber, orderNumber, telemetry.SpanAttrOrderStatus, req.Status)

	o, err := s.findByNumber(ctx, orderNumber)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := o.TransitionTo(order.OrderStatus(req.Status), req.Reason); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.orderRepo.Update(ctx, o); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publishEvents(ctx, o)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Cancel cancels an order
func (s *OrderService) Cancel(ctx context.Context, orderNumber string, req CancelOrderRequest) (*OrderResponse, error) {
	return s.UpdateStatus(ctx, orderNumber, UpdateStatusRequest{
		Status: string(order.OrderStatusCancelled),
		Reason: req.Reason,
	})
}

// PreviewNextNumber reports the number the next checkout would currently receive.
// Nothing is reserved; a concurrent checkout may take it first.
func (s *OrderService) PreviewNextNumber(ctx context.Context) (*NextNumberResponse, error) {
	number, err := s.allocator.Allocate(ctx)
	if err != nil {
		return nil, err
	}
	return &NextNumberResponse{
		OrderNumber: number.String(),
		Date:        number.DatePart(),
		Sequence:    number.Sequence(),
	}, nil
}

func (s *OrderService) findByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	number, err := order.ParseOrderNumber(orderNumber)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByOrderNumber(ctx, number.String())
}

func (s *OrderService) publishEvents(ctx context.Context, o *order.Order) {
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

func toDomainFilter(filter OrderListFilter) (order.ListFilter, error) {
	domainFilter := order.DefaultListFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.Status != "" {
		status := order.OrderStatus(filter.Status)
		if !status.IsValid() {
			return order.ListFilter{}, shared.NewDomainError("INVALID_STATUS", "Unknown order status "+filter.Status)
		}
		domainFilter.Status = status
	}
	if filter.Date != "" {
		day, err := time.Parse("060102", filter.Date)
		if err != nil {
			return order.ListFilter{}, shared.ErrInvalidInput.Wrap(err)
		}
		domainFilter.NumberPrefix = order.DayPrefix(day)
	}
	return domainFilter, nil
}
