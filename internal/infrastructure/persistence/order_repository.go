package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flx/storefront/internal/domain/order"
	"github.com/flx/storefront/internal/domain/shared"
	"github.com/flx/storefront/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindLatestOrderNumberWithPrefix returns the greatest order number starting with prefix.
// Sequences are zero padded, so the lexicographic maximum is the numeric maximum.
func (r *GormOrderRepository) FindLatestOrderNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	var numbers []string
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("order_number LIKE ?", prefix+"%").
		Order("order_number DESC").
		Limit(1).
		Pluck("order_number", &numbers).Error; err != nil {
		return "", err
	}
	if len(numbers) == 0 {
		return "", nil
	}
	return numbers[0], nil
}

// FindByOrderNumber finds an order by its exact order number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds orders matching the filter. Items are not loaded.
func (r *GormOrderRepository) FindAll(ctx context.Context, filter order.ListFilter) ([]order.Order, error) {
	var rows []models.OrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]order.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// Count counts orders matching the filter, ignoring pagination
func (r *GormOrderRepository) Count(ctx context.Context, filter order.ListFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts the order and its items in one transaction.
// A unique violation on order_number is reported as order.ErrDuplicateOrderNumber.
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
	if err != nil {
		if IsUniqueViolation(err) {
			return order.ErrDuplicateOrderNumber.Wrap(fmt.Errorf("insert %s: %w", o.OrderNumber, err))
		}
		return err
	}
	return nil
}

// Update persists lifecycle fields using optimistic locking.
// The aggregate increments its version on every transition, so the stored row
// must still carry the previous version.
func (r *GormOrderRepository) Update(ctx context.Context, o *order.Order) error {
	expected := o.Version - 1
	if expected < 1 {
		expected = 1
	}

	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", o.ID, expected).
		Updates(map[string]interface{}{
			"status":        o.Status,
			"remark":        o.Remark,
			"paid_at":       o.PaidAt,
			"shipped_at":    o.ShippedAt,
			"delivered_at":  o.DeliveredAt,
			"cancelled_at":  o.CancelledAt,
			"cancel_reason": o.CancelReason,
			"version":       o.Version,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("id = ?", o.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return shared.ErrConcurrencyConflict
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter order.ListFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query
}

func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter order.ListFilter) *gorm.DB {
	if filter.Search != "" {
		like := "LIKE"
		if r.db.Dialector.Name() == "postgres" {
			like = "ILIKE"
		}
		pattern := "%" + escapeLike(filter.Search) + "%"
		query = query.Where(
			fmt.Sprintf(`order_number %[1]s ? ESCAPE '\' OR customer_name %[1]s ? ESCAPE '\' OR customer_email %[1]s ? ESCAPE '\'`, like),
			pattern, pattern, pattern,
		)
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.NumberPrefix != "" {
		query = query.Where(`order_number LIKE ? ESCAPE '\'`, escapeLike(filter.NumberPrefix)+"%")
	}
	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes s match literally inside a LIKE pattern using '\' as the escape character
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
