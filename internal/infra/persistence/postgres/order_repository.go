package postgres

import (
	"context"
	"time"

	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists a new order together with its item snapshots.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrSellerNotFound.WrapMessage("order references a missing party")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i := range orderM.Items {
		order.Items[i].ID = orderM.Items[i].ID
		order.Items[i].OrderID = orderM.Items[i].OrderID
	}

	return nil
}

// FindByID retrieves an order including its items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// Update persists status/payment mutations guarded by the entity's Version.
// The items are immutable and never rewritten here.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]any{
			"status":         string(order.Status),
			"payment_status": string(order.PaymentStatus),
			"version":        order.Version + 1,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		// Either the row is gone or another writer bumped the version first.
		var exists int64
		if err := repo.db.WithContext(ctx).
			Model(&model.OrderModel{}).
			Where("id = ?", order.ID).
			Count(&exists).Error; err != nil {
			return errors.Wrap(err, "failed to check order existence")
		}
		if exists == 0 {
			return repository.ErrOrderNotFound
		}

		return repository.ErrStaleVersion
	}

	order.Version++

	return nil
}

// Delete removes an order and its item snapshots. The caller's transaction
// makes the two statements atomic.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("order_id = ?", id).Delete(&model.OrderItemModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete order items")
	}

	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.OrderModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// ListBySeller returns the seller's orders, newest first.
func (repo *orderRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, page repository.Page) (*repository.PageResult[*entity.Order], error) {
	return repo.list(ctx, "seller_id = ?", sellerID, page)
}

// ListByClient returns the client's orders, newest first.
func (repo *orderRepository) ListByClient(ctx context.Context, clientID uuid.UUID, page repository.Page) (*repository.PageResult[*entity.Order], error) {
	return repo.list(ctx, "client_id = ?", clientID, page)
}

func (repo *orderRepository) list(ctx context.Context, cond string, id uuid.UUID, page repository.Page) (*repository.PageResult[*entity.Order], error) {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{}).Where(cond, id)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}

	var models []model.OrderModel
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	items := make([]*entity.Order, 0, len(models))
	for i := range models {
		items = append(items, toOrderDomain(&models[i]))
	}

	return &repository.PageResult[*entity.Order]{
		Items:      items,
		TotalCount: total,
		Page:       page.Number,
		Size:       page.Size,
	}, nil
}

// StatsBetween aggregates non-cancelled orders created in [from, to).
func (repo *orderRepository) StatsBetween(ctx context.Context, sellerID *uuid.UUID, from, to time.Time) (repository.OrderStats, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("status <> ?", string(entity.OrderCancelled)).
		Where("created_at >= ? AND created_at < ?", from, to)
	if sellerID != nil {
		query = query.Where("seller_id = ?", *sellerID)
	}

	var row struct {
		Count   int64
		Revenue float64
	}
	err := query.
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Scan(&row).Error
	if err != nil {
		return repository.OrderStats{}, errors.Wrap(err, "failed to aggregate orders")
	}

	return repository.OrderStats{Count: row.Count, Revenue: row.Revenue}, nil
}

// toOrderDomain maps the persistence model back to a pure domain entity.
func toOrderDomain(m *model.OrderModel) *entity.Order {
	order := &entity.Order{
		ID:             m.ID,
		ClientID:       m.ClientID,
		SellerID:       m.SellerID,
		DriverID:       m.DriverID,
		Status:         entity.OrderStatus(m.Status),
		PaymentStatus:  entity.PaymentStatus(m.PaymentStatus),
		DeliveryType:   entity.DeliveryType(m.DeliveryType),
		TotalAmount:    m.TotalAmount,
		Tip:            m.Tip,
		DeliveryFee:    m.DeliveryFee,
		PromoCode:      m.PromoCode,
		PromoDiscount:  m.PromoDiscount,
		DiscountAmount: m.DiscountAmount,
		Version:        m.Version,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	for i := range m.Items {
		item := &m.Items[i]
		order.Items = append(order.Items, entity.OrderItem{
			ID:         item.ID,
			OrderID:    item.OrderID,
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}

	return order
}

// fromOrderDomain maps a domain entity to its persistence model.
func fromOrderDomain(order *entity.Order) *model.OrderModel {
	m := &model.OrderModel{
		ID:             order.ID,
		ClientID:       order.ClientID,
		SellerID:       order.SellerID,
		DriverID:       order.DriverID,
		Status:         string(order.Status),
		PaymentStatus:  string(order.PaymentStatus),
		DeliveryType:   string(order.DeliveryType),
		TotalAmount:    order.TotalAmount,
		Tip:            order.Tip,
		DeliveryFee:    order.DeliveryFee,
		PromoCode:      order.PromoCode,
		PromoDiscount:  order.PromoDiscount,
		DiscountAmount: order.DiscountAmount,
		Version:        order.Version,
	}
	for _, item := range order.Items {
		m.Items = append(m.Items, model.OrderItemModel{
			ID:         item.ID,
			OrderID:    item.OrderID,
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}

	return m
}
