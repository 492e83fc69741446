package impl

import (
	"context"
	"log/slog"
	"time"

	"bistro/internal/domain/access"
	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/domain/service"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultListPageSize = 10

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService. The publisher may be
// nil when event publishing is not configured.
func NewOrderService(
	txManager repository.TransactionManager,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
	}
}

// Create places an order at checkout. Item prices and names are snapshotted
// from the seller's current menu; the item list is immutable afterwards.
func (srv *orderService) Create(ctx context.Context, identity *entity.Identity, input *usecase.CreateOrderInput) (*entity.Order, error) {
	if err := access.RequireRole(identity, entity.RoleClient); err != nil {
		return nil, errors.WithStack(err)
	}
	if input.SellerID == uuid.Nil || len(input.Items) == 0 || input.TotalAmount <= 0 || input.DeliveryType == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "seller, items, totalAmount and deliveryType are required")
	}
	if !entity.DeliveryType(input.DeliveryType).IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "deliveryType must be delivery or pickup")
	}

	order := &entity.Order{
		ClientID:      identity.UserID,
		SellerID:      input.SellerID,
		Status:        entity.OrderPending,
		PaymentStatus: entity.PaymentPending,
		TotalAmount:   input.TotalAmount,
		Tip:           input.Tip,
		DeliveryFee:   input.DeliveryFee,
		DeliveryType:  entity.DeliveryType(input.DeliveryType),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		seller, err := repoFactory.UserRepo().FindByID(ctx, input.SellerID)
		if err != nil || seller.Role != entity.RoleSeller {
			return domainerrors.ErrSellerNotFound
		}

		menuRepo := repoFactory.MenuItemRepo()
		for _, line := range input.Items {
			item, err := menuRepo.FindByID(ctx, line.MenuItemID)
			if err != nil {
				if errors.Is(err, repository.ErrMenuItemNotFound) {
					return domainerrors.ErrMenuItemNotFound.WrapMessage(line.MenuItemID.String())
				}

				return errors.Wrap(err, "failed to load menu item")
			}
			if item.SellerID != input.SellerID {
				return errors.Wrap(domainerrors.ErrValidationFailed, "menu item belongs to another seller")
			}
			if !item.Available {
				return errors.Wrapf(domainerrors.ErrValidationFailed, "menu item %s is unavailable", item.Name)
			}

			order.Items = append(order.Items, entity.OrderItem{
				MenuItemID: item.ID,
				Name:       item.Name,
				Quantity:   line.Quantity,
				UnitPrice:  item.Price,
			})
		}

		if input.PromoCode != "" {
			code := entity.NormalizePromoCode(input.PromoCode)
			promo, err := repoFactory.PromoRepo().FindByCode(ctx, code)
			if err != nil {
				if errors.Is(err, repository.ErrPromoNotFound) {
					return domainerrors.ErrPromoNotFound
				}

				return errors.Wrap(err, "failed to load promo")
			}
			discount, err := promo.Apply(order.Subtotal())
			if err != nil {
				return domainerrors.ErrPromoUnavailable
			}
			order.PromoCode = &code
			order.PromoDiscount = float64(promo.Discount)
			order.DiscountAmount = discount
		}

		return errors.Wrap(repoFactory.OrderRepo().Create(ctx, order), "failed to create order")
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to place order")
	}

	srv.logger.Info("Order placed",
		"orderID", order.ID, "clientID", order.ClientID, "sellerID", order.SellerID)
	srv.publish(ctx, order, "")

	return order, nil
}

// GetByID fetches one order; the ownership guard decides visibility.
func (srv *orderService) GetByID(ctx context.Context, identity *entity.Identity, id uuid.UUID) (*entity.Order, error) {
	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := srv.loadOrder(ctx, repoFactory, id)
		if err != nil {
			return err
		}
		if err := access.Authorize(identity, access.ActionRead, access.OrderResource(found)); err != nil {
			return err
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get order")
	}

	return order, nil
}

// UpdateStatus validates the requested transition against the state machine
// and the actor rules, then persists it under optimistic locking.
func (srv *orderService) UpdateStatus(ctx context.Context, identity *entity.Identity, id uuid.UUID, status string) (*entity.Order, error) {
	target, err := entity.ParseOrderStatus(status)
	if err != nil {
		return nil, domainerrors.ErrInvalidOrderStatus.WithDetails(
			"status must be one of: pending, confirmed, preparing, ready, in_delivery, delivered, cancelled")
	}

	var (
		order      *entity.Order
		fromStatus entity.OrderStatus
	)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := srv.loadOrder(ctx, repoFactory, id)
		if err != nil {
			return err
		}
		if err := access.AuthorizeOrderTransition(identity, found, target); err != nil {
			return err
		}

		fromStatus = found.Status
		if err := found.TransitionTo(target); err != nil {
			if errors.Is(err, entity.ErrUnknownStatus) {
				return domainerrors.ErrInvalidOrderStatus.WithDetails(err.Error())
			}

			return domainerrors.ErrInvalidTransition.WithDetails(err.Error())
		}

		if err := repoFactory.OrderRepo().Update(ctx, found); err != nil {
			if errors.Is(err, repository.ErrStaleVersion) {
				return domainerrors.ErrVersionConflict
			}

			return errors.Wrap(err, "failed to update order")
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	srv.logger.Info("Order status updated",
		"orderID", order.ID, "from", fromStatus, "to", order.Status, "by", identity.UserID)
	srv.publish(ctx, order, fromStatus)

	return order, nil
}

// Delete removes a client's own order while the kitchen has not committed to
// it. The admin override does not apply here.
func (srv *orderService) Delete(ctx context.Context, identity *entity.Identity, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		order, err := srv.loadOrder(ctx, repoFactory, id)
		if err != nil {
			return err
		}
		if err := access.AuthorizeOrderDelete(identity, order); err != nil {
			return err
		}

		return errors.Wrap(repoFactory.OrderRepo().Delete(ctx, order.ID), "failed to delete order")
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	srv.logger.Info("Order deleted", "orderID", id, "by", identity.UserID)

	return nil
}

// ListForSeller returns the seller's own orders, newest first.
func (srv *orderService) ListForSeller(ctx context.Context, identity *entity.Identity, page repository.Page) (*repository.PageResult[*entity.Order], error) {
	if err := access.RequireRole(identity, entity.RoleSeller); err != nil {
		return nil, errors.WithStack(err)
	}

	return srv.list(ctx, func(ctx context.Context, repo repository.OrderRepository) (*repository.PageResult[*entity.Order], error) {
		return repo.ListBySeller(ctx, identity.UserID, page.Normalize(defaultListPageSize))
	})
}

// ListForClient returns the client's own orders, newest first.
func (srv *orderService) ListForClient(ctx context.Context, identity *entity.Identity, page repository.Page) (*repository.PageResult[*entity.Order], error) {
	if err := access.RequireRole(identity, entity.RoleClient); err != nil {
		return nil, errors.WithStack(err)
	}

	return srv.list(ctx, func(ctx context.Context, repo repository.OrderRepository) (*repository.PageResult[*entity.Order], error) {
		return repo.ListByClient(ctx, identity.UserID, page.Normalize(defaultListPageSize))
	})
}

func (srv *orderService) list(ctx context.Context, query func(context.Context, repository.OrderRepository) (*repository.PageResult[*entity.Order], error)) (*repository.PageResult[*entity.Order], error) {
	var result *repository.PageResult[*entity.Order]

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := query(ctx, repoFactory.OrderRepo())
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		result = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return result, nil
}

func (srv *orderService) loadOrder(ctx context.Context, repoFactory repository.RepositoryFactory, id uuid.UUID) (*entity.Order, error) {
	order, err := repoFactory.OrderRepo().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// publish emits an order event after the transaction committed. Failures are
// logged, never surfaced to the caller.
func (srv *orderService) publish(ctx context.Context, order *entity.Order, from entity.OrderStatus) {
	if srv.publisher == nil {
		return
	}

	event := &service.OrderEvent{
		OrderID:    order.ID.String(),
		ClientID:   order.ClientID.String(),
		SellerID:   order.SellerID.String(),
		FromStatus: from.String(),
		ToStatus:   order.Status.String(),
		OccurredAt: time.Now().UTC(),
	}
	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.logger.Warn("Failed to publish order event", "orderID", order.ID, "error", err)
	}
}
