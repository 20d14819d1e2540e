package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"orderdesk/internal/adapters/out/postgres/pgerr"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its items and copies the store-assigned ids back
// into the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify(err)
	}

	aggregate.SetID(dto.ID)
	items := aggregate.Items()
	for i := range dto.Items {
		items[i].SetID(dto.Items[i].ID)
	}
	return nil
}

// Update saves an existing order, replacing its item rows. The aggregate owns
// its items exclusively, so the previous rows are simply swapped out.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "Items").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID)
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
		return pgerr.Classify(err)
	}

	items := make([]ItemDTO, len(dto.Items))
	copy(items, dto.Items)
	for i := range items {
		items[i].ID = 0
		items[i].OrderID = dto.ID
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return pgerr.Classify(err)
	}

	domainItems := aggregate.Items()
	for i := range items {
		domainItems[i].SetID(items[i].ID)
	}
	return nil
}

// Get retrieves an order with its items by id.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, pgerr.Classify(err)
	}

	return toDomain(dto)
}

// Delete removes an order and its items. Stock units are never touched here;
// the caller has verified the order's status allows deletion.
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).Delete(&ItemDTO{}).Error; err != nil {
		return pgerr.Classify(err)
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id)
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id)
	}
	return nil
}
