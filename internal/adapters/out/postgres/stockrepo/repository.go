package stockrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"orderdesk/internal/adapters/out/postgres/pgerr"
	"orderdesk/internal/core/domain/model/stock"
	"orderdesk/internal/pkg/errs"
)

// GormStockRepository implements ports.StockRepository using GORM. The Try*
// methods issue one conditional UPDATE each; the row version the condition
// saw is the version the write applies to, so concurrent callers racing for
// the same serial serialize at the database.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GORM stock unit repository.
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Add saves a new unit and copies the store-assigned id back.
func (r *GormStockRepository) Add(ctx context.Context, unit *stock.Unit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	dto := unitFromDomain(unit)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify(err)
	}

	unit.SetID(dto.ID)
	return nil
}

// Get retrieves a unit by id.
func (r *GormStockRepository) Get(ctx context.Context, id int64) (*stock.Unit, error) {
	var dto UnitDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stockUnit", id)
		}
		return nil, pgerr.Classify(err)
	}

	return unitToDomain(dto)
}

// GetBySerial retrieves the unit with the given (productID, serial) pair.
func (r *GormStockRepository) GetBySerial(ctx context.Context, productID int64, serial string) (*stock.Unit, error) {
	var dto UnitDTO
	err := r.db.WithContext(ctx).
		First(&dto, "product_id = ? AND serial = ?", productID, serial).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stockUnit", serial)
		}
		return nil, pgerr.Classify(err)
	}

	return unitToDomain(dto)
}

// TryReserve atomically moves the unit from available to reserved.
// The WHERE clause is the check, RowsAffected is the verdict: of two
// concurrent calls for the same serial exactly one sees an available row.
func (r *GormStockRepository) TryReserve(ctx context.Context, productID int64, serial string, orderID int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&UnitDTO{}).
		Where("product_id = ? AND serial = ? AND status = ?",
			productID, serial, stock.UnitAvailable.String()).
		Updates(map[string]any{
			"status":   stock.UnitReserved.String(),
			"order_id": orderID,
		})
	if result.Error != nil {
		return false, pgerr.Classify(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// TryRelease atomically returns the unit reserved by orderID to available.
func (r *GormStockRepository) TryRelease(ctx context.Context, productID int64, serial string, orderID int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&UnitDTO{}).
		Where("product_id = ? AND serial = ? AND status = ? AND order_id = ?",
			productID, serial, stock.UnitReserved.String(), orderID).
		Updates(map[string]any{
			"status":   stock.UnitAvailable.String(),
			"order_id": nil,
		})
	if result.Error != nil {
		return false, pgerr.Classify(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// TryWriteOff atomically moves the unit to sold from any non-sold state.
func (r *GormStockRepository) TryWriteOff(ctx context.Context, productID int64, serial string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&UnitDTO{}).
		Where("product_id = ? AND serial = ? AND status <> ?",
			productID, serial, stock.UnitSold.String()).
		Updates(map[string]any{
			"status":   stock.UnitSold.String(),
			"order_id": nil,
		})
	if result.Error != nil {
		return false, pgerr.Classify(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a unit record.
func (r *GormStockRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&UnitDTO{}, "id = ?", id)
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("stockUnit", id)
	}
	return nil
}

// GormMovementRepository implements ports.MovementRepository using GORM.
// The ledger is insert-only; no update or delete path exists.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GORM movement repository.
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Append inserts one immutable ledger row.
func (r *GormMovementRepository) Append(ctx context.Context, movement *stock.Movement) error {
	if err := movement.Validate(); err != nil {
		return err
	}

	dto := movementFromDomain(movement)
	return pgerr.Classify(r.db.WithContext(ctx).Create(&dto).Error)
}
