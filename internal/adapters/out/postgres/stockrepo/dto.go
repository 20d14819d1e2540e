// Package stockrepo persists stock units and the append-only movement ledger.
// Unit status transitions go through single conditional UPDATE statements so
// that two concurrent reservations of the same serial cannot both succeed.
package stockrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"orderdesk/internal/core/domain/model/stock"
)

// UnitDTO represents the database structure for persisting stock units.
// (product_id, serial) is unique among rows, backing the active-unit invariant.
type UnitDTO struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	ProductID      int64  `gorm:"uniqueIndex:idx_product_serial"`
	Serial         string `gorm:"uniqueIndex:idx_product_serial;size:64"`
	Condition      string
	Supplier       string
	PurchasePrice  decimal.Decimal `gorm:"type:numeric(12,2)"`
	WarrantyMonths int
	Status         string `gorm:"index;size:16"`
	OrderID        *int64 `gorm:"index"`
}

// TableName specifies the database table name for stock units.
func (UnitDTO) TableName() string {
	return "stock_units"
}

// MovementDTO represents one persisted ledger row. Rows are insert-only.
type MovementDTO struct {
	ID        string `gorm:"primaryKey;size:32"`
	Kind      string `gorm:"size:16"`
	ProductID int64  `gorm:"index"`
	Serial    string `gorm:"size:64"`
	Quantity  int
	Date      time.Time `gorm:"index"`
	Reason    string
	UserID    uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for stock movements.
func (MovementDTO) TableName() string {
	return "stock_movements"
}

func unitFromDomain(unit *stock.Unit) UnitDTO {
	return UnitDTO{
		ID:             unit.ID(),
		ProductID:      unit.ProductID(),
		Serial:         unit.Serial(),
		Condition:      unit.Condition(),
		Supplier:       unit.Supplier(),
		PurchasePrice:  unit.PurchasePrice(),
		WarrantyMonths: unit.WarrantyMonths(),
		Status:         unit.Status().String(),
		OrderID:        unit.OrderID(),
	}
}

func unitToDomain(dto UnitDTO) (*stock.Unit, error) {
	status, err := stock.UnitStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return stock.RestoreUnit(dto.ID, dto.ProductID, dto.Serial, stock.UnitAttrs{
		Condition:      dto.Condition,
		Supplier:       dto.Supplier,
		PurchasePrice:  dto.PurchasePrice,
		WarrantyMonths: dto.WarrantyMonths,
	}, status, dto.OrderID)
}

func movementFromDomain(movement *stock.Movement) MovementDTO {
	return MovementDTO{
		ID:        movement.ID(),
		Kind:      movement.Kind().String(),
		ProductID: movement.ProductID(),
		Serial:    movement.Serial(),
		Quantity:  movement.Quantity(),
		Date:      movement.Date(),
		Reason:    movement.Reason(),
		UserID:    movement.UserID().Bytes(),
	}
}

