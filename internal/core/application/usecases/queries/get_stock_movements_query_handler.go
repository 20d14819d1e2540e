package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orderdesk/internal/core/domain/model/kernel"
)

// GetStockMovementsQueryHandler reads the append-only stock ledger, newest first.
type GetStockMovementsQueryHandler struct {
	db *gorm.DB
}

// NewGetStockMovementsQueryHandler creates a handler for ledger history queries.
func NewGetStockMovementsQueryHandler(db *gorm.DB) GetStockMovementsQueryHandler {
	return GetStockMovementsQueryHandler{db: db}
}

// Handle executes the ledger history query.
func (h GetStockMovementsQueryHandler) Handle(
	ctx context.Context,
	query GetStockMovementsQuery,
) ([]StockMovementResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT id, kind, product_id, serial, quantity, date, reason, user_id
		FROM stock_movements
	`
	args := make([]any, 0, 1)
	if query.ProductID() != nil {
		sql += ` WHERE product_id = ?`
		args = append(args, *query.ProductID())
	}
	sql += ` ORDER BY date DESC, id DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := make([]StockMovementResponse, 0)
	for rows.Next() {
		var (
			resp   StockMovementResponse
			userID uuid.UUID
		)
		if err = rows.Scan(
			&resp.ID, &resp.Type, &resp.ProductID, &resp.Serial,
			&resp.Quantity, &resp.Date, &resp.Reason, &userID,
		); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(userID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.UserID = id.String()
		movements = append(movements, resp)
	}

	return movements, rows.Err()
}
