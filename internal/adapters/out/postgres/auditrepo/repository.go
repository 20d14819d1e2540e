// Package auditrepo persists the append-only audit trail. Entries are written
// in the same transaction as the mutation they record and never change.
package auditrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orderdesk/internal/adapters/out/postgres/pgerr"
	"orderdesk/internal/core/domain/model/audit"
)

// EntryDTO represents one persisted audit record.
type EntryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Entity    string    `gorm:"index:idx_audit_entity;size:32"`
	EntityID  string    `gorm:"index:idx_audit_entity;size:64"`
	Action    string    `gorm:"size:32"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Snapshot  []byte    `gorm:"type:jsonb"`
	Timestamp time.Time `gorm:"index"`
}

// TableName specifies the database table name for audit entries.
func (EntryDTO) TableName() string {
	return "audit_entries"
}

// GormAuditRepository implements ports.AuditRepository using GORM.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append inserts one immutable audit record.
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := EntryDTO{
		ID:        entry.ID().Bytes(),
		Entity:    entry.Entity(),
		EntityID:  entry.EntityID(),
		Action:    string(entry.Action()),
		UserID:    entry.UserID().Bytes(),
		Snapshot:  entry.Snapshot(),
		Timestamp: entry.Timestamp(),
	}
	return pgerr.Classify(r.db.WithContext(ctx).Create(&dto).Error)
}
