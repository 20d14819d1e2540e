package audit_test

import (
	"encoding/json"
	"testing"
	"time"

	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	actor := kernel.NewUUID()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	snapshot := json.RawMessage(`{"from":"new","to":"in_progress"}`)

	t.Run("should create status change entry", func(t *testing.T) {
		e, err := audit.NewEntry("order", "42", audit.ActionStatusChange, actor, snapshot, now)

		require.NoError(t, err)
		require.NoError(t, e.Validate())
		assert.NoError(t, e.ID().Validate())
		assert.Equal(t, "order", e.Entity())
		assert.Equal(t, "42", e.EntityID())
		assert.Equal(t, audit.ActionStatusChange, e.Action())
		assert.True(t, e.UserID().IsEqual(actor))
		assert.JSONEq(t, string(snapshot), string(e.Snapshot()))
		assert.Equal(t, now, e.Timestamp())
	})

	t.Run("should allow nil snapshot", func(t *testing.T) {
		e, err := audit.NewEntry("order", "42", audit.ActionDelete, actor, nil, now)

		require.NoError(t, err)
		assert.Nil(t, e.Snapshot())
	})

	t.Run("should reject empty entity", func(t *testing.T) {
		_, err := audit.NewEntry("", "42", audit.ActionCreate, actor, nil, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unknown action", func(t *testing.T) {
		_, err := audit.NewEntry("order", "42", audit.Action("merge"), actor, nil, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject invalid actor", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := audit.NewEntry("order", "42", audit.ActionCreate, invalid, nil, now)

		require.Error(t, err)
	})
}
