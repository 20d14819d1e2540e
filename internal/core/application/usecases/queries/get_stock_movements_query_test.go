package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

func TestNewGetStockMovementsQuery(t *testing.T) {
	newActor := func(role kernel.Role) kernel.Actor {
		actor, err := kernel.NewActor(kernel.NewUUID(), role)
		require.NoError(t, err)
		return actor
	}

	t.Run("manager may read the ledger", func(t *testing.T) {
		productID := int64(7)

		query, err := queries.NewGetStockMovementsQuery(&productID, newActor(kernel.RoleManager))

		require.NoError(t, err)
		assert.NoError(t, query.Validate())
	})

	t.Run("courier is rejected", func(t *testing.T) {
		_, err := queries.NewGetStockMovementsQuery(nil, newActor(kernel.RoleCourier))

		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("non-positive product id is rejected", func(t *testing.T) {
		productID := int64(0)

		_, err := queries.NewGetStockMovementsQuery(&productID, newActor(kernel.RoleManager))

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unconstructed query fails validation", func(t *testing.T) {
		var query queries.GetStockMovementsQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetStockMovementsQueryIsNotConstructed)
	})
}
