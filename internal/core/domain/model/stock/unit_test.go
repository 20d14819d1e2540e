package stock_test

import (
	"testing"

	"orderdesk/internal/core/domain/model/stock"
	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUnit(t *testing.T) *stock.Unit {
	t.Helper()
	u, err := stock.NewUnit(7, "SN-100", stock.UnitAttrs{
		Condition:      "new",
		Supplier:       "ACME Wholesale",
		PurchasePrice:  decimal.NewFromInt(15000),
		WarrantyMonths: 12,
	})
	require.NoError(t, err)
	u.SetID(1)
	return u
}

func TestNewUnit(t *testing.T) {
	t.Run("should create available unit", func(t *testing.T) {
		u := validUnit(t)

		require.NoError(t, u.Validate())
		assert.Equal(t, stock.UnitAvailable, u.Status())
		assert.Equal(t, "SN-100", u.Serial())
		assert.Nil(t, u.OrderID())
	})

	t.Run("should fail without serial", func(t *testing.T) {
		_, err := stock.NewUnit(7, "", stock.UnitAttrs{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with invalid product id", func(t *testing.T) {
		_, err := stock.NewUnit(0, "SN-1", stock.UnitAttrs{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "productId")
	})

	t.Run("should fail with negative purchase price", func(t *testing.T) {
		_, err := stock.NewUnit(7, "SN-1", stock.UnitAttrs{
			PurchasePrice: decimal.NewFromInt(-1),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "purchasePrice")
	})

	t.Run("nil unit fails validation", func(t *testing.T) {
		var u *stock.Unit

		assert.Equal(t, stock.ErrUnitIsNotConstructed, u.Validate())
	})
}

func TestUnit_Reserve(t *testing.T) {
	t.Run("available unit becomes reserved with order reference", func(t *testing.T) {
		u := validUnit(t)

		require.NoError(t, u.Reserve(42))

		assert.Equal(t, stock.UnitReserved, u.Status())
		require.NotNil(t, u.OrderID())
		assert.Equal(t, int64(42), *u.OrderID())
	})

	t.Run("re-reserving for the same order is a no-op", func(t *testing.T) {
		u := validUnit(t)
		require.NoError(t, u.Reserve(42))

		require.NoError(t, u.Reserve(42))
		assert.Equal(t, stock.UnitReserved, u.Status())
	})

	t.Run("reserving for a different order conflicts", func(t *testing.T) {
		u := validUnit(t)
		require.NoError(t, u.Reserve(42))

		err := u.Reserve(43)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, int64(42), *u.OrderID())
	})

	t.Run("reserving a sold unit conflicts", func(t *testing.T) {
		u := validUnit(t)
		u.WriteOff()

		err := u.Reserve(42)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestUnit_Release(t *testing.T) {
	t.Run("reserved unit returns to available", func(t *testing.T) {
		u := validUnit(t)
		require.NoError(t, u.Reserve(42))

		require.NoError(t, u.Release(42))

		assert.Equal(t, stock.UnitAvailable, u.Status())
		assert.Nil(t, u.OrderID())
	})

	t.Run("releasing for the wrong order conflicts", func(t *testing.T) {
		u := validUnit(t)
		require.NoError(t, u.Reserve(42))

		err := u.Release(43)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("releasing an available unit is a no-op", func(t *testing.T) {
		u := validUnit(t)

		require.NoError(t, u.Release(42))
		assert.Equal(t, stock.UnitAvailable, u.Status())
	})
}

func TestUnit_WriteOff(t *testing.T) {
	t.Run("writes off from available", func(t *testing.T) {
		u := validUnit(t)

		u.WriteOff()

		assert.Equal(t, stock.UnitSold, u.Status())
		assert.Nil(t, u.OrderID())
	})

	t.Run("writes off from reserved and clears order reference", func(t *testing.T) {
		u := validUnit(t)
		require.NoError(t, u.Reserve(42))

		u.WriteOff()

		assert.Equal(t, stock.UnitSold, u.Status())
		assert.Nil(t, u.OrderID())
	})

	t.Run("writing off twice stays sold", func(t *testing.T) {
		u := validUnit(t)
		u.WriteOff()
		u.WriteOff()

		assert.Equal(t, stock.UnitSold, u.Status())
	})
}

func TestUnit_CanDelete(t *testing.T) {
	t.Run("available and reserved units are deletable", func(t *testing.T) {
		u := validUnit(t)
		assert.True(t, u.CanDelete())

		require.NoError(t, u.Reserve(42))
		assert.True(t, u.CanDelete())
	})

	t.Run("sold units are never deletable", func(t *testing.T) {
		u := validUnit(t)
		u.WriteOff()

		assert.False(t, u.CanDelete())
	})
}

func TestUnitStatusFromString(t *testing.T) {
	for _, s := range []stock.UnitStatus{stock.UnitAvailable, stock.UnitReserved, stock.UnitSold} {
		parsed, err := stock.UnitStatusFromString(s.String())

		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := stock.UnitStatusFromString("broken")
	require.Error(t, err)
}
