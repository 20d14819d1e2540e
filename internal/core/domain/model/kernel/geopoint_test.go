package kernel_test

import (
	"testing"

	"orderdesk/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("should create valid geo point", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(55.7558, 37.6173)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 55.7558, p.Lat(), 0)
		assert.InDelta(t, 37.6173, p.Lng(), 0)
	})

	t.Run("should accept boundary coordinates", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(kernel.GeoMinLat, kernel.GeoMinLng)
		require.NoError(t, err)

		_, err = kernel.NewGeoPoint(kernel.GeoMaxLat, kernel.GeoMaxLng)
		require.NoError(t, err)
	})

	t.Run("should reject out-of-range latitude", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "lat")
	})

	t.Run("should reject out-of-range longitude", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -181)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "lng")
	})

	t.Run("should join both validation errors", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(-100, 200)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "lat")
		assert.Contains(t, err.Error(), "lng")
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var p kernel.GeoPoint

		err := p.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	a, _ := kernel.NewGeoPoint(10, 20)
	b, _ := kernel.NewGeoPoint(10, 20)
	c, _ := kernel.NewGeoPoint(10, 21)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
