package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"tourguide/internal/types"
)

func TestDistanceMeters(t *testing.T) {
	marinaBay := Point{Lat: 1.2834, Lng: 103.8607}
	gardens := Point{Lat: 1.2816, Lng: 103.8636}

	t.Run("symmetry", func(t *testing.T) {
		ab := DistanceMeters(marinaBay, gardens)
		ba := DistanceMeters(gardens, marinaBay)
		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("identity is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, DistanceMeters(marinaBay, marinaBay))
	})

	t.Run("known distance", func(t *testing.T) {
		// Marina Bay Sands to Gardens by the Bay is roughly 380m.
		d := DistanceMeters(marinaBay, gardens)
		assert.InDelta(t, 380, d, 30)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		d := DistanceMeters(Point{Lat: 0, Lng: 0}, Point{Lat: 1, Lng: 0})
		assert.InDelta(t, 111195, d, 50)
	})

	t.Run("nan propagates", func(t *testing.T) {
		d := DistanceMeters(Point{Lat: math.NaN(), Lng: 0}, gardens)
		assert.True(t, math.IsNaN(d))
	})
}

func TestIsWithinBounds(t *testing.T) {
	b := types.SingaporeBounds

	tests := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{"city center", 1.3521, 103.8198, true},
		{"south edge inclusive", 1.2, 103.8, true},
		{"north edge inclusive", 1.5, 103.8, true},
		{"too far north", 10.0, 103.8, false},
		{"too far west", 1.35, 103.5, false},
		{"too far east", 1.35, 104.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWithinBounds(tt.lat, tt.lng, b))
		})
	}
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "830m", FormatDistance(830.4))
	assert.Equal(t, "1.0km", FormatDistance(1000))
	assert.Equal(t, "2.5km", FormatDistance(2540))
	assert.Equal(t, "0m", FormatDistance(0.2))
}
