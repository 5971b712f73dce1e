package catalog

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tourguide/internal/types"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Search(ctx context.Context, params types.AttractionSearchParams) ([]types.Attraction, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Attraction), args.Error(1)
}

func newTestService() (*ServiceImpl, *MockRepository) {
	mockRepo := new(MockRepository)
	svc := NewServiceImpl(mockRepo, types.SingaporeBounds, nil, slog.Default())
	return svc, mockRepo
}

func TestIngest(t *testing.T) {
	svc, _ := newTestService()

	t.Run("rejects out-of-bounds records", func(t *testing.T) {
		accepted := svc.Ingest([]types.Attraction{
			{Name: "Valid POI", Category: "Cultural", Latitude: 1.3000, Longitude: 103.8000},
			{Name: "Way Up North", Category: "Cultural", Latitude: 10.0, Longitude: 103.8000},
		})
		require.Len(t, accepted, 1)
		assert.Equal(t, "Valid POI", accepted[0].Name)
		assert.Len(t, svc.All(), 1)
	})

	t.Run("deduplicates by name and rounded coordinates keeping first", func(t *testing.T) {
		accepted := svc.Ingest([]types.Attraction{
			{Name: "Merlion Park", Category: "Historical", Latitude: 1.28675, Longitude: 103.85435, Rating: 4.5},
			{Name: "Merlion Park", Category: "Historical", Latitude: 1.28677, Longitude: 103.85437, Rating: 1.0},
			{Name: "Esplanade", Category: "Architecture", Latitude: 1.2899, Longitude: 103.8556},
		})
		require.Len(t, accepted, 2)
		assert.Equal(t, 4.5, accepted[0].Rating)
	})

	t.Run("assigns stable derived ids", func(t *testing.T) {
		accepted := svc.Ingest([]types.Attraction{
			{Name: "Test POI", Category: "Cultural", Latitude: 1.3, Longitude: 103.8},
		})
		require.Len(t, accepted, 1)
		assert.Equal(t, "Test POI_1.3000_103.8000", accepted[0].ID)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	center := types.Position{Latitude: 1.3521, Longitude: 103.8198}

	t.Run("ingests live records on success", func(t *testing.T) {
		svc, mockRepo := newTestService()
		mockRepo.On("Search", ctx, mock.Anything).Return([]types.Attraction{
			{Name: "Live POI", Category: "Cultural", Latitude: 1.3, Longitude: 103.8},
		}, nil).Once()

		err := svc.Refresh(ctx, center)
		require.NoError(t, err)
		assert.Len(t, svc.All(), 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("substitutes fallback dataset when source unreachable", func(t *testing.T) {
		svc, mockRepo := newTestService()
		mockRepo.On("Search", ctx, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		err := svc.Refresh(ctx, center)
		require.NoError(t, err) // never surfaced as a hard failure

		all := svc.All()
		require.NotEmpty(t, all)
		assert.Equal(t, "Marina Bay Sands", all[0].Name)
		mockRepo.AssertExpectations(t)
	})
}

func TestByCategory(t *testing.T) {
	svc, _ := newTestService()
	svc.Ingest(fallbackAttractions())

	t.Run("case-insensitive match", func(t *testing.T) {
		result := svc.ByCategory("cultural")
		require.Len(t, result, 1)
		assert.Equal(t, "Chinatown Heritage Centre", result[0].Name)
	})

	t.Run("substring matches compound labels", func(t *testing.T) {
		result := svc.ByCategory("Nature")
		assert.Len(t, result, 2)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		assert.Empty(t, svc.ByCategory("Skiing"))
	})
}

func TestWithinRadius(t *testing.T) {
	svc, _ := newTestService()
	svc.Ingest(fallbackAttractions())

	marinaBay := types.Position{Latitude: 1.2834, Longitude: 103.8607}

	t.Run("sorted ascending by distance", func(t *testing.T) {
		results := svc.WithinRadius(marinaBay, 2000)
		require.NotEmpty(t, results)
		assert.Equal(t, "Marina Bay Sands", results[0].Name)
		for i := 1; i < len(results); i++ {
			assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
		}
	})

	t.Run("radius filters far attractions", func(t *testing.T) {
		results := svc.WithinRadius(marinaBay, 1000)
		for _, res := range results {
			assert.LessOrEqual(t, res.Distance, 1000.0)
			assert.NotEqual(t, "Singapore Zoo", res.Name)
		}
	})

	t.Run("tie-break is ingestion order", func(t *testing.T) {
		svc2, _ := newTestService()
		// Mirrored longitude offsets give identical distances from center.
		svc2.Ingest([]types.Attraction{
			{Name: "East Twin", Category: "Cultural", Latitude: 1.3000, Longitude: 103.8200},
			{Name: "West Twin", Category: "Cultural", Latitude: 1.3000, Longitude: 103.8000},
		})
		results := svc2.WithinRadius(types.Position{Latitude: 1.3000, Longitude: 103.8100}, 5000)
		require.Len(t, results, 2)
		assert.InDelta(t, results[0].Distance, results[1].Distance, 0.01)
		assert.Equal(t, "East Twin", results[0].Name)
		assert.Equal(t, "West Twin", results[1].Name)
	})
}
