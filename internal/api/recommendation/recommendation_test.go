package recommendation

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourguide/internal/api/catalog"
	"tourguide/internal/types"
)

func awd(a types.Attraction, distance float64) types.AttractionWithDistance {
	return types.AttractionWithDistance{Attraction: a, Distance: distance}
}

func TestScoreBaseRating(t *testing.T) {
	rated := awd(types.Attraction{Name: "Rated", Rating: 4.5}, 0)
	unrated := awd(types.Attraction{Name: "Unrated"}, 0)

	assert.Equal(t, 45.0, ScoreAttraction(rated, types.TourismContext{}).Relevance)
	assert.Equal(t, 35.0, ScoreAttraction(unrated, types.TourismContext{}).Relevance)
}

func TestScoreDistanceTiers(t *testing.T) {
	ctxWithLocation := types.TourismContext{UserLocation: &types.Position{Latitude: 1.3, Longitude: 103.8}}

	cases := []struct {
		name     string
		distance float64
		bonus    float64
		clause   string
	}{
		{"very close", 400, 20, "very close to your location"},
		{"walkable", 900, 15, "within walking distance"},
		{"accessible", 1800, 10, "easily accessible"},
		{"far", 2500, 0, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score := ScoreAttraction(awd(types.Attraction{Name: "X"}, tc.distance), ctxWithLocation)
			assert.Equal(t, 35+tc.bonus, score.Relevance)
			if tc.clause != "" {
				assert.Contains(t, score.Reasons, tc.clause)
			}
		})
	}

	// No declared location means no distance term, whatever the distance.
	score := ScoreAttraction(awd(types.Attraction{Name: "X"}, 100), types.TourismContext{})
	assert.Equal(t, 35.0, score.Relevance)
}

func TestScoreInterestMatch(t *testing.T) {
	a := awd(types.Attraction{Name: "Chinatown", Category: "Cultural"}, 0)
	score := ScoreAttraction(a, types.TourismContext{Interests: []string{"cultural"}})

	assert.Equal(t, 60.0, score.Relevance)
	assert.Contains(t, score.Reasons, "matches your interest in cultural")
}

func TestScoreBudget(t *testing.T) {
	cultural := awd(types.Attraction{Name: "Temple", Category: "Cultural"}, 0)
	family := awd(types.Attraction{Name: "Park", Category: "Family"}, 0)

	low := ScoreAttraction(cultural, types.TourismContext{Budget: types.BudgetLow})
	assert.Equal(t, 50.0, low.Relevance)
	assert.Contains(t, low.Reasons, "fits your budget with free or low-cost entry")

	// Non-matching category on a low budget scores nothing but adds a tip.
	lowMiss := ScoreAttraction(family, types.TourismContext{Budget: types.BudgetLow})
	assert.Equal(t, 35.0, lowMiss.Relevance)
	assert.Contains(t, lowMiss.Tips, "Check for free entry times or student discounts")

	high := ScoreAttraction(family, types.TourismContext{Budget: types.BudgetHigh})
	assert.Equal(t, 45.0, high.Relevance)

	highMiss := ScoreAttraction(cultural, types.TourismContext{Budget: types.BudgetHigh})
	assert.Equal(t, 40.0, highMiss.Relevance)
}

func TestScoreTravelStyle(t *testing.T) {
	nature := awd(types.Attraction{Name: "Gardens", Category: "Nature & Wildlife"}, 0)

	familyScore := ScoreAttraction(nature, types.TourismContext{TravelStyle: types.TravelStyleFamily})
	assert.Equal(t, 50.0, familyScore.Relevance)
	assert.Contains(t, familyScore.Tips, "Check for family packages and child-friendly facilities")

	soloScore := ScoreAttraction(nature, types.TourismContext{TravelStyle: types.TravelStyleSolo})
	assert.Equal(t, 35.0, soloScore.Relevance)
}

func TestDurationOnlyAddsTips(t *testing.T) {
	a := awd(types.Attraction{Name: "Museum", Category: "Art & Museums"}, 0)

	without := ScoreAttraction(a, types.TourismContext{})
	with := ScoreAttraction(a, types.TourismContext{Duration: types.DurationHalfDay})

	assert.Equal(t, without.Relevance, with.Relevance)
	assert.Empty(t, without.Tips)
	assert.Contains(t, with.Tips, "Allow 2-3 hours for a thorough visit")
}

func TestReasonAssembly(t *testing.T) {
	s := Score{Reasons: []string{"within walking distance", "matches your interest in cultural"}}
	assert.Equal(t, "Recommended because it within walking distance, matches your interest in cultural.", s.Reason())

	assert.Equal(t, "A popular attraction in Singapore.", Score{}.Reason())
}

func testService(t *testing.T, attractions ...types.Attraction) *ServiceImpl {
	t.Helper()
	cat := catalog.NewServiceImpl(nil, types.SingaporeBounds, nil, slog.Default())
	cat.Ingest(attractions)
	return NewServiceImpl(cat, slog.Default())
}

func TestRecommendDeterministic(t *testing.T) {
	svc := testService(t,
		types.Attraction{Name: "A", Category: "Cultural", Latitude: 1.353, Longitude: 103.82, Rating: 4.2},
		types.Attraction{Name: "B", Category: "Nature & Wildlife", Latitude: 1.351, Longitude: 103.818, Rating: 4.7},
		types.Attraction{Name: "C", Category: "Family", Latitude: 1.355, Longitude: 103.821},
	)
	tc := types.TourismContext{
		UserLocation: &types.Position{Latitude: 1.3521, Longitude: 103.8198},
		Budget:       types.BudgetMedium,
		TravelStyle:  types.TravelStyleCouple,
	}

	first, err := svc.Recommend(context.Background(), tc, 5)
	require.NoError(t, err)
	second, err := svc.Recommend(context.Background(), tc, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRecommendTieBreakKeepsIngestionOrder(t *testing.T) {
	// Identical scores: unrated, same category, equidistant from center.
	svc := testService(t,
		types.Attraction{Name: "First In", Category: "Cultural", Latitude: 1.3531, Longitude: 103.8198},
		types.Attraction{Name: "Second In", Category: "Cultural", Latitude: 1.3511, Longitude: 103.8198},
	)
	tc := types.TourismContext{UserLocation: &types.Position{Latitude: 1.3521, Longitude: 103.8198}}

	recs, err := svc.Recommend(context.Background(), tc, 5)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, recs[0].RelevanceScore, recs[1].RelevanceScore)
	assert.Equal(t, "First In", recs[0].Attraction.Name)
	assert.Equal(t, "Second In", recs[1].Attraction.Name)
}

func TestRecommendInterestRouting(t *testing.T) {
	svc := testService(t,
		types.Attraction{Name: "Near Cultural", Category: "Cultural", Latitude: 1.353, Longitude: 103.82},
		// Same category but ~8km out, beyond the 3km interest sweep.
		types.Attraction{Name: "Far Cultural", Category: "Cultural", Latitude: 1.42, Longitude: 103.85},
		types.Attraction{Name: "Near Shopping", Category: "Shopping", Latitude: 1.351, Longitude: 103.819},
	)
	tc := types.TourismContext{
		UserLocation: &types.Position{Latitude: 1.3521, Longitude: 103.8198},
		Interests:    []string{"Cultural"},
	}

	recs, err := svc.Recommend(context.Background(), tc, 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Near Cultural", recs[0].Attraction.Name)
}

func TestRecommendDefaultLimit(t *testing.T) {
	var pool []types.Attraction
	for i := 0; i < 8; i++ {
		pool = append(pool, types.Attraction{
			Name:      "POI " + string(rune('A'+i)),
			Category:  "Cultural",
			Latitude:  1.3521 + float64(i)*0.0005,
			Longitude: 103.8198,
		})
	}
	svc := testService(t, pool...)
	tc := types.TourismContext{UserLocation: &types.Position{Latitude: 1.3521, Longitude: 103.8198}}

	recs, err := svc.Recommend(context.Background(), tc, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 5)
}

func TestNearbyContextRendering(t *testing.T) {
	svc := testService(t,
		types.Attraction{Name: "Gardens by the Bay", Category: "Nature & Wildlife", Latitude: 1.2816, Longitude: 103.8636},
	)

	out := svc.NearbyContext(context.Background(), 1.2834, 103.8607, 1000)
	assert.Contains(t, out, "Nearby attractions within 1.0km:")
	assert.Contains(t, out, "1. Gardens by the Bay (Nature & Wildlife)")

	empty := svc.NearbyContext(context.Background(), 1.45, 103.65, 500)
	assert.Equal(t, "No major tourist attractions found within 500m of the specified location.", empty)
}

func TestAttractionDetailsFuzzyMatch(t *testing.T) {
	svc := testService(t, types.Attraction{
		Name:        "National Museum of Singapore",
		Description: "the oldest museum in Singapore.",
		Category:    "Art & Museums",
		Address:     "93 Stamford Rd",
		Latitude:    1.2966,
		Longitude:   103.8485,
		Rating:      4.5,
	})

	details, ok := svc.AttractionDetails(context.Background(), "national museum")
	require.True(t, ok)
	assert.Contains(t, details, "National Museum of Singapore is the oldest museum in Singapore.")
	assert.Contains(t, details, "Located at 93 Stamford Rd")
	assert.Contains(t, details, "Rated 4.5/5 stars")

	_, ok = svc.AttractionDetails(context.Background(), "eiffel tower")
	assert.False(t, ok)
}
