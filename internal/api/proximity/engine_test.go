package proximity

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourguide/internal/types"
)

type staticCatalog struct {
	attractions []types.Attraction
}

func (c *staticCatalog) All() []types.Attraction {
	return c.attractions
}

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func testEngine(t *testing.T, attractions ...types.Attraction) (*Engine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{current: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	engine := NewEngine(
		&staticCatalog{attractions: attractions},
		DefaultConfig(),
		nil,
		slog.New(slog.DiscardHandler),
	).WithClock(clock.Now)
	return engine, clock
}

func testPOI() types.Attraction {
	return types.Attraction{
		ID:        "Test POI_1.3000_103.8000",
		Name:      "Test POI",
		Category:  "Cultural",
		Latitude:  1.3,
		Longitude: 103.8,
	}
}

// ~800m due north of the test POI (one degree of latitude is ~111.2km).
func positionNear(ts time.Time) types.Position {
	return types.Position{
		Latitude:  1.3071946,
		Longitude: 103.8,
		Accuracy:  10,
		Timestamp: ts,
	}
}

// ~2.2km north, well outside the 1km threshold.
func positionFar(ts time.Time) types.Position {
	return types.Position{
		Latitude:  1.32,
		Longitude: 103.8,
		Accuracy:  10,
		Timestamp: ts,
	}
}

func TestEngineFiresAlertWithinThreshold(t *testing.T) {
	engine, clock := testEngine(t, testPOI())

	fired := engine.OnPosition(positionNear(clock.Now()))
	require.Len(t, fired, 1)

	alert := fired[0]
	assert.Equal(t, "Test POI", alert.Attraction.Name)
	assert.InDelta(t, 800, alert.Distance, 5)
	assert.False(t, alert.Dismissed)
	assert.False(t, alert.Advisory)
	assert.Equal(t, StateInRangeAlerted, engine.AttractionState(alert.Attraction.ID))
}

func TestEngineNoAlertOutsideThreshold(t *testing.T) {
	engine, clock := testEngine(t, testPOI())

	fired := engine.OnPosition(positionFar(clock.Now()))
	assert.Empty(t, fired)
	assert.Empty(t, engine.Alerts())
}

func TestEngineSuppressesWhileStayingInRange(t *testing.T) {
	engine, clock := testEngine(t, testPOI())

	require.Len(t, engine.OnPosition(positionNear(clock.Now())), 1)

	// Repeated fixes in range never re-alert, even after the cooldown
	// has long elapsed; the attraction must leave range first.
	for i := 0; i < 5; i++ {
		clock.Advance(2 * time.Minute)
		assert.Empty(t, engine.OnPosition(positionNear(clock.Now())))
	}
	assert.Len(t, engine.Alerts(), 1)
}

func TestEngineCooldownSuppressesReEntry(t *testing.T) {
	engine, clock := testEngine(t, testPOI())
	poi := testPOI()

	require.Len(t, engine.OnPosition(positionNear(clock.Now())), 1)

	clock.Advance(time.Minute)
	engine.OnPosition(positionFar(clock.Now()))
	assert.Equal(t, StateOutOfRange, engine.AttractionState(poi.ID))

	// Re-entry one minute later is still inside the 5 minute cooldown.
	clock.Advance(time.Minute)
	assert.Empty(t, engine.OnPosition(positionNear(clock.Now())))
	assert.Equal(t, StateInRangeCoolingDown, engine.AttractionState(poi.ID))

	// The cooldown expiring while still in range does not fire either.
	clock.Advance(10 * time.Minute)
	assert.Empty(t, engine.OnPosition(positionNear(clock.Now())))
	assert.Len(t, engine.Alerts(), 1)
}

func TestEngineReAlertsAfterFullCycle(t *testing.T) {
	engine, clock := testEngine(t, testPOI())

	first := engine.OnPosition(positionNear(clock.Now()))
	require.Len(t, first, 1)

	clock.Advance(time.Minute)
	engine.OnPosition(positionFar(clock.Now()))

	// Left range and cooldown elapsed: eligible again.
	clock.Advance(6 * time.Minute)
	second := engine.OnPosition(positionNear(clock.Now()))
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0].ID, second[0].ID)

	alerts := engine.Alerts()
	require.Len(t, alerts, 2)
	assert.Equal(t, second[0].ID, alerts[0].ID, "most recent alert listed first")
}

func TestEngineAtMostOneActiveAlertPerAttraction(t *testing.T) {
	engine, clock := testEngine(t, testPOI())
	poi := testPOI()

	require.Len(t, engine.OnPosition(positionNear(clock.Now())), 1)

	clock.Advance(time.Minute)
	engine.OnPosition(positionFar(clock.Now()))
	clock.Advance(10 * time.Minute)
	require.Len(t, engine.OnPosition(positionNear(clock.Now())), 1)

	active := 0
	for _, alert := range engine.Alerts() {
		if alert.Attraction.ID == poi.ID && !alert.Dismissed {
			active++
		}
	}
	assert.Equal(t, 1, active, "earlier alert auto-dismissed on re-fire")
}

func TestEngineAdvisoryOnPoorAccuracy(t *testing.T) {
	engine, clock := testEngine(t, testPOI())

	pos := positionNear(clock.Now())
	pos.Accuracy = 350
	fired := engine.OnPosition(pos)
	require.Len(t, fired, 1)
	assert.True(t, fired[0].Advisory)
}

func TestEngineDismissAlert(t *testing.T) {
	engine, clock := testEngine(t, testPOI())

	fired := engine.OnPosition(positionNear(clock.Now()))
	require.Len(t, fired, 1)

	assert.True(t, engine.DismissAlert(fired[0].ID))
	assert.Empty(t, engine.ActiveAlerts())

	// Idempotent, and unknown ids report not found.
	assert.True(t, engine.DismissAlert(fired[0].ID))
	assert.False(t, engine.DismissAlert("no-such-alert"))
}

func TestEngineClearAlertsKeepsCooldownState(t *testing.T) {
	engine, clock := testEngine(t, testPOI())

	require.Len(t, engine.OnPosition(positionNear(clock.Now())), 1)
	engine.ClearAlerts()
	assert.Empty(t, engine.Alerts())

	// Clearing the display must not re-arm the attraction.
	clock.Advance(30 * time.Second)
	assert.Empty(t, engine.OnPosition(positionNear(clock.Now())))
}

func TestEngineMultipleAttractions(t *testing.T) {
	second := types.Attraction{
		ID:        "Nearby Museum_1.3050_103.8000",
		Name:      "Nearby Museum",
		Category:  "Cultural",
		Latitude:  1.305,
		Longitude: 103.8,
	}
	engine, clock := testEngine(t, testPOI(), second)

	// ~800m from the test POI and ~240m from the museum.
	fired := engine.OnPosition(positionNear(clock.Now()))
	require.Len(t, fired, 2)

	names := []string{fired[0].Attraction.Name, fired[1].Attraction.Name}
	assert.Contains(t, names, "Test POI")
	assert.Contains(t, names, "Nearby Museum")
}
