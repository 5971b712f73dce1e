package conversation

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Synthesized weather tables. The values are plausible for the region; the
// answer is openly non-authoritative and only exists so the weather tool has
// something friendly to say.
var (
	weatherTemperatures = []int{18, 22, 25, 28, 32, 15, 20, 24, 27, 30}
	weatherConditions   = []string{"Sunny", "Partly Cloudy", "Cloudy", "Rainy", "Thunderstorms", "Clear"}
	weatherHumidity     = []int{45, 55, 65, 70, 80, 50, 60}
	weatherWindSpeed    = []int{5, 8, 12, 15, 18, 10, 14}
)

// FakeWeather synthesizes a weather report for the city. Deterministic: the
// same city always gets the same report, which keeps replies stable across
// repeated questions in a session.
func FakeWeather(city, country string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(city))))
	seed := h.Sum32()

	temp := weatherTemperatures[seed%uint32(len(weatherTemperatures))]
	condition := weatherConditions[(seed>>4)%uint32(len(weatherConditions))]
	humidity := weatherHumidity[(seed>>8)%uint32(len(weatherHumidity))]
	wind := weatherWindSpeed[(seed>>12)%uint32(len(weatherWindSpeed))]

	location := city
	if country != "" {
		location = city + ", " + country
	}
	return fmt.Sprintf("Current weather in %s: %d°C, %s. Humidity: %d%%, Wind: %d km/h. Perfect for exploring the city!",
		location, temp, condition, humidity, wind)
}
