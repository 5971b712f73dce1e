package conversation

import "tourguide/internal/types"

// Tool names in the fixed catalog handed to the model on every call.
const (
	toolGetWeather    = "getWeather"
	toolSearchCatalog = "searchCatalog"
	toolNavigate      = "navigate"
)

// ToolCatalog declares the callable tools. The catalog is fixed; the model
// picks at most one per reply.
func ToolCatalog() []types.ToolSpec {
	return []types.ToolSpec{
		{
			Name:        toolGetWeather,
			Description: "Get current weather information for a city or location",
			Parameters: map[string]types.ToolParam{
				"city":    {Type: "string", Description: "The city name to get weather for"},
				"country": {Type: "string", Description: "The country name (optional)"},
			},
			Required: []string{"city"},
		},
		{
			Name:        toolSearchCatalog,
			Description: "Search Singapore tourist attractions by category and show them on the map",
			Parameters: map[string]types.ToolParam{
				"category": {Type: "string", Description: "Attraction category, e.g. Cultural or Nature & Wildlife"},
			},
			Required: []string{"category"},
		},
		{
			Name:        toolNavigate,
			Description: "Switch the app to a different view",
			Parameters: map[string]types.ToolParam{
				"view": {Type: "string", Description: "Target view: map, chat or attractions"},
			},
			Required: []string{"view"},
		},
	}
}

// NavigationSink receives view-change side effects from tool dispatch. The
// delivery layer decides what a view switch means.
type NavigationSink interface {
	Navigate(view string)
}
