package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"tourguide/internal/types"
)

// Repository defines the attraction data source boundary. The live
// implementation talks to the tourism-board API; tests substitute a mock.
type Repository interface {
	Search(ctx context.Context, params types.AttractionSearchParams) ([]types.Attraction, error)
}

// stbFeature mirrors the tourism-board response schema: GeoJSON-ish features
// with upper-cased property names and [lng, lat] coordinate order.
type stbFeature struct {
	Properties struct {
		Name                    string  `json:"NAME"`
		Description             string  `json:"DESCRIPTION"`
		PhotoURL                string  `json:"PHOTOURL"`
		AddressBlockHouseNumber string  `json:"ADDRESSBLOCKHOUSENUMBER"`
		AddressBuildingName     string  `json:"ADDRESSBUILDINGNAME"`
		AddressStreetName       string  `json:"ADDRESSSTREETNAME"`
		AddressPostalCode       string  `json:"ADDRESSPOSTALCODE"`
		OfficialWebsite         string  `json:"OFFICIALWEBSITE"`
		OpeningHours            string  `json:"OPENINGHOURS"`
		Contact                 string  `json:"CONTACT"`
		Rating                  float64 `json:"RATING"`
		Category                string  `json:"CATEGORY"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [longitude, latitude]
	} `json:"geometry"`
}

type stbResponse struct {
	Total    int          `json:"total"`
	Features []stbFeature `json:"features"`
}

// STBRepository is the live HTTP client for the tourism-board search API.
type STBRepository struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *cache.Cache
	logger     *slog.Logger
}

var _ Repository = (*STBRepository)(nil)

// NewSTBRepository creates the live attraction data source client. Search
// results are cached for cacheTTL to stay inside the API rate budget.
func NewSTBRepository(baseURL, apiKey string, cacheTTL time.Duration, logger *slog.Logger) *STBRepository {
	return &STBRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache.New(cacheTTL, 2*cacheTTL),
		logger:     logger,
	}
}

func (r *STBRepository) Search(ctx context.Context, params types.AttractionSearchParams) ([]types.Attraction, error) {
	cacheKey := searchCacheKey(params)
	if cached, found := r.cache.Get(cacheKey); found {
		return cached.([]types.Attraction), nil
	}

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.6f", params.Latitude))
	q.Set("lng", fmt.Sprintf("%.6f", params.Longitude))
	radius := params.RadiusMeters
	if radius <= 0 {
		radius = 1000
	}
	q.Set("radius", fmt.Sprintf("%.0f", radius))
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	if params.Category != "" {
		q.Set("category", params.Category)
	}

	reqURL := fmt.Sprintf("%s/attractions/search?%s", r.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build attraction search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("attraction search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("attraction data source returned %d %s", resp.StatusCode, resp.Status)
	}

	var body stbResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode attraction search response: %w", err)
	}

	attractions := transformFeatures(body.Features)
	r.cache.Set(cacheKey, attractions, cache.DefaultExpiration)
	return attractions, nil
}

func searchCacheKey(p types.AttractionSearchParams) string {
	return fmt.Sprintf("search:%.4f:%.4f:%s:%.0f:%d", p.Latitude, p.Longitude, strings.ToLower(p.Category), p.RadiusMeters, p.Limit)
}

func transformFeatures(features []stbFeature) []types.Attraction {
	attractions := make([]types.Attraction, 0, len(features))
	for _, f := range features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		lng, lat := f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]
		props := f.Properties

		addressParts := make([]string, 0, 4)
		for _, part := range []string{
			props.AddressBlockHouseNumber,
			props.AddressBuildingName,
			props.AddressStreetName,
			props.AddressPostalCode,
		} {
			if part != "" {
				addressParts = append(addressParts, part)
			}
		}
		address := strings.Join(addressParts, ", ")
		if address == "" {
			address = "Singapore"
		}

		description := props.Description
		if description == "" {
			description = "A popular attraction in Singapore"
		}
		category := props.Category
		if category == "" {
			category = "General"
		}

		attractions = append(attractions, types.Attraction{
			Name:         props.Name,
			Description:  description,
			Category:     category,
			Address:      address,
			Latitude:     lat,
			Longitude:    lng,
			ImageURL:     props.PhotoURL,
			Rating:       props.Rating,
			OpeningHours: props.OpeningHours,
			Website:      props.OfficialWebsite,
			ContactInfo:  props.Contact,
		})
	}
	return attractions
}
