package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"realty-marketplace/internal/models"

	"github.com/meilisearch/meilisearch-go"
)

type FilterParams struct {
	Query    string
	MinPrice *int64
	MaxPrice *int64
	ForRent  *bool
	MinBeds  *int
	MinBaths *int
	Cities   []string
	SortBy   string
	Limit    int64
}

// BuildFilter assembles the Meilisearch filter expression for the
// given params. Exposed separately so it can be tested without a
// running search server.
func BuildFilter(params FilterParams) string {
	var filters []string

	if params.MinPrice != nil {
		filters = append(filters, fmt.Sprintf("price >= %d", *params.MinPrice))
	}
	if params.MaxPrice != nil {
		filters = append(filters, fmt.Sprintf("price <= %d", *params.MaxPrice))
	}

	if params.ForRent != nil {
		filters = append(filters, fmt.Sprintf("for_rent = %v", *params.ForRent))
	}

	if params.MinBeds != nil {
		filters = append(filters, fmt.Sprintf("beds >= %d", *params.MinBeds))
	}
	if params.MinBaths != nil {
		filters = append(filters, fmt.Sprintf("baths >= %d", *params.MinBaths))
	}

	if len(params.Cities) > 0 {
		cityFilters := make([]string, len(params.Cities))
		for i, city := range params.Cities {
			cityFilters[i] = fmt.Sprintf("city = '%s'", strings.ReplaceAll(city, "'", ""))
		}
		filters = append(filters, fmt.Sprintf("(%s)", strings.Join(cityFilters, " OR ")))
	}

	return strings.Join(filters, " AND ")
}

// FilterSearch performs a filtered search over published listings.
func (s *SearchClient) FilterSearch(params FilterParams) ([]models.Property, error) {
	if params.Limit == 0 {
		params.Limit = 20
	}

	searchReq := &meilisearch.SearchRequest{
		Limit: params.Limit,
	}

	if filterStr := BuildFilter(params); filterStr != "" {
		searchReq.Filter = filterStr
	}

	if params.SortBy != "" {
		searchReq.Sort = []string{params.SortBy}
	}

	searchRes, err := s.client.Index(s.index).Search(params.Query, searchReq)
	if err != nil {
		return nil, err
	}

	// Convert hits to properties
	var properties []models.Property
	for _, hit := range searchRes.Hits {
		hitJSON, err := json.Marshal(hit)
		if err != nil {
			continue
		}

		var property models.Property
		if err := json.Unmarshal(hitJSON, &property); err != nil {
			continue
		}

		properties = append(properties, property)
	}

	return properties, nil
}
