package search

import "testing"

func TestBuildFilter(t *testing.T) {
	minPrice := int64(100000)
	maxPrice := int64(500000)
	forRent := true
	minBeds := 2
	minBaths := 1

	tests := []struct {
		name   string
		params FilterParams
		want   string
	}{
		{"empty", FilterParams{}, ""},
		{"price range", FilterParams{MinPrice: &minPrice, MaxPrice: &maxPrice},
			"price >= 100000 AND price <= 500000"},
		{"for rent", FilterParams{ForRent: &forRent}, "for_rent = true"},
		{"beds and baths", FilterParams{MinBeds: &minBeds, MinBaths: &minBaths},
			"beds >= 2 AND baths >= 1"},
		{"single city", FilterParams{Cities: []string{"Austin"}}, "(city = 'Austin')"},
		{"multiple cities", FilterParams{Cities: []string{"Austin", "Dallas"}},
			"(city = 'Austin' OR city = 'Dallas')"},
		{"quotes stripped from city", FilterParams{Cities: []string{"O'Fallon"}},
			"(city = 'OFallon')"},
		{"combined", FilterParams{MinPrice: &minPrice, ForRent: &forRent, Cities: []string{"Austin"}},
			"price >= 100000 AND for_rent = true AND (city = 'Austin')"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildFilter(tt.params); got != tt.want {
				t.Errorf("BuildFilter() = %q, want %q", got, tt.want)
			}
		})
	}
}
