package validate

import (
	"strings"

	"realty-marketplace/internal/apperr"
	"realty-marketplace/internal/models"
)

// PropertyPayload checks the writable fields of a listing. As with
// inquiries, every check runs and all violations come back together.
func PropertyPayload(p *models.Property) error {
	var reasons []string

	if strings.TrimSpace(p.Title) == "" {
		reasons = append(reasons, "title must not be empty")
	}
	if p.Price < 0 {
		reasons = append(reasons, "price must not be negative")
	}
	if p.Beds < 0 {
		reasons = append(reasons, "beds must not be negative")
	}
	if p.Baths < 0 {
		reasons = append(reasons, "baths must not be negative")
	}
	if p.Currency != "" && len(p.Currency) != 3 {
		reasons = append(reasons, "currency must be a 3-letter code")
	}

	if len(reasons) > 0 {
		return apperr.Validation(reasons...)
	}
	return nil
}
