package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/domain/model"
)

const allCategories = "all"

var defaultServices = []model.Service{
	{ID: "hair-cut", Name: "Haircut & Styling", Category: "hair", Price: 45, Duration: "60 min", Icon: "💇", Description: "Professional haircut with styling"},
	{ID: "hair-color", Name: "Hair Coloring", Category: "hair", Price: 85, Duration: "120 min", Icon: "🎨", Description: "Full hair coloring service"},
	{ID: "hair-treatment", Name: "Hair Treatment", Category: "hair", Price: 65, Duration: "90 min", Icon: "✨", Description: "Deep conditioning treatment"},
	{ID: "manicure", Name: "Manicure", Category: "nails", Price: 35, Duration: "45 min", Icon: "💅", Description: "Classic manicure service"},
	{ID: "pedicure", Name: "Pedicure", Category: "nails", Price: 45, Duration: "60 min", Icon: "🦶", Description: "Relaxing pedicure service"},
	{ID: "gel-nails", Name: "Gel Nails", Category: "nails", Price: 55, Duration: "75 min", Icon: "💎", Description: "Long-lasting gel nail application"},
	{ID: "facial", Name: "Facial Treatment", Category: "spa", Price: 75, Duration: "60 min", Icon: "🧖", Description: "Rejuvenating facial treatment"},
	{ID: "massage", Name: "Relaxation Massage", Category: "spa", Price: 95, Duration: "90 min", Icon: "💆", Description: "Full body relaxation massage"},
	{ID: "body-scrub", Name: "Body Scrub", Category: "spa", Price: 70, Duration: "60 min", Icon: "🌸", Description: "Exfoliating body scrub"},
	{ID: "makeup", Name: "Makeup Application", Category: "beauty", Price: 60, Duration: "60 min", Icon: "💄", Description: "Professional makeup application"},
	{ID: "eyebrows", Name: "Eyebrow Shaping", Category: "beauty", Price: 25, Duration: "30 min", Icon: "👁️", Description: "Eyebrow shaping and tinting"},
	{ID: "eyelashes", Name: "Eyelash Extensions", Category: "beauty", Price: 120, Duration: "120 min", Icon: "👀", Description: "Premium eyelash extensions"},
}

// CatalogUseCase serves the read-only service menu.
type CatalogUseCase struct {
	services []model.Service
}

// NewCatalogUseCase returns the catalog with the salon's standard menu.
func NewCatalogUseCase() *CatalogUseCase {
	return NewCatalogUseCaseWith(defaultServices)
}

// NewCatalogUseCaseWith builds a catalog over services.
func NewCatalogUseCaseWith(services []model.Service) *CatalogUseCase {
	return &CatalogUseCase{services: append([]model.Service(nil), services...)}
}

// List returns services of category, or all of them for "" and "all".
func (u *CatalogUseCase) List(_ context.Context, category string) []model.Service {
	result := make([]model.Service, 0, len(u.services))
	for _, s := range u.services {
		if category == "" || category == allCategories || s.Category == category {
			result = append(result, s)
		}
	}
	return result
}

// Get returns service id.
func (u *CatalogUseCase) Get(_ context.Context, id string) (*model.Service, error) {
	for _, s := range u.services {
		if s.ID == id {
			found := s
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Categories lists distinct categories in menu order.
func (u *CatalogUseCase) Categories(_ context.Context) []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, s := range u.services {
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		categories = append(categories, s.Category)
	}
	return categories
}
