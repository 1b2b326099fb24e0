package dto

import "github.com/polkiloo/salonbook/internal/domain/model"

// ServiceResponse is a catalog entry.
type ServiceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

// NewServiceResponse converts a catalog entry.
func NewServiceResponse(s *model.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Price:       s.Price,
		Duration:    s.Duration,
		Icon:        s.Icon,
		Description: s.Description,
	}
}

type ServiceListResponse struct {
	Success  bool              `json:"success"`
	Services []ServiceResponse `json:"services"`
}

type ServiceEnvelope struct {
	Success bool            `json:"success"`
	Service ServiceResponse `json:"service"`
}

type CategoriesResponse struct {
	Success    bool     `json:"success"`
	Categories []string `json:"categories"`
}
