package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/salonbook/internal/server/http/dto"
)

// CatalogHandler exposes the public service catalog.
type CatalogHandler struct {
	facade CatalogFacade
	logger *slog.Logger
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{facade: facade, logger: logger}
}

// List handles GET /api/services?category=.
func (h *CatalogHandler) List(c *gin.Context) {
	services := h.facade.Services(c.Request.Context(), c.Query("category"))
	resp := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		resp = append(resp, dto.NewServiceResponse(&services[i]))
	}
	c.JSON(http.StatusOK, dto.ServiceListResponse{Success: true, Services: resp})
}

// Get handles GET /api/services/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	service, err := h.facade.Service(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, errorMessages{notFound: "Service not found", internal: "Failed to retrieve service"})
		return
	}
	c.JSON(http.StatusOK, dto.ServiceEnvelope{Success: true, Service: dto.NewServiceResponse(service)})
}

// Categories handles GET /api/services/categories/list.
func (h *CatalogHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CategoriesResponse{Success: true, Categories: h.facade.Categories(c.Request.Context())})
}
