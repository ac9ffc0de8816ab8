package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/AlexGrady9/SuperShopBot/internal/catalog"
	"github.com/AlexGrady9/SuperShopBot/internal/model"
	"github.com/AlexGrady9/SuperShopBot/pkg/logger"
)

// CatalogHandler serves the read-only catalog API.
type CatalogHandler struct {
	catalog *catalog.Service
}

// NewCatalogHandler creates the catalog handler.
func NewCatalogHandler(cat *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// ListCategories handles retrieving the distinct category labels
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	log := logger.FromEcho(c)

	categories := h.catalog.Categories()
	log.Info("Categories retrieved", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}

// ListProducts handles retrieving products with optional category filtering
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	category := c.QueryParam("category")
	var products []model.Product
	if category != "" {
		products = h.catalog.ProductsByCategory(category)
		log.Info("Filtering products by category", zap.String("category", category))
	} else {
		for _, cat := range h.catalog.Categories() {
			products = append(products, h.catalog.ProductsByCategory(cat)...)
		}
	}

	log.Info("Products retrieved", zap.Int("count", len(products)))
	if products == nil {
		products = []model.Product{}
	}
	return c.JSON(http.StatusOK, products)
}
