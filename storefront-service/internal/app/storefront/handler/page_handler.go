package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hamperhouse/storefront-service/internal/app/storefront/entity"
	apiclient "hamperhouse/storefront-service/internal/app/storefront/infrastructure/http"
	"hamperhouse/storefront-service/internal/app/storefront/service"
)

// PageHandler отдает модели страниц витрины
type PageHandler struct {
	catalog  *service.CatalogService
	resolver *apiclient.BaseURLResolver
}

func NewPageHandler(catalog *service.CatalogService, resolver *apiclient.BaseURLResolver) *PageHandler {
	return &PageHandler{
		catalog:  catalog,
		resolver: resolver,
	}
}

// SiteConfig - адрес API для браузера и список кампаний
func (h *PageHandler) SiteConfig(c *gin.Context) {
	c.JSON(http.StatusOK, entity.SiteConfig{
		APIBaseURL: h.resolver.Resolve(apiclient.ExecBrowser),
		Campaigns:  h.catalog.Campaigns(),
	})
}

func (h *PageHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.HomePage(c.Request.Context()))
}

func (h *PageHandler) Category(c *gin.Context) {
	page, err := h.catalog.CategoryPage(c.Request.Context(), c.Param("categorySlug"))
	if err != nil {
		respondPageError(c, "category", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PageHandler) Subcategory(c *gin.Context) {
	page, err := h.catalog.SubcategoryPage(c.Request.Context(), c.Param("categorySlug"), c.Param("subcategorySlug"))
	if err != nil {
		respondPageError(c, "subcategory", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PageHandler) Product(c *gin.Context) {
	page, err := h.catalog.ProductPage(c.Request.Context(), c.Param("categorySlug"), c.Param("productSlug"))
	if err != nil {
		respondPageError(c, "product", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PageHandler) Campaign(c *gin.Context) {
	page, err := h.catalog.CampaignPage(c.Request.Context(), c.Param("campaign"))
	if err != nil {
		respondPageError(c, "campaign", err)
		return
	}
	c.JSON(http.StatusOK, page)
}
