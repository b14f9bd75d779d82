package handler

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hamperhouse/storefront-service/internal/app/storefront/entity"
	"hamperhouse/storefront-service/internal/app/storefront/service"
)

const defaultAuditLimit = 50

// AdminHandler - JSON API диалогов админки
type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.adminService.Stats(c.Request.Context()))
}

// ==================== Categories ====================

func (h *AdminHandler) ListCategories(c *gin.Context) {
	items, err := h.adminService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load categories")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	h.saveCategory(c, 0)
}

func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.saveCategory(c, id)
}

func (h *AdminHandler) saveCategory(c *gin.Context, id int) {
	image, closeImage, err := formImage(c)
	if err != nil {
		badRequest(c, "Invalid image upload")
		return
	}
	defer closeImage()

	view, err := h.adminService.SaveCategory(c.Request.Context(), actor(c), entity.CategoryForm{
		ID:          id,
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Image:       image,
		ImageURL:    c.PostForm("image"),
	})
	if err != nil {
		respondError(c, err, "Failed to save category")
		return
	}

	c.JSON(savedStatus(id), view)
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	h.remove(c, h.adminService.DeleteCategory)
}

// ==================== Subcategories ====================

func (h *AdminHandler) ListSubcategories(c *gin.Context) {
	categoryID, _ := strconv.Atoi(c.Query("category"))

	items, err := h.adminService.ListSubcategories(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, err, "Failed to load subcategories")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *AdminHandler) CreateSubcategory(c *gin.Context) {
	h.saveSubcategory(c, 0)
}

func (h *AdminHandler) UpdateSubcategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.saveSubcategory(c, id)
}

func (h *AdminHandler) saveSubcategory(c *gin.Context, id int) {
	image, closeImage, err := formImage(c)
	if err != nil {
		badRequest(c, "Invalid image upload")
		return
	}
	defer closeImage()

	categoryID, _ := strconv.Atoi(c.PostForm("category_id"))

	view, err := h.adminService.SaveSubcategory(c.Request.Context(), actor(c), entity.SubcategoryForm{
		ID:          id,
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		CategoryID:  categoryID,
		Image:       image,
		ImageURL:    c.PostForm("image"),
	})
	if err != nil {
		respondError(c, err, "Failed to save subcategory")
		return
	}

	c.JSON(savedStatus(id), view)
}

func (h *AdminHandler) DeleteSubcategory(c *gin.Context) {
	h.remove(c, h.adminService.DeleteSubcategory)
}

// ==================== Products ====================

func (h *AdminHandler) ListProducts(c *gin.Context) {
	categoryID, _ := strconv.Atoi(c.Query("category"))
	subcategoryID, _ := strconv.Atoi(c.Query("subcategory"))

	items, err := h.adminService.ListProducts(c.Request.Context(), entity.ProductFilter{
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
	})
	if err != nil {
		respondError(c, err, "Failed to load products")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	h.saveProduct(c, 0)
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.saveProduct(c, id)
}

func (h *AdminHandler) saveProduct(c *gin.Context, id int) {
	image, closeImage, err := formImage(c)
	if err != nil {
		badRequest(c, "Invalid image upload")
		return
	}
	defer closeImage()

	categoryID, _ := strconv.Atoi(c.PostForm("category_id"))

	var subcategoryID *int
	if raw := strings.TrimSpace(c.PostForm("subcategory_id")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "Invalid subcategory_id")
			return
		}
		subcategoryID = &v
	}

	view, err := h.adminService.SaveProduct(c.Request.Context(), actor(c), entity.ProductForm{
		ID:            id,
		Name:          c.PostForm("name"),
		Description:   c.PostForm("description"),
		Price:         c.PostForm("price"),
		Packaging:     c.PostForm("packaging"),
		IncludedItems: includedItems(c.PostFormArray("included_items")),
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
		Image:         image,
		ImageURL:      c.PostForm("image"),
	})
	if err != nil {
		respondError(c, err, "Failed to save product")
		return
	}

	c.JSON(savedStatus(id), view)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	h.remove(c, h.adminService.DeleteProduct)
}

// ==================== Submissions ====================

// ListSubmissions - GET /submissions?search=&selected=
func (h *AdminHandler) ListSubmissions(c *gin.Context) {
	panel := h.adminService.SubmissionsPanel(actor(c), service.WithSelected(queryID(c, "selected")))

	if err := panel.Refresh(c.Request.Context(), c.Query("search")); err != nil {
		respondError(c, err, "Failed to load submissions")
		return
	}

	c.JSON(http.StatusOK, panel.State())
}

// DeleteSubmission - DELETE /submissions/:id?confirm=true&selected=&search=
func (h *AdminHandler) DeleteSubmission(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !confirmed(c) {
		respondError(c, service.ErrConfirmationRequired, "")
		return
	}

	panel := h.adminService.SubmissionsPanel(actor(c), service.WithSelected(queryID(c, "selected")))

	if err := panel.Refresh(c.Request.Context(), c.Query("search")); err != nil {
		respondError(c, err, "Failed to load submissions")
		return
	}

	if err := panel.Delete(c.Request.Context(), id, true); err != nil {
		respondError(c, err, "Failed to delete submission")
		return
	}

	c.JSON(http.StatusOK, panel.State())
}

// ==================== Audit ====================

func (h *AdminHandler) AuditLog(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)), 10, 64)
	if err != nil || limit <= 0 {
		badRequest(c, "Invalid limit")
		return
	}

	entries, err := h.adminService.AuditLog(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Failed to load audit log")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// ==================== Helpers ====================

func (h *AdminHandler) remove(c *gin.Context, del func(ctx context.Context, actor string, id int, confirmed bool) error) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := del(c.Request.Context(), actor(c), id, confirmed(c)); err != nil {
		respondError(c, err, "Failed to delete")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Deleted"})
}

func actor(c *gin.Context) string {
	if name := c.GetString("username"); name != "" {
		return name
	}
	return "unknown"
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		badRequest(c, "Invalid ID format")
		return 0, false
	}
	return id, true
}

func queryID(c *gin.Context, name string) *int {
	id, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return nil
	}
	return &id
}

func confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}

func savedStatus(id int) int {
	if id > 0 {
		return http.StatusOK
	}
	return http.StatusCreated
}

// formImage открывает загруженный файл image, если он есть
func formImage(c *gin.Context) (*entity.ImageUpload, func(), error) {
	noop := func() {}

	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, err
	}

	return &entity.ImageUpload{FileName: header.Filename, Reader: file}, closer(file), nil
}

func closer(f multipart.File) func() {
	return func() { _ = f.Close() }
}

// includedItems принимает как повторяющиеся поля формы, так и JSON массив
func includedItems(values []string) []string {
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var items []string
		if err := json.Unmarshal([]byte(values[0]), &items); err == nil {
			return items
		}
	}

	items := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			items = append(items, v)
		}
	}
	return items
}
