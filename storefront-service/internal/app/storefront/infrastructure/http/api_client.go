package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hamperhouse/pkg/metrics"
	"hamperhouse/storefront-service/internal/app/storefront/entity"

	"resty.dev/v3"
)

const serviceName = "storefront-service"

// APIError - ответ API со статусом вне 2xx
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %s %s: unexpected status code %d", e.Method, e.Endpoint, e.StatusCode)
}

// IsNotFound сообщает, что API ответил 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// APIClient клиент внешнего REST API каталога
// Повторов нет: ошибка возвращается вызывающему, таймаут задается клиентом
type APIClient struct {
	client *resty.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "hamperhouse-storefront/1.0")

	return &APIClient{client: client}
}

func (c *APIClient) Close() error {
	return c.client.Close()
}

// Параметры фильтрации списков
const (
	paramCategoryID    = "category_id"
	paramSubcategoryID = "subcategory_id"
	paramSlug          = "slug"
	paramSearch        = "search"
)

// =============================================================================
// Категории
// =============================================================================

func (c *APIClient) ListCategories(ctx context.Context, slug string) ([]entity.Category, error) {
	query := map[string]string{}
	if slug != "" {
		query[paramSlug] = slug
	}

	var items []entity.Category
	if err := c.getList(ctx, "categories", query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *APIClient) CreateCategory(ctx context.Context, payload entity.MultipartPayload) (*entity.Category, error) {
	var out entity.Category
	if err := c.sendMultipart(ctx, http.MethodPost, "categories", 0, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) UpdateCategory(ctx context.Context, id int, payload entity.MultipartPayload) (*entity.Category, error) {
	var out entity.Category
	if err := c.sendMultipart(ctx, http.MethodPut, "categories", id, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) DeleteCategory(ctx context.Context, id int) error {
	return c.delete(ctx, "categories", id)
}

// =============================================================================
// Подкатегории
// =============================================================================

// ListSubcategories возвращает подкатегории категории, categoryID == 0 - все
func (c *APIClient) ListSubcategories(ctx context.Context, categoryID int) ([]entity.Subcategory, error) {
	query := map[string]string{}
	if categoryID > 0 {
		query[paramCategoryID] = strconv.Itoa(categoryID)
	}

	var items []entity.Subcategory
	if err := c.getList(ctx, "subcategories", query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *APIClient) CreateSubcategory(ctx context.Context, payload entity.MultipartPayload) (*entity.Subcategory, error) {
	var out entity.Subcategory
	if err := c.sendMultipart(ctx, http.MethodPost, "subcategories", 0, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) UpdateSubcategory(ctx context.Context, id int, payload entity.MultipartPayload) (*entity.Subcategory, error) {
	var out entity.Subcategory
	if err := c.sendMultipart(ctx, http.MethodPut, "subcategories", id, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) DeleteSubcategory(ctx context.Context, id int) error {
	return c.delete(ctx, "subcategories", id)
}

// =============================================================================
// Товары
// =============================================================================

func (c *APIClient) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	query := map[string]string{}
	if filter.CategoryID > 0 {
		query[paramCategoryID] = strconv.Itoa(filter.CategoryID)
	}
	if filter.SubcategoryID > 0 {
		query[paramSubcategoryID] = strconv.Itoa(filter.SubcategoryID)
	}
	if filter.Slug != "" {
		query[paramSlug] = filter.Slug
	}

	var items []entity.Product
	if err := c.getList(ctx, "products", query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *APIClient) CreateProduct(ctx context.Context, payload entity.MultipartPayload) (*entity.Product, error) {
	var out entity.Product
	if err := c.sendMultipart(ctx, http.MethodPost, "products", 0, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) UpdateProduct(ctx context.Context, id int, payload entity.MultipartPayload) (*entity.Product, error) {
	var out entity.Product
	if err := c.sendMultipart(ctx, http.MethodPut, "products", id, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) DeleteProduct(ctx context.Context, id int) error {
	return c.delete(ctx, "products", id)
}

// =============================================================================
// Заявки с контактной формы
// =============================================================================

func (c *APIClient) ListSubmissions(ctx context.Context, search string) ([]entity.ContactSubmission, error) {
	query := map[string]string{}
	if search != "" {
		query[paramSearch] = search
	}

	var items []entity.ContactSubmission
	if err := c.getList(ctx, "contact-submissions", query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *APIClient) CreateSubmission(ctx context.Context, req entity.SubmissionRequest) error {
	timer := metrics.NewUpstreamTimer(serviceName, http.MethodPost, "contact-submissions")
	defer timer.ObserveDuration()

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/contact-submissions")
	if err != nil {
		timer.Fail("transport")
		return fmt.Errorf("failed to send request: %w", err)
	}

	return checkStatus(timer, http.MethodPost, "contact-submissions", resp)
}

func (c *APIClient) DeleteSubmission(ctx context.Context, id int) error {
	return c.delete(ctx, "contact-submissions", id)
}

// =============================================================================
// Helpers
// =============================================================================

func (c *APIClient) getList(ctx context.Context, endpoint string, query map[string]string, out any) error {
	timer := metrics.NewUpstreamTimer(serviceName, http.MethodGet, endpoint)
	defer timer.ObserveDuration()

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get("/" + endpoint)
	if err != nil {
		timer.Fail("transport")
		return fmt.Errorf("failed to send request: %w", err)
	}

	if err := checkStatus(timer, http.MethodGet, endpoint, resp); err != nil {
		return err
	}

	return decodeBody(resp.Bytes(), out)
}

func (c *APIClient) sendMultipart(ctx context.Context, method, endpoint string, id int, payload entity.MultipartPayload, out any) error {
	timer := metrics.NewUpstreamTimer(serviceName, method, endpoint)
	defer timer.ObserveDuration()

	fields := make(map[string]string, len(payload.Fields))
	for k, v := range payload.Fields {
		fields[k] = v
	}

	req := c.client.R().SetContext(ctx)
	if payload.Image != nil && payload.Image.Reader != nil {
		delete(fields, "image")
		req.SetFileReader("image", payload.Image.FileName, payload.Image.Reader)
	}
	req.SetMultipartFormData(fields)

	path := "/" + endpoint
	if id > 0 {
		path = fmt.Sprintf("/%s/%d", endpoint, id)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		timer.Fail("transport")
		return fmt.Errorf("failed to send request: %w", err)
	}

	if err := checkStatus(timer, method, endpoint, resp); err != nil {
		return err
	}

	return decodeBody(resp.Bytes(), out)
}

func (c *APIClient) delete(ctx context.Context, endpoint string, id int) error {
	timer := metrics.NewUpstreamTimer(serviceName, http.MethodDelete, endpoint)
	defer timer.ObserveDuration()

	resp, err := c.client.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/%s/%d", endpoint, id))
	if err != nil {
		timer.Fail("transport")
		return fmt.Errorf("failed to send request: %w", err)
	}

	return checkStatus(timer, http.MethodDelete, endpoint, resp)
}

func checkStatus(timer *metrics.UpstreamTimer, method, endpoint string, resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	timer.Fail("status")
	return &APIError{
		Method:     method,
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode(),
		Body:       resp.String(),
	}
}

// decodeBody разбирает JSON ответа; пустое тело (204, DELETE) оставляет out без изменений
func decodeBody(body []byte, out any) error {
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
