package entity

import "io"

// ContactForm - данные контактной формы
type ContactForm struct {
	FirstName      string `json:"firstName" validate:"required,min=2,personname"`
	LastName       string `json:"lastName" validate:"required,min=2,personname"`
	Email          string `json:"email" validate:"required,basicemail"`
	Phone          string `json:"phone" validate:"required,intlphone"`
	ProductDetails string `json:"productDetails"`
	Message        string `json:"message" validate:"required,min=10,max=500"`
}

// ContactResponse - подтверждение отправки; клиент сбрасывает форму через ResetAfterSeconds
type ContactResponse struct {
	Message           string `json:"message"`
	ResetAfterSeconds int    `json:"resetAfterSeconds"`
}

// ValidationErrorResponse - ошибки валидации по полям
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// ImageUpload - загруженный файл изображения
type ImageUpload struct {
	FileName string
	Reader   io.Reader
}

// CategoryForm - форма диалога категории; ID == 0 означает создание
type CategoryForm struct {
	ID          int
	Name        string
	Description string
	Image       *ImageUpload
	ImageURL    string // существующее изображение, если файл не загружен
}

type SubcategoryForm struct {
	ID          int
	Name        string
	Description string
	CategoryID  int
	Image       *ImageUpload
	ImageURL    string
}

type ProductForm struct {
	ID            int
	Name          string
	Description   string
	Price         string
	Packaging     string
	IncludedItems []string
	CategoryID    int
	SubcategoryID *int
	Image         *ImageUpload
	ImageURL      string
}

// ProductFilter - фильтр списка товаров; нулевые поля не применяются
type ProductFilter struct {
	CategoryID    int
	SubcategoryID int
	Slug          string
}

// AdminStats - счетчики для дашборда админки
type AdminStats struct {
	Categories    int `json:"categories"`
	Subcategories int `json:"subcategories"`
	Products      int `json:"products"`
}

// SubmissionsState - состояние панели заявок
type SubmissionsState struct {
	Items      []SubmissionView `json:"items"`
	SelectedID *int             `json:"selectedId"`
}

// SiteConfig - публичные настройки для браузера
type SiteConfig struct {
	APIBaseURL string   `json:"apiBaseUrl"`
	Campaigns  []string `json:"campaigns"`
}

// Страницы

type HomePage struct {
	Categories []CategoryView `json:"categories"`
	Campaigns  []string       `json:"campaigns"`
}

type CategoryPage struct {
	Category      CategoryView      `json:"category"`
	Subcategories []SubcategoryView `json:"subcategories"`
	Products      []ProductView     `json:"products"`
}

type SubcategoryPage struct {
	Category    CategoryView    `json:"category"`
	Subcategory SubcategoryView `json:"subcategory"`
	Products    []ProductView   `json:"products"`
}

type ProductPage struct {
	Category CategoryView  `json:"category"`
	Product  ProductView   `json:"product"`
	Related  []ProductView `json:"related"`
}

type CampaignPage struct {
	Campaign string            `json:"campaign"`
	Category CategoryView      `json:"category"`
	Featured []FeaturedProduct `json:"featured"`
}

// LoginRequest - вход в админку
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MultipartPayload - тело multipart запроса на запись категории, подкатегории или товара
// Если Image == nil, поле image передается строкой из Fields (существующий URL)
type MultipartPayload struct {
	Fields map[string]string
	Image  *ImageUpload
}

// SubmissionRequest - тело POST /contact-submissions
type SubmissionRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone"`
	ProductDetails string `json:"product_details,omitempty"`
	Message        string `json:"message,omitempty"`
}
