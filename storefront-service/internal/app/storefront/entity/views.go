package entity

import (
	"time"

	"hamperhouse/storefront-service/internal/app/storefront/util"
)

// Представления для страниц (camelCase), которые получает фронтенд
// Граница wire/view явная: запись API не изменяется, строится новая структура

const excerptLength = 160

type CategoryView struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type SubcategoryView struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CategoryID  int    `json:"categoryId"`
}

type ProductView struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	Description     string   `json:"description"`
	Excerpt         string   `json:"excerpt"`
	Price           string   `json:"price"`
	Image           string   `json:"image"`
	Images          []string `json:"images"`
	IncludedItems   []string `json:"includedItems"`
	Packaging       string   `json:"packaging"`
	CategoryID      int      `json:"categoryId"`
	SubcategoryID   *int     `json:"subcategoryId,omitempty"`
	CategoryName    string   `json:"categoryName"`
	SubcategoryName string   `json:"subcategoryName,omitempty"`
}

// FeaturedProduct - товар на лендинге кампании с декоративным рейтингом
type FeaturedProduct struct {
	ProductView
	Rating int `json:"rating"`
}

type SubmissionView struct {
	ID             int       `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName,omitempty"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone"`
	ProductDetails string    `json:"productDetails,omitempty"`
	Message        string    `json:"message,omitempty"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// ToCategoryView строит представление категории, mediaBase - публичный адрес API
func ToCategoryView(c Category, mediaBase string) CategoryView {
	return CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       util.AbsoluteMediaURL(mediaBase, c.Image),
	}
}

func ToSubcategoryView(s Subcategory, mediaBase string) SubcategoryView {
	return SubcategoryView{
		ID:          s.ID,
		Name:        s.Name,
		Slug:        s.Slug,
		Description: s.Description,
		Image:       util.AbsoluteMediaURL(mediaBase, s.Image),
		CategoryID:  s.CategoryID,
	}
}

// ToProductView нормализует все ссылки на изображения товара в абсолютные
func ToProductView(p Product, mediaBase string) ProductView {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if img == "" {
			continue
		}
		images = append(images, util.AbsoluteMediaURL(mediaBase, img))
	}

	included := make([]string, len(p.IncludedItems))
	copy(included, p.IncludedItems)

	var subcategoryID *int
	if p.SubcategoryID != nil {
		id := *p.SubcategoryID
		subcategoryID = &id
	}

	return ProductView{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Description:     p.Description,
		Excerpt:         util.Excerpt(p.Description, excerptLength),
		Price:           p.Price.String(),
		Image:           util.AbsoluteMediaURL(mediaBase, p.Image),
		Images:          images,
		IncludedItems:   included,
		Packaging:       p.Packaging,
		CategoryID:      p.CategoryID,
		SubcategoryID:   subcategoryID,
		CategoryName:    p.CategoryName,
		SubcategoryName: p.SubcategoryName,
	}
}

func ToSubmissionView(s ContactSubmission) SubmissionView {
	return SubmissionView{
		ID:             s.ID,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Email:          s.Email,
		Phone:          s.Phone,
		ProductDetails: s.ProductDetails,
		Message:        s.Message,
		SubmittedAt:    s.SubmittedAt.Time,
	}
}

func ToCategoryViews(items []Category, mediaBase string) []CategoryView {
	views := make([]CategoryView, 0, len(items))
	for _, c := range items {
		views = append(views, ToCategoryView(c, mediaBase))
	}
	return views
}

func ToSubcategoryViews(items []Subcategory, mediaBase string) []SubcategoryView {
	views := make([]SubcategoryView, 0, len(items))
	for _, s := range items {
		views = append(views, ToSubcategoryView(s, mediaBase))
	}
	return views
}

func ToProductViews(items []Product, mediaBase string) []ProductView {
	views := make([]ProductView, 0, len(items))
	for _, p := range items {
		views = append(views, ToProductView(p, mediaBase))
	}
	return views
}

func ToSubmissionViews(items []ContactSubmission) []SubmissionView {
	views := make([]SubmissionView, 0, len(items))
	for _, s := range items {
		views = append(views, ToSubmissionView(s))
	}
	return views
}
