package service

import "errors"

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrSubcategoryNotFound  = errors.New("subcategory not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrConfirmationRequired = errors.New("explicit confirmation required")
	ErrSubcategoryMismatch  = errors.New("subcategory does not belong to the selected category")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrValidation           = errors.New("validation error")
)

// IsNotFound сообщает, что основная сущность страницы не найдена
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrSubcategoryNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrCampaignNotFound)
}
