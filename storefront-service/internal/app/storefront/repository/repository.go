package repository

import (
	"context"

	"hamperhouse/storefront-service/internal/app/storefront/entity"
)

// Теги кеша: любая запись каталога из админки сбрасывает оба
const (
	TagCategories = "categories"
	TagProducts   = "products"
)

// TagCache - кеш ответов API с инвалидацией по тегам (Redis)
type TagCache interface {
	// Get заполняет dest и возвращает true при попадании в кеш
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set сохраняет значение и регистрирует ключ в каждом из тегов
	Set(ctx context.Context, key string, value any, tags ...string) error
	// InvalidateTags удаляет все ключи, зарегистрированные под тегами
	InvalidateTags(ctx context.Context, tags ...string) error
}

// AuditRepository - журнал действий администратора (MongoDB)
type AuditRepository interface {
	Record(ctx context.Context, entry *entity.AuditEntry) error
	List(ctx context.Context, limit int64) ([]entity.AuditEntry, error)
}
