package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Записи в том виде, в котором их отдает внешний REST API (snake_case)
// Витрина их не хранит, а только читает и передает в API при изменении

// Category представляет категорию каталога
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Subcategory - необязательный второй уровень каталога внутри категории
type Subcategory struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CategoryID  int    `json:"category_id"`
}

// Product - подарочный набор (hamper)
// category_name и subcategory_name денормализованы на стороне API
type Product struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	Description     string   `json:"description"`
	Price           Price    `json:"price"`
	Image           string   `json:"image"`
	Images          []string `json:"images"`
	IncludedItems   []string `json:"included_items"`
	Packaging       string   `json:"packaging"`
	CategoryID      int      `json:"category_id"`
	SubcategoryID   *int     `json:"subcategory_id"`
	CategoryName    string   `json:"category_name"`
	SubcategoryName string   `json:"subcategory_name"`
}

// ContactSubmission - заявка с контактной формы
type ContactSubmission struct {
	ID             int       `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	ProductDetails string    `json:"product_details"`
	Message        string    `json:"message"`
	SubmittedAt    Timestamp `json:"submitted_at"`
}

// Price - цена товара; API отдает ее то строкой ("1499.00"), то числом (1499)
type Price string

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		*p = Price(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}
	*p = Price(n.String())
	return nil
}

func (p Price) String() string {
	return string(p)
}

// Float возвращает числовое значение цены, 0 если цена не число
func (p Price) Float() float64 {
	f, err := strconv.ParseFloat(string(p), 64)
	if err != nil {
		return 0
	}
	return f
}

// Форматы времени отправки заявки, которые встречаются в ответах API
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02",
}

// Timestamp - время из API; незнакомый формат дает нулевое время, а не ошибку
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid timestamp: %w", err)
	}
	t.Time = ParseTimestamp(s)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time)
}

// ParseTimestamp перебирает известные форматы, time.Time{} если ни один не подошел
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// StorefrontEvent - событие витрины для Kafka
type StorefrontEvent struct {
	EventType string    `json:"event_type"` // CATEGORY_SAVED, PRODUCT_DELETED, CONTACT_SUBMITTED, ...
	Entity    string    `json:"entity"`
	EntityID  int       `json:"entity_id"`
	Name      string    `json:"name,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditEntry - запись журнала аудита админки (MongoDB)
type AuditEntry struct {
	Actor    string    `json:"actor" bson:"actor"`
	Action   string    `json:"action" bson:"action"` // create, update, delete
	Entity   string    `json:"entity" bson:"entity"`
	EntityID int       `json:"entityId" bson:"entity_id"`
	Name     string    `json:"name,omitempty" bson:"name,omitempty"`
	At       time.Time `json:"at" bson:"at"`
}
