package http

import "strings"

// ExecContext - где будет выполнен запрос к API
type ExecContext int

const (
	// ExecServer - запрос делает сам сервис (внутренняя сеть)
	ExecServer ExecContext = iota
	// ExecBrowser - адрес отдается браузеру (ссылки на медиа, site-config)
	ExecBrowser
)

const DefaultAPIBaseURL = "http://localhost:8000/api"

// BaseURLResolver выбирает origin API в зависимости от контекста исполнения
type BaseURLResolver struct {
	internal string
	public   string
}

func NewBaseURLResolver(internal, public string) *BaseURLResolver {
	return &BaseURLResolver{
		internal: strings.TrimSpace(internal),
		public:   strings.TrimSpace(public),
	}
}

// Resolve никогда не возвращает пустую строку: без настроек используется localhost
func (r *BaseURLResolver) Resolve(ctx ExecContext) string {
	var base string
	switch ctx {
	case ExecServer:
		base = r.internal
	case ExecBrowser:
		base = r.public
	}

	if base == "" {
		return DefaultAPIBaseURL
	}
	return strings.TrimRight(base, "/")
}
