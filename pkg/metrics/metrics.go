package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
// Пример запроса PromQL: rate(http_requests_total{service="storefront-service"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Labels: service, method, path
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests in seconds",
		// Бакеты для микросервисов: от 1ms до 10s
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database Метрики
// =============================================================================

// DbQueryDuration - время операций с БД (MongoDB журнал аудита)
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

// DbErrors - счётчик ошибок базы данных
var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis Метрики
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisOperationDuration - время операций Redis
var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"}, // operation: get, set, del, etc.
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"}, // operation: produce, consume
)

// =============================================================================
// Upstream API Метрики (внешний REST API каталога)
// =============================================================================

// UpstreamRequestDuration - время запросов к внешнему API
// Labels: service, method, endpoint (коллекция: categories, products, ...)
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of requests to the catalog REST API",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	},
	[]string{"service", "method", "endpoint"},
)

// UpstreamErrors - ошибки внешнего API (transport или non-2xx)
var UpstreamErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "upstream_errors_total",
		Help: "Total number of failed requests to the catalog REST API",
	},
	[]string{"service", "method", "endpoint", "kind"}, // kind: transport, status
)

// =============================================================================
// Business Метрики (витрина Hamperhouse)
// =============================================================================

// CacheInvalidations - инвалидации тегов кеша (categories, products)
var CacheInvalidations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_cache_invalidations_total",
		Help: "Total number of cache tag invalidations",
	},
	[]string{"tag"},
)

// ContactSubmissions - отправки контактной формы
var ContactSubmissions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_contact_submissions_total",
		Help: "Total number of contact form submissions",
	},
	[]string{"status"}, // accepted, invalid, failed
)

// AdminMutations - изменения каталога из админки
var AdminMutations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_admin_mutations_total",
		Help: "Total number of admin create/update/delete operations",
	},
	[]string{"entity", "action", "status"},
)

// NotFoundPages - страницы, для которых не нашлась основная сущность
var NotFoundPages = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_not_found_pages_total",
		Help: "Total number of page loads resolved to not found",
	},
	[]string{"page"},
)

// CacheWarmRuns - прогоны прогрева кеша по cron
var CacheWarmRuns = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_cache_warm_runs_total",
		Help: "Total number of cache warm-up runs",
	},
	[]string{"status"}, // success, failed
)
