package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus metrics of the server on its own registry.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests          *prometheus.CounterVec
	HTTPDuration          *prometheus.HistogramVec
	GraphBuilds           prometheus.Counter
	RelationshipMutations *prometheus.CounterVec
	DocumentsQueued       prometheus.Counter
}

func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		GraphBuilds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "graph_builds_total",
				Help:      "Total number of relationship graphs built",
			},
		),
		RelationshipMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "relationship_mutations_total",
				Help:      "Relationship creates and deletes by outcome",
			},
			[]string{"op", "status"},
		),
		DocumentsQueued: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_queued_total",
				Help:      "Documents published for text extraction",
			},
		),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.GraphBuilds,
		c.RelationshipMutations,
		c.DocumentsQueued,
	)
	return c
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Middleware counts requests and observes their duration per route.
func (c *Collector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			method := ctx.Request().Method
			c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Response().Status)).Inc()
			c.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// Mutation records the outcome of a relationship write.
func (c *Collector) Mutation(op string, err error) {
	if c == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.RelationshipMutations.WithLabelValues(op, status).Inc()
}

// GraphBuilt counts one built graph.
func (c *Collector) GraphBuilt() {
	if c == nil {
		return
	}
	c.GraphBuilds.Inc()
}

// DocumentQueued counts one document published for extraction.
func (c *Collector) DocumentQueued() {
	if c == nil {
		return
	}
	c.DocumentsQueued.Inc()
}
