package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const userIDCtxKey = "user_id"

// Metrics are the HTTP layer's Prometheus collectors.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tasktracker",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tasktracker",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Duration)
	}
	return m
}

// route is the matched pattern, so /api/todos/:id stays one series.
func route(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return "unmatched"
}

func (s *Server) observe(c *gin.Context) {
	start := time.Now()
	c.Next()

	r := route(c)
	status := c.Writer.Status()
	elapsed := time.Since(start)

	s.metrics.Requests.WithLabelValues(c.Request.Method, r, strconv.Itoa(status)).Inc()
	s.metrics.Duration.WithLabelValues(c.Request.Method, r).Observe(elapsed.Seconds())

	args := []any{
		"method", c.Request.Method,
		"route", r,
		"status", status,
		"latency", elapsed.String(),
	}
	if len(c.Errors) > 0 {
		args = append(args, "error", c.Errors.String())
	}

	switch {
	case status >= 500:
		s.logger.Error(c.Request.Context(), "request", args...)
	case r == "/metrics" || r == "/api/health":
		s.logger.Debug(c.Request.Context(), "request", args...)
	default:
		s.logger.Info(c.Request.Context(), "request", args...)
	}
}

// authenticate resolves the bearer credential to a user id and stores it on
// the context. Every failure is the same 401.
func (s *Server) authenticate(c *gin.Context) {
	header := c.GetHeader(common.AuthorizationHeaderName)
	if header == "" {
		abort(c, newAPIError(http.StatusUnauthorized, msgUnauthorized))
		return
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != common.BearerPrefix || token == "" {
		abort(c, newAPIError(http.StatusUnauthorized, msgUnauthorized))
		return
	}

	userID, err := s.users.Authenticate(token)
	if err != nil {
		s.logger.Debug(c.Request.Context(), "rejected credential", "error", err)
		abort(c, newAPIError(http.StatusUnauthorized, msgUnauthorized))
		return
	}

	c.Set(userIDCtxKey, userID)
	c.Next()
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDCtxKey)
}
