// Package server implements an HTTP server to monitor a training run
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/samuelfneumann/tabular/experiment"
)

// DefaultAddr is the default address of the Server
const DefaultAddr = "0.0.0.0:2112"

// Status is the state of a training run as served on /status
type Status struct {
	Episodes int                `json:"episodes"`
	Latest   *experiment.Update `json:"latest"`
}

// Server serves the Prometheus metrics of a training run on /metrics,
// and the most recently observed episode on /status
type Server struct {
	router *gin.Engine
	server *http.Server
	addr   string
	logger logrus.FieldLogger

	lock   sync.RWMutex
	status Status
}

// New instantiates a Server listening on addr which serves the metrics
// gathered by g
func New(addr string, g prometheus.Gatherer, logger logrus.FieldLogger) *Server {
	s := &Server{
		addr:   addr,
		logger: logger.WithField("addr", addr),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(s.logMiddleware)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(g,
		promhttp.HandlerOpts{})))
	router.GET("/status", s.handleStatus)

	s.router = router
	s.server = &http.Server{
		Addr:    addr,
		Handler: router,
	}
	return s
}

// Handler returns the HTTP handler of the Server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Observe records the latest episode of the run
func (s *Server) Observe(u experiment.Update) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.status.Episodes = u.Episode + 1
	s.status.Latest = &u
}

func (s *Server) handleStatus(c *gin.Context) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	c.JSON(http.StatusOK, s.status)
}

func (s *Server) logMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	s.logger.WithFields(logrus.Fields{
		"latency":     time.Since(start).String(),
		"method":      c.Request.Method,
		"status_code": c.Writer.Status(),
		"path":        c.Request.URL.Path,
	}).Debug("handled request")
}

// Start starts serving in a new goroutine
func (s *Server) Start() {
	go func() {
		s.logger.Info("monitoring server starting")
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("monitoring server closed")
		}
	}()
}

// Stop gracefully shuts the Server down, waiting at most five seconds
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
