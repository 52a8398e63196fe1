// Package http exposes the aggregated feed artifacts plus health, readiness,
// and metrics endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
	"github.com/quakewatch/quake-feed-aggregator/internal/geo"
	"github.com/quakewatch/quake-feed-aggregator/internal/snapshot"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the aggregation API over HTTP.
type Server struct {
	httpServer *http.Server
	store      *snapshot.Store
	ready      ReadinessChecker
	logger     *slog.Logger
}

// NewServer builds the gin router and wraps it in an http.Server.
func NewServer(addr string, store *snapshot.Store, ready ReadinessChecker, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		store:  store,
		ready:  ready,
		logger: logger,
	}

	router.GET("/healthz", s.handleHealth)
	router.GET("/readyz", s.handleReady)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.GET("/major", s.handleMajor)
		api.GET("/windows/:window/summary", s.handleSummary)
		api.GET("/windows/:window/events", s.handleEvents)
		api.GET("/windows/:window/region", s.handleRegion)
		api.GET("/windows/:window/export.csv", s.handleExportCSV)
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.ready.CheckReadiness(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (s *Server) handleMajor(c *gin.Context) {
	pair := s.store.Major()
	c.JSON(http.StatusOK, gin.H{
		"latest":          pair.Latest,
		"previous":        pair.Previous,
		"interval_millis": pair.IntervalMillis(),
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	w, ok := s.window(c)
	if !ok {
		return
	}
	summary, ok := s.store.Summary(w)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot available yet"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// handleEvents lists a window's events newest first, optionally filtered by
// minimum magnitude and truncated to a limit.
func (s *Server) handleEvents(c *gin.Context) {
	w, ok := s.window(c)
	if !ok {
		return
	}
	events, ok := s.store.Events(w)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot available yet"})
		return
	}

	if v := c.Query("min_mag"); v != "" {
		minMag, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_mag"})
			return
		}
		filtered := events[:0]
		for _, e := range events {
			if m, ok := e.Mag(); ok && m >= minMag {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimeMillis() > events[j].TimeMillis()
	})

	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		if limit < len(events) {
			events = events[:limit]
		}
	}

	c.JSON(http.StatusOK, gin.H{"window": w, "count": len(events), "events": events})
}

// handleRegion returns the subset of a window's events within radius_km of
// a center point.
func (s *Server) handleRegion(c *gin.Context) {
	w, ok := s.window(c)
	if !ok {
		return
	}
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	radius, radErr := strconv.ParseFloat(c.DefaultQuery("radius_km", "500"), 64)
	if latErr != nil || lonErr != nil || radErr != nil || radius <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat, lon and a positive radius_km are required"})
		return
	}

	events, okEvents := s.store.Events(w)
	if !okEvents {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot available yet"})
		return
	}

	regional := geo.FilterWithinRadius(events, lat, lon, radius)
	c.JSON(http.StatusOK, gin.H{
		"window":    w,
		"lat":       lat,
		"lon":       lon,
		"radius_km": radius,
		"count":     len(regional),
		"events":    regional,
	})
}

func (s *Server) window(c *gin.Context) (domain.Window, bool) {
	w, err := domain.ParseWindow(c.Param("window"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return w, true
}
