package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tdewolff/frechet"
	"github.com/tdewolff/frechet/render"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
)

// server answers diagram requests of the web front-end.
type server struct {
	log      *zap.Logger
	timeout  time.Duration
	levels   int
	heatmap  int
	maxDepth int
}

func newServer(log *zap.Logger, timeout time.Duration) *server {
	return &server{
		log:      log,
		timeout:  timeout,
		levels:   10,
		heatmap:  100,
		maxDepth: frechet.DefaultOptions.MaxDepth,
	}
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests(), allowOrigin())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "test: success!")
	})
	r.POST("/", s.diagram)
	r.POST("/plot", s.plot)
	return r
}

func (s *server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// allowOrigin lets the front-end call the server from another origin.
func allowOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// build decodes the request and builds its diagram, writing an error response on failure.
func (s *server) build(c *gin.Context) (*frechet.CellMatrix, bool) {
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	p, q := req.paths()

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()

	opts := frechet.DefaultOptions
	opts.Logger = s.log
	opts.MaxDepth = s.maxDepth
	m, err := frechet.Build(ctx, p, q, &opts)
	if _, partial := buildStatus(err); partial {
		// the distance is still known, answer without traversals
		s.log.Warn("traversal failed", zap.Error(err), zap.Int("p", len(p)), zap.Int("q", len(q)))
		opts.ComputeTraversal = false
		m, err = frechet.Build(ctx, p, q, &opts)
	}
	if err != nil {
		status, _ := buildStatus(err)
		s.log.Warn("build failed", zap.Error(err), zap.Int("p", len(p)), zap.Int("q", len(q)))
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
		return nil, false
	}
	return m, true
}

// buildStatus returns the HTTP status for a failed build, and whether the failure is confined to the traversal so that the diagram can be answered without it.
func buildStatus(err error) (int, bool) {
	switch {
	case err == nil:
		return http.StatusOK, false
	case errors.Is(err, frechet.ErrTooFewPoints), errors.Is(err, frechet.ErrDuplicatePoints), errors.Is(err, frechet.ErrNotFinite):
		return http.StatusBadRequest, false
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, false
	case errors.Is(err, frechet.ErrSearchExhausted), errors.Is(err, frechet.ErrRecursionLimit):
		return http.StatusOK, true
	}
	return http.StatusInternalServerError, false
}

func (s *server) diagram(c *gin.Context) {
	m, ok := s.build(c)
	if !ok {
		return
	}
	opts := frechet.DefaultSampleOptions
	opts.Heatmap = s.heatmap
	opts.CrossSectionPoints = 0
	sample := m.Sample(m.SampleLevels(s.levels), opts)
	c.JSON(http.StatusOK, newResponse(m, sample))
}

func (s *server) plot(c *gin.Context) {
	m, ok := s.build(c)
	if !ok {
		return
	}
	opts := frechet.DefaultSampleOptions
	opts.Heatmap = s.heatmap
	opts.CrossSectionPoints = 0
	sample := m.Sample(m.SampleLevels(s.levels), opts)

	p, err := render.Diagram(sample, render.DefaultOptions)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	buf := &bytes.Buffer{}
	if err := render.Write(buf, p, 16*vg.Centimeter, 12*vg.Centimeter, "png"); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
