// Package api serves chunk tree inspection over HTTP.
package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/riff/internal/inspect"
	"github.com/samcharles93/riff/internal/logger"
	"github.com/samcharles93/riff/pkg/riff"
)

// DefaultMaxBodyBytes bounds uploaded files when Config.MaxBodyBytes is zero.
const DefaultMaxBodyBytes = 64 << 20

type Config struct {
	// Factory decides which identifiers parse as lists. Nil means riff.BasicFactory.
	Factory riff.Factory
	// MaxBodyBytes is the largest accepted upload.
	MaxBodyBytes int64
	Logger       logger.Logger
}

type Server struct {
	factory riff.Factory
	maxBody int64
	log     logger.Logger
}

func NewServer(cfg Config) *Server {
	s := &Server{
		factory: cfg.Factory,
		maxBody: cfg.MaxBodyBytes,
		log:     cfg.Logger,
	}
	if s.factory == nil {
		s.factory = riff.BasicFactory{}
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	return s
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.POST("/v1/inspect", s.handleInspect)
	e.POST("/v1/extract", s.handleExtract)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}

// handleInspect parses the uploaded RIFF file and returns its chunk tree.
// ?data=true embeds payloads up to ?max_data bytes.
func (s *Server) handleInspect(c *echo.Context) error {
	reqID := newRequestID(c)
	opts, err := inspectOptions(c)
	if err != nil {
		return writeChunkError(c, err, reqID)
	}

	body, root, err := s.parseBody(c)
	if err != nil {
		return s.fail(c, reqID, err)
	}
	tree, err := inspect.Build(root, opts)
	if err != nil {
		return s.fail(c, reqID, err)
	}
	s.log.Debug("inspected upload", "request_id", reqID, "bytes", len(body), "chunks", countNodes(tree))
	return writeJSON(c, http.StatusOK, InspectResponse{
		ID:     reqID,
		Object: "riff.tree",
		Bytes:  len(body),
		Tree:   tree,
	})
}

// handleExtract returns the payload of the raw chunk at ?path.
func (s *Server) handleExtract(c *echo.Context) error {
	reqID := newRequestID(c)
	path := c.QueryParam("path")
	if path == "" {
		return writeChunkError(c, invalidParam("path", "required"), reqID)
	}
	if _, err := riff.ParsePath(path); err != nil {
		return writeChunkError(c, wrapParam("path", err), reqID)
	}

	_, root, err := s.parseBody(c)
	if err != nil {
		return s.fail(c, reqID, err)
	}
	d, err := riff.FindDescriptor(root, path)
	if err != nil {
		return s.fail(c, reqID, wrapParam("path", err))
	}
	raw, ok := d.(*riff.RawDescriptor)
	if !ok {
		return writeChunkError(c, invalidParam("path", path+" is a list chunk"), reqID)
	}
	data, err := raw.Data()
	if err != nil {
		return s.fail(c, reqID, err)
	}
	return writeBytes(c, http.StatusOK, data)
}

func (s *Server) parseBody(c *echo.Context) ([]byte, *riff.ListDescriptor, error) {
	body, err := readBody(c, s.maxBody)
	if err != nil {
		return nil, nil, err
	}
	root, err := riff.ParseRoot(bytes.NewReader(body), s.factory)
	if err != nil {
		return nil, nil, err
	}
	return body, root, nil
}

func (s *Server) fail(c *echo.Context, reqID string, err error) error {
	if errors.Is(err, errBodyTooLarge) {
		return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error", err.Error(), "", reqID)
	}
	s.log.Warn("request failed", "request_id", reqID, "path", c.Request().URL.Path, "error", err)
	return writeChunkError(c, err, reqID)
}

func inspectOptions(c *echo.Context) (inspect.Options, error) {
	var opts inspect.Options
	if v := c.QueryParam("data"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, invalidParam("data", "must be a boolean")
		}
		opts.IncludeData = b
	}
	if v := c.QueryParam("max_data"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return opts, invalidParam("max_data", "must be a non-negative integer")
		}
		opts.MaxData = uint32(n)
	}
	return opts, nil
}

func countNodes(n *inspect.Node) int {
	total := 1
	for _, c := range n.Children {
		total += countNodes(c)
	}
	return total
}
