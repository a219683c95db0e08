// Package api serves HFile trailer inspection over HTTP.
package api

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/hfinspect/internal/logger"
	"github.com/samcharles93/hfinspect/pkg/hfile"
)

const headerRequestID = "X-Request-Id"

// Server answers trailer queries for files under a root directory. Reads go
// through an os.Root, so neither ".." nor symlinks can leave it.
type Server struct {
	dir  string
	root *os.Root
	log  logger.Logger
}

func NewServer(dir string, log logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.Discard()
	}
	dir = filepath.Clean(dir)
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open served root: %w", err)
	}
	return &Server{dir: dir, root: root, log: log}, nil
}

// Close releases the served root.
func (s *Server) Close() error {
	return s.root.Close()
}

func (s *Server) Register(e *echo.Echo) {
	e.Use(requestID)
	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/trailer", s.handleTrailer)
}

// requestID echoes an incoming X-Request-Id or assigns a fresh one.
func requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		id := c.Request().Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Response().Header().Set(headerRequestID, id)
		return next(c)
	}
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTrailer(c *echo.Context) error {
	rel := c.QueryParam("path")
	name, err := cleanPath(rel)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if err := c.Request().Context().Err(); err != nil {
		return writeError(c, http.StatusInternalServerError, hfile.KindIO.String(), err.Error())
	}

	log := s.log.With("path", rel, "request_id", c.Response().Header().Get(headerRequestID))
	f, err := s.open(name)
	switch {
	case errors.Is(err, ErrInvalidRequest):
		log.Warn("rejected path", "error", err)
		return writeBadRequest(c, err.Error())
	case errors.Is(err, fs.ErrNotExist):
		return writeError(c, http.StatusNotFound, hfile.KindMissingFile.String(), "no such file "+rel)
	case err != nil:
		log.Warn("open failed", "error", err)
		return writeError(c, http.StatusInternalServerError, hfile.KindIO.String(), err.Error())
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return writeError(c, http.StatusInternalServerError, hfile.KindIO.String(), err.Error())
	}
	if stat.IsDir() {
		return writeBadRequest(c, "path is a directory")
	}

	t, err := hfile.ReadTrailer(f, stat.Size(), hfile.WithLogger(log.Slog()))
	if err != nil {
		log.Warn("trailer read failed", "error", err)
		return writeTrailerError(c, err)
	}
	return c.JSON(http.StatusOK, NewTrailerResponse(rel, t))
}

// open opens name inside the served root. A name the root refuses because it
// resolves outside is reported as ErrInvalidRequest.
func (s *Server) open(name string) (*os.File, error) {
	f, err := s.root.Open(name)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return f, err
	}
	if s.escapes(name) {
		return nil, newInvalidRequest("path escapes the served root")
	}
	return nil, err
}

// escapes reports whether name, with symlinks resolved, lies outside the
// served root.
func (s *Server) escapes(name string) bool {
	base, err := filepath.EvalSymlinks(s.dir)
	if err != nil {
		return false
	}
	target, err := filepath.EvalSymlinks(filepath.Join(s.dir, name))
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(base, target)
	return err != nil || !filepath.IsLocal(rel)
}

// cleanPath checks that rel names a file below the served root and returns it
// in OS form.
func cleanPath(rel string) (string, error) {
	if rel == "" {
		return "", newInvalidRequest("missing path parameter")
	}
	name := filepath.FromSlash(rel)
	if !filepath.IsLocal(name) {
		return "", newInvalidRequest("path must be relative to the served root")
	}
	return name, nil
}
