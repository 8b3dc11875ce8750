// Package server exposes the engine over HTTP.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docqa/common/logger"
	"docqa/schema"
)

// Engine is the surface the HTTP layer needs from the Q&A client.
type Engine interface {
	AnswerQuery(ctx context.Context, question, sessionID string) string
	IngestFile(ctx context.Context, path string) (int, error)
	SummarizeText(ctx context.Context, text string) string
	ListChunks(ctx context.Context, limit int) ([]schema.Document, error)
	Clear(ctx context.Context, sessionID string) error
	SupportedExtensions() []string
}

// Server hosts the REST API.
type Server struct {
	engine    Engine
	uploadDir string
	echo      *echo.Echo
}

// New builds the server and registers routes. uploadDir is created lazily on
// first upload.
func New(engine Engine, uploadDir string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	s := &Server{engine: engine, uploadDir: uploadDir, echo: e}

	e.GET("/", s.handleRoot)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/api/chat", s.handleChat)
	e.POST("/api/upload", s.handleUpload)
	e.POST("/api/summarize", s.handleSummarize)
	e.POST("/api/clear", s.handleClear)
	e.GET("/api/chunks", s.handleChunks)
	return s
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	logger.Infof("http server listening on %s", addr)
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routing tree, for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service":           "docqa",
		"status":            "ok",
		"supported_formats": s.engine.SupportedExtensions(),
	})
}

type chatRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleChat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Question) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "question is required"})
	}

	answer := s.engine.AnswerQuery(c.Request().Context(), req.Question, req.SessionID)
	return c.JSON(http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) handleUpload(c echo.Context) error {
	path, filename, err := s.saveUpload(c)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	chunks, err := s.engine.IngestFile(c.Request().Context(), path)
	if err != nil {
		logger.Errorf("ingest %q failed: %v", filename, err)
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"filename": filename, "chunks": chunks})
}

func (s *Server) handleSummarize(c echo.Context) error {
	path, _, err := s.saveUpload(c)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to read upload"})
	}
	summary := s.engine.SummarizeText(c.Request().Context(), string(data))
	return c.JSON(http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) handleClear(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if err := s.engine.Clear(c.Request().Context(), sessionID); err != nil {
		logger.Errorf("clear failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to clear knowledge base"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"cleared": true})
}

func (s *Server) handleChunks(c echo.Context) error {
	docs, err := s.engine.ListChunks(c.Request().Context(), 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list chunks"})
	}

	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, map[string]any{
			"id":          doc.ID,
			"source":      doc.Source(),
			"chunk_index": doc.ChunkIndex(),
			"content":     doc.Content,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"chunks": out})
}

// saveUpload writes the multipart file field into the upload directory after
// validating its extension. The caller removes the file when done. Failures
// come back as *echo.HTTPError for the framework to render.
func (s *Server) saveUpload(c echo.Context) (path, filename string, err error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "file field is required")
	}
	filename = filepath.Base(fh.Filename)

	ext := strings.ToLower(filepath.Ext(filename))
	if !s.supported(ext) {
		return "", "", echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("unsupported format %q, supported: %s", ext, strings.Join(s.engine.SupportedExtensions(), ", ")))
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", "", echo.NewHTTPError(http.StatusInternalServerError, "failed to prepare upload dir")
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "failed to open upload")
	}
	defer src.Close()

	path = filepath.Join(s.uploadDir, filename)
	dst, err := os.Create(path)
	if err != nil {
		return "", "", echo.NewHTTPError(http.StatusInternalServerError, "failed to store upload")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", "", echo.NewHTTPError(http.StatusInternalServerError, "failed to store upload")
	}
	return path, filename, nil
}

func (s *Server) supported(ext string) bool {
	for _, e := range s.engine.SupportedExtensions() {
		if e == ext {
			return true
		}
	}
	return false
}
