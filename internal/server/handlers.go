package server

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/server/middleware"
	"github.com/jonathan/resume-matcher/internal/storage"
)

// SkillsResponse represents the response for /skills
type SkillsResponse struct {
	Skills []string `json:"skills"`
	Count  int      `json:"count"`
}

// indexView is the data passed to index.html.
type indexView struct {
	URLIngest bool
}

// analyzeForm is the parsed /analyze request.
type analyzeForm struct {
	filename    string
	contentType string
	document    []byte
	description string
	jobURL      string
}

// handleIndex serves the upload form.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "index.html", indexView{URLIngest: s.fetcher != nil})
}

// handleAnalyze scores an uploaded resume against a job description given as text or
// fetched from job_url.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)

	form, err := s.parseAnalyzeForm(w, r)
	if err != nil {
		s.analyzeError(w, r, err)
		return
	}

	if strings.TrimSpace(form.description) == "" && form.jobURL != "" && s.fetcher != nil {
		form.description, err = ingestion.FromURL(r.Context(), s.fetcher, form.jobURL, logger)
		if err != nil {
			logger.Warn("fetching job posting failed", zap.String("job_url", form.jobURL), zap.Error(err))
			s.analyzeError(w, r, err)
			return
		}
	}

	if len(form.document) == 0 || strings.TrimSpace(form.description) == "" {
		s.analyzeError(w, r, &matching.InvalidInputError{Message: "resume and job description are required"})
		return
	}

	obj, err := s.store.Save(r.Context(), storage.Upload{
		Filename:    form.filename,
		ContentType: form.contentType,
		Data:        form.document,
	})
	if err != nil {
		logger.Error("storing upload failed, continuing", zap.Error(err))
	} else if obj.Key != "" {
		logger.Debug("stored upload", zap.String("key", obj.Key))
	}

	result, err := s.analyzer.Analyze(form.document, form.description)
	if err != nil {
		s.analyzeError(w, r, err)
		return
	}

	logger.Info("analysis complete",
		zap.String("filename", form.filename),
		zap.Float64("similarity_percent", result.SimilarityPercent),
		zap.String("tier", string(result.Tier)),
		zap.Int("warnings", len(result.Warnings)))

	if wantsHTML(r) {
		s.render(w, http.StatusOK, "result.html", resultView{Result: result, Filename: form.filename})
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) parseAnalyzeForm(w http.ResponseWriter, r *http.Request) (*analyzeForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, maxErr
		}
		return nil, &matching.InvalidInputError{Field: "form", Message: err.Error()}
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	form := &analyzeForm{
		description: r.FormValue("job_description"),
		jobURL:      strings.TrimSpace(r.FormValue("job_url")),
	}

	file, header, err := r.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) {
		return form, nil
	}
	if err != nil {
		return nil, &matching.InvalidInputError{Field: "resume", Message: err.Error()}
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return nil, err
	}

	form.filename = header.Filename
	form.contentType = header.Header.Get("Content-Type")
	form.document = buf.Bytes()
	return form, nil
}

func (s *Server) analyzeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		s.requestLogger(r).Error("analysis failed", zap.Error(err))
	}

	message := publicMessage(err)
	if wantsHTML(r) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, message)
		return
	}
	s.errorResponse(w, status, message)
}

// handleSkills returns the skill vocabulary.
func (s *Server) handleSkills(w http.ResponseWriter, _ *http.Request) {
	entries := s.vocabulary.Entries()
	s.jsonResponse(w, http.StatusOK, SkillsResponse{Skills: entries, Count: len(entries)})
}

// handleSchema returns the JSON Schema of /analyze responses.
func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = io.WriteString(w, schemas.MatchResultSchema())
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	if id, ok := middleware.GetRequestID(r.Context()); ok {
		return s.logger.With(zap.String("request_id", id))
	}
	return s.logger
}

// wantsHTML reports whether the client prefers an HTML page over JSON.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
