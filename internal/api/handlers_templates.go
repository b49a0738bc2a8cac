package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/dgallion1/promptforge/internal/catalog"
	"github.com/dgallion1/promptforge/internal/render"
	"github.com/dgallion1/promptforge/internal/section"
	"github.com/dgallion1/promptforge/internal/source"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	templates := s.catalog.List(catalog.Query{
		Role:   q.Get("role"),
		Phase:  q.Get("phase"),
		Search: q.Get("search"),
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"templates": templates,
		"count":     len(templates),
	})
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := s.catalog.Get(chi.URLParam(r, "templateID"))
	if !ok {
		jsonError(w, "template not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"template":   tmpl,
		"validation": section.ValidateTemplate(tmpl.Content),
	})
}

func (s *Server) handleTemplateWizard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "templateID")
	steps, ok := s.catalog.Steps(id)
	if !ok {
		jsonError(w, "template not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"template_id": id,
		"steps":       steps,
		"total_steps": len(steps),
	})
}

type templateGenerateRequest struct {
	SectionContent map[string]string `json:"section_content"`
	Values         map[string]any    `json:"values"`
}

// handleTemplateGenerate fills a catalogued template. With ?format=text or
// ?format=html the document is returned as a download instead of JSON.
func (s *Server) handleTemplateGenerate(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := s.catalog.Get(chi.URLParam(r, "templateID"))
	if !ok {
		jsonError(w, "template not found", http.StatusNotFound)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "text" && format != "html" {
		jsonError(w, fmt.Sprintf("unsupported format: %s", format), http.StatusBadRequest)
		return
	}

	var req templateGenerateRequest
	if !s.decodeOptionalJSON(w, r, &req) {
		return
	}
	resp := generate(tmpl.Content, req.SectionContent, req.Values)

	switch format {
	case "text":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tmpl.ID+".md"))
		_, _ = io.WriteString(w, resp.Document)
	case "html":
		body, err := render.ToHTML(resp.Document)
		if err != nil {
			s.log.Error("render failed", "template_id", tmpl.ID, "error", err)
			jsonError(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tmpl.ID+".html"))
		_, _ = io.WriteString(w, render.Page(tmpl.Title, body))
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"template_id": tmpl.ID,
			"document":    resp.Document,
			"validations": resp.Validations,
			"compliance":  resp.Compliance,
		})
	}
}

func (s *Server) handleUploadTemplate(w http.ResponseWriter, r *http.Request) {
	// Extra 1MB for multipart overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	loader, err := source.ForFile(filename, source.Options{PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext})
	if err != nil {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	doc, err := loader.Load(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Warn("template upload failed", "file", filename, "error", err)
		jsonError(w, "could not read template: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if title := r.FormValue("title"); title != "" {
		doc.Title = title
	}

	tmpl := s.catalog.Add(doc)
	s.log.Info("template uploaded", "template_id", tmpl.ID, "file", filename, "variables", len(tmpl.Variables))

	writeJSON(w, http.StatusCreated, map[string]any{
		"template":   tmpl.Summary(),
		"validation": section.ValidateTemplate(tmpl.Content),
	})
}
