package api

import (
	"net/http"

	"github.com/dgallion1/promptforge/internal/section"
	"github.com/dgallion1/promptforge/internal/validate"
	"github.com/dgallion1/promptforge/internal/variable"
)

type textRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleVariables(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"variables": variable.Extract(req.Text),
		"names":     variable.ExtractNames(req.Text),
	})
}

type substituteRequest struct {
	Text   string         `json:"text"`
	Values map[string]any `json:"values"`
}

func (s *Server) handleSubstitute(w http.ResponseWriter, r *http.Request) {
	var req substituteRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	result := variable.Substitute(req.Text, variable.FromAny(req.Values))
	writeJSON(w, http.StatusOK, map[string]any{
		"result":     result,
		"unreplaced": variable.FindUnreplaced(result),
	})
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	ok, missing := section.MissingRequired(req.Text)
	writeJSON(w, http.StatusOK, map[string]any{
		"sections":         section.ExtractSections(req.Text),
		"detected":         section.Detect(req.Text),
		"has_required":     ok,
		"missing_required": missing,
	})
}

func (s *Server) handleValidateTemplate(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, section.ValidateTemplate(req.Text))
}

type sectionRequest struct {
	SectionName string `json:"section_name"`
	Content     string `json:"content"`
}

func (s *Server) handleValidateSection(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, validate.ValidateSection(req.SectionName, req.Content))
}

func (s *Server) handleValidateDocument(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	report := validate.ScoreDocument(req.Text)
	s.stats.Record(report.Score, report.Compliant)
	writeJSON(w, http.StatusOK, report)
}
