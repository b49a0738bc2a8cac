package api

import (
	"net/http"

	"github.com/dgallion1/promptforge/internal/render"
	"github.com/dgallion1/promptforge/internal/validate"
	"github.com/dgallion1/promptforge/internal/variable"
	"github.com/dgallion1/promptforge/internal/wizard"
)

func (s *Server) handleWizardSteps(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	steps := s.catalog.Analyze(req.Text)
	writeJSON(w, http.StatusOK, map[string]any{
		"steps":       steps,
		"total_steps": len(steps),
	})
}

type generateRequest struct {
	Text           string            `json:"text"`
	SectionContent map[string]string `json:"section_content"`
	Values         map[string]any    `json:"values"`
}

type generateResponse struct {
	Document    string             `json:"document"`
	Validations []validate.Verdict `json:"validations"`
	Compliance  validate.Report    `json:"compliance"`
}

func generate(text string, sectionContent map[string]string, values map[string]any) generateResponse {
	doc, verdicts := wizard.GenerateDocument(text, sectionContent, variable.FromAny(values))
	return generateResponse{
		Document:    doc,
		Validations: verdicts,
		Compliance:  validate.ScoreDocument(doc),
	}
}

func (s *Server) handleWizardGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, generate(req.Text, req.SectionContent, req.Values))
}

type renderRequest struct {
	Markdown string `json:"markdown"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	out, err := render.ToHTML(req.Markdown)
	if err != nil {
		s.log.Error("render failed", "error", err)
		jsonError(w, "render failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": out})
}
