package validate

import (
	"fmt"
	"strings"

	"github.com/dgallion1/promptforge/internal/section"
	"github.com/dgallion1/promptforge/internal/variable"
)

// Scoring weights and document thresholds.
const (
	MaxScore              = 100
	MissingSectionPenalty = 20
	UnreplacedPenalty     = 15
	ShortDocumentPenalty  = 5
	MinDocumentWords      = 50
)

// Report is the compliance result for a complete document. Compliant and
// Score are independent: a short document can be compliant with score 95.
type Report struct {
	Compliant           bool     `json:"is_compliant"`
	Score               int      `json:"compliance_score"`
	MissingSections     []string `json:"missing_sections"`
	UnreplacedVariables []string `json:"unreplaced_variables"`
	Issues              []string `json:"issues"`
	Warnings            []string `json:"warnings"`
}

// ScoreDocument scores text against the required headings, leftover
// variables and minimum length.
func ScoreDocument(text string) Report {
	r := Report{
		Score:               MaxScore,
		MissingSections:     []string{},
		UnreplacedVariables: []string{},
		Issues:              []string{},
		Warnings:            []string{},
	}

	_, missing := section.MissingRequired(text)
	for _, h := range missing {
		r.MissingSections = append(r.MissingSections, h)
		r.Score -= MissingSectionPenalty
		r.Issues = append(r.Issues, "Missing required section: "+h)
	}

	if unreplaced := variable.BareNames(text); len(unreplaced) > 0 {
		r.UnreplacedVariables = unreplaced
		r.Score -= UnreplacedPenalty * len(unreplaced)
		r.Issues = append(r.Issues, "Unreplaced variables detected: "+strings.Join(unreplaced, ", "))
	}

	if words := len(strings.Fields(text)); words < MinDocumentWords {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Document is relatively short (%d words)", words))
		r.Score -= ShortDocumentPenalty
	}

	r.Compliant = len(r.MissingSections) == 0 && len(r.UnreplacedVariables) == 0
	r.Score = max(0, r.Score)
	return r
}
