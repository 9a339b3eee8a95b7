// Package matching scores a candidate document against a target description.
//
// The Engine combines document text extraction, fixed-vocabulary skill detection,
// TF-IDF cosine similarity and tiered feedback into a single Result. It has no
// knowledge of HTTP, files or rendering.
package matching

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/feedback"
	"github.com/jonathan/resume-matcher/internal/similarity"
	"github.com/jonathan/resume-matcher/internal/skills"
)

// Result is the outcome of one analysis.
type Result struct {
	SimilarityPercent float64       `json:"similarity_percent"`
	Tier              feedback.Tier `json:"tier"`
	Message           string        `json:"message"`
	DocumentSkills    skills.Set    `json:"document_skills"`
	DescriptionSkills skills.Set    `json:"description_skills"`
	MissingSkills     skills.Set    `json:"missing_skills"`
	// Warnings flags degraded document extraction. Empty when extraction was clean.
	Warnings []string `json:"warnings,omitempty"`
}

// Scorer computes a similarity percentage in [0, 100] between two texts.
type Scorer interface {
	Score(a, b string) float64
}

// Engine runs analyses. It holds only read-only collaborators and is safe for
// concurrent use.
type Engine struct {
	extractor  extraction.Extractor
	vocabulary *skills.Vocabulary
	scorer     Scorer
	classifier feedback.Classifier
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewEngine wires an Engine from its collaborators. A nil logger disables logging.
func NewEngine(
	extractor extraction.Extractor,
	vocabulary *skills.Vocabulary,
	scorer Scorer,
	classifier feedback.Classifier,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	validate := validator.New()
	// notblank is not a built-in tag; it rejects whitespace-only strings.
	_ = validate.RegisterValidation("notblank", validators.NotBlank)

	return &Engine{
		extractor:  extractor,
		vocabulary: vocabulary,
		scorer:     scorer,
		classifier: classifier,
		validate:   validate,
		logger:     logger,
	}
}

// NewDefaultEngine returns an Engine using PDF extraction, the default skill
// vocabulary and English stop words.
func NewDefaultEngine(organization string, logger *zap.Logger) *Engine {
	return NewEngine(
		extraction.NewPDFExtractor(logger),
		skills.DefaultVocabulary(),
		similarity.NewScorer(similarity.EnglishStopWords()),
		feedback.NewClassifier(organization),
		logger,
	)
}

type analyzeInput struct {
	Document    []byte `validate:"required,min=1"`
	Description string `validate:"notblank"`
}

// Analyze scores document against description.
//
// It returns *InvalidInputError when the document is empty or the description is
// blank. Extraction problems never fail the analysis; they surface as Warnings and
// a low score.
func (e *Engine) Analyze(document []byte, description string) (*Result, error) {
	if err := e.validateInput(analyzeInput{Document: document, Description: description}); err != nil {
		return nil, err
	}

	extracted := e.extractor.Extract(document)

	documentSkills := skills.Extract(extracted.Text, e.vocabulary)
	descriptionSkills := skills.Extract(description, e.vocabulary)
	percent := e.scorer.Score(extracted.Text, description)
	fb := e.classifier.Classify(percent)

	result := &Result{
		SimilarityPercent: percent,
		Tier:              fb.Tier,
		Message:           fb.Message,
		DocumentSkills:    documentSkills,
		DescriptionSkills: descriptionSkills,
		MissingSkills:     descriptionSkills.Difference(documentSkills),
		Warnings:          extractionWarnings(extracted),
	}

	e.logger.Debug("analysis complete",
		zap.Float64("similarity_percent", result.SimilarityPercent),
		zap.String("tier", string(result.Tier)),
		zap.Int("document_skills", documentSkills.Len()),
		zap.Int("description_skills", descriptionSkills.Len()),
		zap.Int("missing_skills", result.MissingSkills.Len()))

	return result, nil
}

func (e *Engine) validateInput(in analyzeInput) error {
	err := e.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Document":
			return &InvalidInputError{Field: "document", Message: "document is required"}
		case "Description":
			return &InvalidInputError{Field: "description", Message: "description must not be empty"}
		}
	}
	return &InvalidInputError{Message: err.Error()}
}

func extractionWarnings(ex extraction.Extraction) []string {
	var warnings []string
	switch {
	case !ex.Parsed():
		warnings = append(warnings, "document could not be parsed; no text was extracted")
	case len(ex.FailedPages) > 0:
		warnings = append(warnings, fmt.Sprintf("%d of %d pages could not be decoded", len(ex.FailedPages), ex.PageCount))
	}
	if ex.Parsed() && ex.Text == "" {
		warnings = append(warnings, "no text was found in the document")
	}
	return warnings
}
