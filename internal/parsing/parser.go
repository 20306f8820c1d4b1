// Package parsing converts an uploaded résumé document into a structured,
// schema-validated candidate profile: size guard, text extraction,
// sanitization, then structured extraction through a completion backend.
package parsing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IamHari01/NEXUS-TALENT/internal/llm"
	"github.com/IamHari01/NEXUS-TALENT/internal/schemas"
	"github.com/IamHari01/NEXUS-TALENT/internal/types"
	"go.uber.org/zap"
)

// extractionLimit bounds how much sanitized text is handed to the model.
const extractionLimit = 12000

const extractionInstruction = "You are a professional resume parser. " +
	"Extract details from the resume accurately. Output only valid JSON matching the provided schema, " +
	"with no markdown and no explanation."

// Parser validates, extracts, sanitizes, and structures résumé documents.
type Parser struct {
	completer llm.Completer
	extractor Extractor
	maxBytes  int
	logger    *zap.Logger
}

// New creates a parser. maxBytes is the configured document size ceiling.
func New(completer llm.Completer, extractor Extractor, maxBytes int, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	if extractor == nil {
		extractor = DocumentExtractor{}
	}
	return &Parser{completer: completer, extractor: extractor, maxBytes: maxBytes, logger: logger}
}

// Parse runs the full parsing pipeline and returns the structured profile
// together with the sanitized résumé text. Extraction is attempted exactly
// once; any failure propagates as a typed error.
func (p *Parser) Parse(ctx context.Context, doc []byte) (*types.CandidateProfile, string, error) {
	if len(doc) == 0 {
		return nil, "", &ValidationError{Message: "document is empty"}
	}
	if len(doc) > p.maxBytes {
		return nil, "", &ValidationError{
			Message: fmt.Sprintf("document size %d exceeds maximum %d bytes", len(doc), p.maxBytes),
		}
	}

	raw, err := p.extractor.Extract(doc)
	if err != nil {
		return nil, "", &ParseError{Message: "could not extract text from document", Cause: err}
	}

	text := Sanitize(raw)
	if text == "" {
		return nil, "", &ParseError{Message: "no usable text after sanitization"}
	}

	profile, err := p.extractProfile(ctx, text)
	if err != nil {
		return nil, "", err
	}

	p.logger.Info("resume parsed",
		zap.Int("char_count", len(text)),
		zap.Int("skill_count", len(profile.Skills)))

	return profile, text, nil
}

func (p *Parser) extractProfile(ctx context.Context, text string) (*types.CandidateProfile, error) {
	prompt := buildExtractionPrompt(text)

	response, err := p.completer.Run(ctx, prompt, extractionInstruction, true)
	if err != nil {
		return nil, &ParseError{Message: "structured extraction failed", Cause: err}
	}

	response = llm.CleanJSONBlock(response)
	if err := schemas.ValidateString(schemas.CandidateProfile(), response); err != nil {
		return nil, &SchemaError{Message: "extraction does not conform to candidate profile schema", Cause: err}
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal([]byte(response), &profile); err != nil {
		return nil, &SchemaError{Message: "extraction is not decodable JSON", Cause: err}
	}
	return &profile, nil
}

func buildExtractionPrompt(text string) string {
	runes := []rune(text)
	if len(runes) > extractionLimit {
		text = string(runes[:extractionLimit])
	}
	return fmt.Sprintf("Extract details from this resume into JSON matching this schema:\n%s\n\nRESUME:\n%s",
		schemas.CandidateProfile(), text)
}
