package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// GenerationType identifies the kind of study artifact a generation job produces.
type GenerationType string

// Possible generation type values
const (
	GenerationTypeQuiz       GenerationType = "quiz"
	GenerationTypeFlashcards GenerationType = "flashcards"
	GenerationTypeExam       GenerationType = "exam"
)

// ModelTier selects one of the two fixed model tiers exposed to callers.
type ModelTier string

// Possible model tier values
const (
	ModelTierFast    ModelTier = "fast"
	ModelTierCapable ModelTier = "capable"
)

// SourceKind identifies which payload a generation request carries.
type SourceKind string

// Possible source kind values
const (
	SourceKindDocument   SourceKind = "document"
	SourceKindTranscript SourceKind = "transcript"
)

// Payload limits enforced by GenerationRequest validation.
const (
	// MaxDocumentBytes is the largest PDF payload accepted for generation.
	MaxDocumentBytes = 32 << 20

	// MinTranscriptChars is the minimum number of trimmed characters a
	// transcript must contain to be worth sending to the model.
	MinTranscriptChars = 50
)

// Common validation errors for GenerationRequest
var (
	ErrInvalidRequest        = errors.New("invalid generation request")
	ErrUnknownGenerationType = fmt.Errorf("%w: unknown generation type", ErrInvalidRequest)
	ErrUnknownModelTier      = fmt.Errorf("%w: unknown model tier", ErrInvalidRequest)
	ErrNegativeCount         = fmt.Errorf("%w: counts cannot be negative", ErrInvalidRequest)
	ErrNoItemsRequested      = fmt.Errorf(
		"%w: at least one question or card must be requested",
		ErrInvalidRequest,
	)
	ErrAmbiguousSource = fmt.Errorf(
		"%w: exactly one of a PDF payload or a transcript must be supplied",
		ErrInvalidRequest,
	)
	ErrTranscriptTooShort = fmt.Errorf(
		"%w: transcript must contain at least %d characters",
		ErrInvalidRequest, MinTranscriptChars,
	)
	ErrDocumentTooLarge = fmt.Errorf(
		"%w: PDF payload exceeds %d bytes",
		ErrInvalidRequest, MaxDocumentBytes,
	)
)

// GenerationRequest is the validated, immutable parameter set for one
// generation job. Exactly one of PDFData or TranscriptText carries the
// source payload.
type GenerationRequest struct {
	GenerationType     GenerationType
	Model              ModelTier
	Title              string
	CustomInstructions string

	// Type-specific counts. Only the counts relevant to GenerationType
	// are consulted; the rest are ignored.
	MCQCount            int
	ShortAnswerCount    int
	FlashcardCount      int
	ExamQuestionCount   int
	ExamDurationMinutes int

	PDFData        []byte
	TranscriptText string
}

// SourceKind reports which payload the request carries. Only meaningful
// after Validate has accepted the request.
func (r *GenerationRequest) SourceKind() SourceKind {
	if len(r.PDFData) > 0 {
		return SourceKindDocument
	}
	return SourceKindTranscript
}

// Validate checks the request against the generation contract. It is a pure
// check with no side effects; a request that passes is safe to hand to the
// prompt builders.
func (r *GenerationRequest) Validate() error {
	switch r.GenerationType {
	case GenerationTypeQuiz, GenerationTypeFlashcards, GenerationTypeExam:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownGenerationType, r.GenerationType)
	}

	switch r.Model {
	case ModelTierFast, ModelTierCapable:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownModelTier, r.Model)
	}

	if r.MCQCount < 0 || r.ShortAnswerCount < 0 || r.FlashcardCount < 0 ||
		r.ExamQuestionCount < 0 || r.ExamDurationMinutes < 0 {
		return ErrNegativeCount
	}

	switch r.GenerationType {
	case GenerationTypeQuiz:
		if r.MCQCount+r.ShortAnswerCount == 0 {
			return ErrNoItemsRequested
		}
	case GenerationTypeFlashcards:
		if r.FlashcardCount == 0 {
			return ErrNoItemsRequested
		}
	case GenerationTypeExam:
		if r.ExamQuestionCount == 0 {
			return ErrNoItemsRequested
		}
	}

	hasPDF := len(r.PDFData) > 0
	hasTranscript := strings.TrimSpace(r.TranscriptText) != ""
	if hasPDF == hasTranscript {
		return ErrAmbiguousSource
	}

	if hasPDF && len(r.PDFData) > MaxDocumentBytes {
		return ErrDocumentTooLarge
	}

	if hasTranscript {
		trimmed := strings.TrimSpace(r.TranscriptText)
		if utf8.RuneCountInString(trimmed) < MinTranscriptChars {
			return ErrTranscriptTooShort
		}
	}

	return nil
}
