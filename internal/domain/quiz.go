package domain

import (
	"errors"
	"fmt"
)

// QuizQuestionType distinguishes the two quiz question flavors.
type QuizQuestionType string

// Possible quiz question type values
const (
	QuizQuestionMCQ         QuizQuestionType = "mcq"
	QuizQuestionShortAnswer QuizQuestionType = "short_answer"
)

// MCQOptionCount is the fixed number of options a multiple-choice
// question carries (A through D).
const MCQOptionCount = 4

// Common validation errors for Quiz
var (
	ErrEmptyQuizID        = errors.New("quiz ID cannot be empty")
	ErrQuizWithoutItems   = errors.New("quiz must contain at least one question")
	ErrQuizQuestionIDs    = errors.New("quiz question ids must be dense and 1-based")
	ErrInvalidQuizOptions = errors.New("mcq questions must carry exactly four options")
)

// QuizQuestion is a single question inside a generated quiz. Options is
// populated only for mcq questions.
type QuizQuestion struct {
	ID            int              `json:"id"`
	Type          QuizQuestionType `json:"type"`
	Text          string           `json:"text"`
	Options       []string         `json:"options,omitempty"`
	CorrectAnswer string           `json:"correct_answer"`
}

// Quiz is a generated quiz artifact.
type Quiz struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

// Validate checks the structural invariants of a quiz: a type-prefixed id,
// at least one question, and dense 1-based question ids.
func (q *Quiz) Validate() error {
	if q.ID == "" {
		return ErrEmptyQuizID
	}
	if len(q.Questions) == 0 {
		return ErrQuizWithoutItems
	}
	for i, question := range q.Questions {
		if question.ID != i+1 {
			return fmt.Errorf("%w: question %d has id %d", ErrQuizQuestionIDs, i, question.ID)
		}
		if question.Type == QuizQuestionMCQ && len(question.Options) != MCQOptionCount {
			return fmt.Errorf("%w: question %d has %d", ErrInvalidQuizOptions, question.ID, len(question.Options))
		}
	}
	return nil
}
