package domain

import (
	"errors"
	"fmt"
)

// ManualGradingOption is the sentinel value an exam question carries in
// CorrectOption when the correct answer is withheld for manual grading.
// Scores must never be auto-computed from a question holding it.
const ManualGradingOption = -1

// Common validation errors for Exam
var (
	ErrEmptyExamID          = errors.New("exam ID cannot be empty")
	ErrExamWithoutQuestions = errors.New("exam must contain at least one question")
	ErrInvalidExamOptions   = errors.New("exam questions must carry exactly four options")
	ErrInvalidCorrectOption = errors.New("exam correct option must be 0-3 or the manual grading sentinel")
)

// ExamQuestion is a single multiple-choice question inside a generated exam.
// CorrectOption is a 0-based option index, or ManualGradingOption when the
// answer is withheld.
type ExamQuestion struct {
	ID            int      `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}

// Exam is a generated, manually-graded exam artifact.
type Exam struct {
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	DurationMinutes      int            `json:"duration_minutes"`
	ShowResultsImmediate bool           `json:"show_results_immediate"`
	ManualGrading        bool           `json:"manual_grading"`
	Questions            []ExamQuestion `json:"questions"`
}

// Validate checks the structural invariants of an exam.
func (e *Exam) Validate() error {
	if e.ID == "" {
		return ErrEmptyExamID
	}
	if len(e.Questions) == 0 {
		return ErrExamWithoutQuestions
	}
	for _, question := range e.Questions {
		if len(question.Options) != MCQOptionCount {
			return fmt.Errorf("%w: question %d has %d", ErrInvalidExamOptions, question.ID, len(question.Options))
		}
		if question.CorrectOption != ManualGradingOption &&
			(question.CorrectOption < 0 || question.CorrectOption >= MCQOptionCount) {
			return fmt.Errorf("%w: question %d has %d", ErrInvalidCorrectOption, question.ID, question.CorrectOption)
		}
	}
	return nil
}
