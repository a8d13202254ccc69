package store

import (
	"context"

	"github.com/studyengine/studyengine-api/internal/domain"
)

// ArtifactStore defines the interface for persisting completed study
// artifacts. Saving is a one-way handoff from a completed job; the job
// record itself is never touched by this store. Artifacts are keyed by
// their own type-prefixed ids, so the three families can safely share an
// implementation.
// Version: 1.0
type ArtifactStore interface {
	// SaveQuiz stores a quiz under its own id.
	// Returns ErrDuplicate if the id is already taken.
	SaveQuiz(ctx context.Context, quiz *domain.Quiz) error

	// GetQuiz retrieves a quiz by id.
	// Returns ErrQuizNotFound if the quiz does not exist.
	GetQuiz(ctx context.Context, id string) (*domain.Quiz, error)

	// ListQuizzes returns all saved quizzes in unspecified order.
	ListQuizzes(ctx context.Context) ([]*domain.Quiz, error)

	// SaveDeck stores a flashcard deck under its own id.
	// Returns ErrDuplicate if the id is already taken.
	SaveDeck(ctx context.Context, deck *domain.Deck) error

	// GetDeck retrieves a deck by id.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetDeck(ctx context.Context, id string) (*domain.Deck, error)

	// ListDecks returns all saved decks in unspecified order.
	ListDecks(ctx context.Context) ([]*domain.Deck, error)

	// SaveExam stores an exam under its own id.
	// Returns ErrDuplicate if the id is already taken.
	SaveExam(ctx context.Context, exam *domain.Exam) error

	// GetExam retrieves an exam by id.
	// Returns ErrExamNotFound if the exam does not exist.
	GetExam(ctx context.Context, id string) (*domain.Exam, error)

	// ListExams returns all saved exams in unspecified order.
	ListExams(ctx context.Context) ([]*domain.Exam, error)
}
