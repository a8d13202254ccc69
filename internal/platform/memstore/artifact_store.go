package memstore

import (
	"context"
	"log/slog"
	"sync"

	"github.com/studyengine/studyengine-api/internal/domain"
	"github.com/studyengine/studyengine-api/internal/store"
)

// ArtifactStore is an in-memory implementation of store.ArtifactStore.
// Quizzes, decks and exams live in separate maps keyed by their own
// type-prefixed ids. Values are copied on the way in and out.
type ArtifactStore struct {
	mu      sync.RWMutex
	quizzes map[string]*domain.Quiz
	decks   map[string]*domain.Deck
	exams   map[string]*domain.Exam
	logger  *slog.Logger
}

// NewArtifactStore creates an empty in-memory artifact store.
func NewArtifactStore(logger *slog.Logger) *ArtifactStore {
	return &ArtifactStore{
		quizzes: make(map[string]*domain.Quiz),
		decks:   make(map[string]*domain.Deck),
		exams:   make(map[string]*domain.Exam),
		logger:  logger.With("component", "artifact_store"),
	}
}

// SaveQuiz stores a validated quiz under its own id.
func (s *ArtifactStore) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if err := quiz.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.quizzes[quiz.ID]; exists {
		return store.ErrDuplicate
	}
	s.quizzes[quiz.ID] = cloneQuiz(quiz)
	s.logger.Debug("quiz saved", "quiz_id", quiz.ID, "question_count", len(quiz.Questions))
	return nil
}

// GetQuiz retrieves a quiz by id.
func (s *ArtifactStore) GetQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	s.mu.RLock()
	quiz, ok := s.quizzes[id]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrQuizNotFound
	}
	return cloneQuiz(quiz), nil
}

// ListQuizzes returns all saved quizzes.
func (s *ArtifactStore) ListQuizzes(ctx context.Context) ([]*domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Quiz, 0, len(s.quizzes))
	for _, quiz := range s.quizzes {
		out = append(out, cloneQuiz(quiz))
	}
	return out, nil
}

// SaveDeck stores a validated deck under its own id.
func (s *ArtifactStore) SaveDeck(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.decks[deck.ID]; exists {
		return store.ErrDuplicate
	}
	s.decks[deck.ID] = cloneDeck(deck)
	s.logger.Debug("deck saved", "deck_id", deck.ID, "card_count", len(deck.Cards))
	return nil
}

// GetDeck retrieves a deck by id.
func (s *ArtifactStore) GetDeck(ctx context.Context, id string) (*domain.Deck, error) {
	s.mu.RLock()
	deck, ok := s.decks[id]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrDeckNotFound
	}
	return cloneDeck(deck), nil
}

// ListDecks returns all saved decks.
func (s *ArtifactStore) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Deck, 0, len(s.decks))
	for _, deck := range s.decks {
		out = append(out, cloneDeck(deck))
	}
	return out, nil
}

// SaveExam stores a validated exam under its own id.
func (s *ArtifactStore) SaveExam(ctx context.Context, exam *domain.Exam) error {
	if err := exam.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.exams[exam.ID]; exists {
		return store.ErrDuplicate
	}
	s.exams[exam.ID] = cloneExam(exam)
	s.logger.Debug("exam saved", "exam_id", exam.ID, "question_count", len(exam.Questions))
	return nil
}

// GetExam retrieves an exam by id.
func (s *ArtifactStore) GetExam(ctx context.Context, id string) (*domain.Exam, error) {
	s.mu.RLock()
	exam, ok := s.exams[id]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrExamNotFound
	}
	return cloneExam(exam), nil
}

// ListExams returns all saved exams.
func (s *ArtifactStore) ListExams(ctx context.Context) ([]*domain.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Exam, 0, len(s.exams))
	for _, exam := range s.exams {
		out = append(out, cloneExam(exam))
	}
	return out, nil
}

func cloneQuiz(q *domain.Quiz) *domain.Quiz {
	clone := *q
	clone.Questions = make([]domain.QuizQuestion, len(q.Questions))
	copy(clone.Questions, q.Questions)
	for i, question := range clone.Questions {
		if question.Options != nil {
			options := make([]string, len(question.Options))
			copy(options, question.Options)
			clone.Questions[i].Options = options
		}
	}
	return &clone
}

func cloneDeck(d *domain.Deck) *domain.Deck {
	clone := *d
	clone.Cards = make([]domain.Flashcard, len(d.Cards))
	copy(clone.Cards, d.Cards)
	return &clone
}

func cloneExam(e *domain.Exam) *domain.Exam {
	clone := *e
	clone.Questions = make([]domain.ExamQuestion, len(e.Questions))
	copy(clone.Questions, e.Questions)
	for i, question := range clone.Questions {
		options := make([]string, len(question.Options))
		copy(options, question.Options)
		clone.Questions[i].Options = options
	}
	return &clone
}

var _ store.ArtifactStore = (*ArtifactStore)(nil)
