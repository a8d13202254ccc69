package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyengine/studyengine-api/internal/domain"
	"github.com/studyengine/studyengine-api/internal/platform/memstore"
)

func newArtifactRouter(store *memstore.ArtifactStore) http.Handler {
	h := NewArtifactHandler(store, testLogger())
	r := chi.NewRouter()
	r.Get("/api/quizzes", h.ListQuizzes)
	r.Get("/api/quizzes/{id}", h.GetQuiz)
	r.Get("/api/decks", h.ListDecks)
	r.Get("/api/decks/{id}", h.GetDeck)
	r.Get("/api/exams", h.ListExams)
	r.Get("/api/exams/{id}", h.GetExam)
	return r
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestArtifactEndpoints(t *testing.T) {
	t.Parallel()

	store := memstore.NewArtifactStore(testLogger())
	ctx := context.Background()

	quiz := &domain.Quiz{
		ID:    "quiz_1a2b3c4d",
		Title: "Saved Quiz",
		Questions: []domain.QuizQuestion{
			{ID: 1, Type: domain.QuizQuestionShortAnswer, Text: "Q?", CorrectAnswer: "A"},
		},
	}
	require.NoError(t, store.SaveQuiz(ctx, quiz))

	deck := &domain.Deck{
		ID:    "deck_1a2b3c4d",
		Title: "Saved Deck",
		Cards: []domain.Flashcard{{Front: "F", Back: "B"}},
	}
	require.NoError(t, store.SaveDeck(ctx, deck))

	exam := &domain.Exam{
		ID:              "exam_1a2b3c4d",
		Title:           "Saved Exam",
		DurationMinutes: 60,
		ManualGrading:   true,
		Questions: []domain.ExamQuestion{
			{ID: 1, Text: "Q?", Options: []string{"A", "B", "C", "D"}, CorrectOption: domain.ManualGradingOption},
		},
	}
	require.NoError(t, store.SaveExam(ctx, exam))

	router := newArtifactRouter(store)

	// Single lookups return the stored artifact.
	w := get(router, "/api/quizzes/quiz_1a2b3c4d")
	assert.Equal(t, http.StatusOK, w.Code)
	var gotQuiz domain.Quiz
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gotQuiz))
	assert.Equal(t, quiz.Title, gotQuiz.Title)

	w = get(router, "/api/decks/deck_1a2b3c4d")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(router, "/api/exams/exam_1a2b3c4d")
	assert.Equal(t, http.StatusOK, w.Code)
	var gotExam domain.Exam
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gotExam))
	assert.Equal(t, domain.ManualGradingOption, gotExam.Questions[0].CorrectOption)

	// Lists return everything saved so far.
	w = get(router, "/api/quizzes")
	assert.Equal(t, http.StatusOK, w.Code)
	var quizzes []domain.Quiz
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quizzes))
	assert.Len(t, quizzes, 1)

	w = get(router, "/api/decks")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(router, "/api/exams")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestArtifactEndpointsNotFound(t *testing.T) {
	t.Parallel()

	router := newArtifactRouter(memstore.NewArtifactStore(testLogger()))

	for _, path := range []string{
		"/api/quizzes/quiz_missing",
		"/api/decks/deck_missing",
		"/api/exams/exam_missing",
	} {
		w := get(router, path)
		assert.Equalf(t, http.StatusNotFound, w.Code, "path %s", path)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["error"])
	}
}

func TestArtifactEndpointsEmptyLists(t *testing.T) {
	t.Parallel()

	router := newArtifactRouter(memstore.NewArtifactStore(testLogger()))

	w := get(router, "/api/quizzes")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
