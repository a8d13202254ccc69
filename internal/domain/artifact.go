package domain

import (
	"strings"

	"github.com/google/uuid"
)

// artifactIDPrefixes maps a generation type to the prefix used for the
// artifact ids it produces. The prefix keeps ids collision-free when
// quizzes, decks and exams later share a store.
var artifactIDPrefixes = map[GenerationType]string{
	GenerationTypeQuiz:       "quiz",
	GenerationTypeFlashcards: "deck",
	GenerationTypeExam:       "exam",
}

// NewArtifactID returns a fresh globally-unique, type-prefixed artifact id,
// e.g. "quiz_1a2b3c4d". Ids proposed by the model are never used; every
// parsed artifact gets one of these.
func NewArtifactID(t GenerationType) string {
	prefix, ok := artifactIDPrefixes[t]
	if !ok {
		prefix = "artifact"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return prefix + "_" + suffix
}
