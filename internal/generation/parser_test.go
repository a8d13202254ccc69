package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyengine/studyengine-api/internal/domain"
)

const quizReplyJSON = `{
  "title": "Concurrency Basics",
  "questions": [
    {
      "id": 42,
      "type": "mcq",
      "text": "Which primitive synchronizes goroutines?",
      "options": ["A) map", "B) channel", "C) slice", "D) struct"],
      "correct_answer": "B"
    },
    {
      "type": "short_answer",
      "text": "What does the select statement do?",
      "options": null,
      "correct_answer": "Waits on multiple channel operations"
    }
  ]
}`

func quizRequest() *domain.GenerationRequest {
	return &domain.GenerationRequest{
		GenerationType: domain.GenerationTypeQuiz,
		Model:          domain.ModelTierFast,
		MCQCount:       1,
	}
}

func TestParseQuiz(t *testing.T) {
	t.Parallel()

	quiz, err := ParseQuiz(quizReplyJSON, quizRequest())
	require.NoError(t, err)

	assert.True(t, len(quiz.ID) > 0)
	assert.Contains(t, quiz.ID, "quiz_")
	assert.Equal(t, "Concurrency Basics", quiz.Title)
	require.Len(t, quiz.Questions, 2)

	// Ids are reassigned densely from 1; the model's own ids are discarded.
	assert.Equal(t, 1, quiz.Questions[0].ID)
	assert.Equal(t, 2, quiz.Questions[1].ID)
	assert.Equal(t, domain.QuizQuestionMCQ, quiz.Questions[0].Type)
	assert.Len(t, quiz.Questions[0].Options, 4)
	assert.Equal(t, domain.QuizQuestionShortAnswer, quiz.Questions[1].Type)
	assert.Nil(t, quiz.Questions[1].Options)

	assert.NoError(t, quiz.Validate())
}

func TestParseQuizFencedReply(t *testing.T) {
	t.Parallel()

	// A fenced reply parses identically to a bare one, whether or not the
	// fence names a language and whether or not it is closed.
	variants := []string{
		"```json\n" + quizReplyJSON + "\n```",
		"```\n" + quizReplyJSON + "\n```",
		"```json\n" + quizReplyJSON,
		"  \n" + quizReplyJSON + "\n  ",
	}

	bare, err := ParseQuiz(quizReplyJSON, quizRequest())
	require.NoError(t, err)

	for _, raw := range variants {
		fenced, err := ParseQuiz(raw, quizRequest())
		require.NoError(t, err)
		// Everything except the freshly minted id must match.
		fenced.ID = bare.ID
		assert.Equal(t, bare, fenced)
	}
}

func TestParseQuizTitleFallback(t *testing.T) {
	t.Parallel()

	// Request title wins over the model's.
	req := quizRequest()
	req.Title = "My Study Set"
	quiz, err := ParseQuiz(quizReplyJSON, req)
	require.NoError(t, err)
	assert.Equal(t, "My Study Set", quiz.Title)

	// With neither, the per-type default applies.
	untitled := `{"questions": [{"type": "short_answer", "text": "Q?", "correct_answer": "A"}]}`
	quiz, err = ParseQuiz(untitled, quizRequest())
	require.NoError(t, err)
	assert.Equal(t, DefaultQuizTitle, quiz.Title)
}

func TestParseQuizMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		wantStage string
		wantField string
	}{
		{
			name:      "not json at all",
			raw:       "Sure! Here is your quiz:",
			wantStage: MalformedStageJSON,
		},
		{
			name:      "truncated json",
			raw:       `{"title": "Oops", "questions": [`,
			wantStage: MalformedStageJSON,
		},
		{
			name:      "empty questions",
			raw:       `{"title": "Empty", "questions": []}`,
			wantStage: MalformedStageSchema,
			wantField: "questions",
		},
		{
			name:      "missing question type",
			raw:       `{"questions": [{"text": "Q?", "correct_answer": "A"}]}`,
			wantStage: MalformedStageSchema,
			wantField: "type",
		},
		{
			name:      "unknown question type",
			raw:       `{"questions": [{"type": "essay", "text": "Q?", "correct_answer": "A"}]}`,
			wantStage: MalformedStageSchema,
			wantField: "type",
		},
		{
			name:      "missing text",
			raw:       `{"questions": [{"type": "short_answer", "correct_answer": "A"}]}`,
			wantStage: MalformedStageSchema,
			wantField: "text",
		},
		{
			name:      "missing correct answer",
			raw:       `{"questions": [{"type": "short_answer", "text": "Q?"}]}`,
			wantStage: MalformedStageSchema,
			wantField: "correct_answer",
		},
		{
			name: "mcq with wrong option count",
			raw: `{"questions": [{"type": "mcq", "text": "Q?",
				"options": ["A", "B"], "correct_answer": "A"}]}`,
			wantStage: MalformedStageSchema,
			wantField: "options",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseQuiz(tc.raw, quizRequest())
			require.Error(t, err)

			var malformed *MalformedResponseError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tc.wantStage, malformed.Stage)
			assert.Equal(t, tc.wantField, malformed.Field)
		})
	}
}

func TestParseQuizAllOrNothing(t *testing.T) {
	t.Parallel()

	// One bad question rejects the whole reply even when others are fine.
	raw := `{"questions": [
		{"type": "short_answer", "text": "Fine", "correct_answer": "Yes"},
		{"type": "short_answer", "text": "", "correct_answer": "No"}
	]}`

	_, err := ParseQuiz(raw, quizRequest())
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "text", malformed.Field)
}

func TestParseFlashcards(t *testing.T) {
	t.Parallel()

	raw := `{
  "title": "Go Vocabulary",
  "cards": [
    {"front": "goroutine", "back": "Lightweight runtime-managed thread"},
    {"front": "channel", "back": "Typed conduit between goroutines"}
  ]
}`

	req := &domain.GenerationRequest{
		GenerationType: domain.GenerationTypeFlashcards,
		Model:          domain.ModelTierFast,
		FlashcardCount: 2,
	}

	deck, err := ParseFlashcards(raw, req)
	require.NoError(t, err)

	assert.Contains(t, deck.ID, "deck_")
	assert.Equal(t, "Go Vocabulary", deck.Title)
	require.Len(t, deck.Cards, 2)
	assert.Equal(t, "goroutine", deck.Cards[0].Front)
	assert.NoError(t, deck.Validate())
}

func TestParseFlashcardsMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		wantField string
	}{
		{"empty cards", `{"title": "X", "cards": []}`, "cards"},
		{"missing front", `{"cards": [{"back": "B"}]}`, "front"},
		{"empty back", `{"cards": [{"front": "F", "back": ""}]}`, "back"},
	}

	req := &domain.GenerationRequest{GenerationType: domain.GenerationTypeFlashcards}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseFlashcards(tc.raw, req)
			var malformed *MalformedResponseError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, MalformedStageSchema, malformed.Stage)
			assert.Equal(t, tc.wantField, malformed.Field)
		})
	}
}

func TestParseExam(t *testing.T) {
	t.Parallel()

	raw := `{
  "title": "Practice Final",
  "questions": [
    {
      "text": "Which call closes a channel?",
      "options": ["A) end", "B) close", "C) done", "D) stop"],
      "correct_option": 1
    },
    {
      "text": "Which context cancels on deadline?",
      "options": ["A) TODO", "B) Background", "C) WithTimeout", "D) WithValue"]
    }
  ]
}`

	req := &domain.GenerationRequest{
		GenerationType:      domain.GenerationTypeExam,
		Model:               domain.ModelTierCapable,
		ExamQuestionCount:   2,
		ExamDurationMinutes: 90,
	}

	exam, err := ParseExam(raw, req)
	require.NoError(t, err)

	assert.Contains(t, exam.ID, "exam_")
	assert.Equal(t, "Practice Final", exam.Title)
	assert.Equal(t, 90, exam.DurationMinutes)
	assert.True(t, exam.ManualGrading)
	assert.False(t, exam.ShowResultsImmediate)

	require.Len(t, exam.Questions, 2)
	assert.Equal(t, 1, exam.Questions[0].CorrectOption)
	assert.Equal(t, domain.ManualGradingOption, exam.Questions[1].CorrectOption,
		"a withheld answer maps to the manual grading sentinel")

	assert.NoError(t, exam.Validate())
}

func TestParseExamDefaultDuration(t *testing.T) {
	t.Parallel()

	raw := `{"questions": [{"text": "Q?", "options": ["A", "B", "C", "D"], "correct_option": 0}]}`
	req := &domain.GenerationRequest{
		GenerationType:    domain.GenerationTypeExam,
		ExamQuestionCount: 1,
	}

	exam, err := ParseExam(raw, req)
	require.NoError(t, err)
	assert.Equal(t, 60, exam.DurationMinutes)
	assert.Equal(t, DefaultExamTitle, exam.Title)
}

func TestParseExamMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		wantField string
	}{
		{"empty questions", `{"questions": []}`, "questions"},
		{"missing text", `{"questions": [{"options": ["A", "B", "C", "D"]}]}`, "text"},
		{"wrong option count", `{"questions": [{"text": "Q?", "options": ["A"]}]}`, "options"},
		{
			"correct option out of range",
			`{"questions": [{"text": "Q?", "options": ["A", "B", "C", "D"], "correct_option": 7}]}`,
			"correct_option",
		},
	}

	req := &domain.GenerationRequest{GenerationType: domain.GenerationTypeExam}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseExam(tc.raw, req)
			var malformed *MalformedResponseError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, MalformedStageSchema, malformed.Stage)
			assert.Equal(t, tc.wantField, malformed.Field)
		})
	}
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"anonymous fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"unterminated fence", "```json\n{\"a\": 1}", `{"a": 1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\": 1}\n```\n  ", `{"a": 1}`},
	}

	for _, tc := range tests {
		assert.Equalf(t, tc.want, stripFences(tc.in), "case %q", tc.name)
	}
}
