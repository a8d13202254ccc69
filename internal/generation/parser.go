package generation

import (
	"encoding/json"
	"strings"

	"github.com/studyengine/studyengine-api/internal/domain"
)

// Default artifact titles used when neither the request nor the model
// supplied one.
const (
	DefaultQuizTitle      = "Generated Quiz"
	DefaultFlashcardTitle = "Generated Flashcards"
	DefaultExamTitle      = "Generated Exam"
)

// defaultExamDuration is used when the request left the exam duration unset.
const defaultExamDuration = 60

// stripFences removes a markdown code fence the model may have wrapped
// around its JSON even though the prompt forbids it. The first fence line is
// dropped, and the closing fence line is dropped when present.
func stripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	if !strings.HasPrefix(clean, "```") {
		return clean
	}
	lines := strings.Split(clean, "\n")
	if last := len(lines) - 1; strings.TrimSpace(lines[last]) == "```" {
		lines = lines[1:last]
	} else {
		lines = lines[1:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// decodeReply parses the (defenced) reply as a single JSON document into v.
// Any decode failure is a MalformedResponseError at the json stage.
func decodeReply(raw string, v any) error {
	if err := json.Unmarshal([]byte(stripFences(raw)), v); err != nil {
		return newJSONError(err)
	}
	return nil
}

// resolveTitle applies the title fallback policy: the caller's title when
// non-empty, else the model's own title, else the per-type default.
func resolveTitle(requestTitle, modelTitle, fallback string) string {
	if requestTitle != "" {
		return requestTitle
	}
	if modelTitle != "" {
		return modelTitle
	}
	return fallback
}

// Reply schemas. Required fields are pointers so that an absent key can be
// told apart from a zero value; ids the model emits are ignored entirely.

type quizReply struct {
	Title     string              `json:"title"`
	Questions []quizQuestionReply `json:"questions"`
}

type quizQuestionReply struct {
	Type          *string  `json:"type"`
	Text          *string  `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer *string  `json:"correct_answer"`
}

type flashcardReply struct {
	Title string      `json:"title"`
	Cards []cardReply `json:"cards"`
}

type cardReply struct {
	Front *string `json:"front"`
	Back  *string `json:"back"`
}

type examReply struct {
	Title     string              `json:"title"`
	Questions []examQuestionReply `json:"questions"`
}

type examQuestionReply struct {
	Text          *string  `json:"text"`
	Options       []string `json:"options"`
	CorrectOption *int     `json:"correct_option"`
}

// ParseQuiz converts a raw model reply into a Quiz. Parsing is
// all-or-nothing: a single bad question rejects the whole reply. Question
// ids are assigned densely from 1 in declaration order, and the quiz gets a
// fresh type-prefixed id regardless of anything the model proposed.
func ParseQuiz(raw string, req *domain.GenerationRequest) (*domain.Quiz, error) {
	var reply quizReply
	if err := decodeReply(raw, &reply); err != nil {
		return nil, err
	}

	if len(reply.Questions) == 0 {
		return nil, newSchemaError("questions", "missing or empty questions list")
	}

	questions := make([]domain.QuizQuestion, 0, len(reply.Questions))
	for i, q := range reply.Questions {
		if q.Type == nil {
			return nil, newSchemaError("type", "question %d is missing its type", i+1)
		}
		qType := domain.QuizQuestionType(*q.Type)
		if qType != domain.QuizQuestionMCQ && qType != domain.QuizQuestionShortAnswer {
			return nil, newSchemaError("type", "question %d has unknown type %q", i+1, *q.Type)
		}
		if q.Text == nil || *q.Text == "" {
			return nil, newSchemaError("text", "question %d is missing its text", i+1)
		}
		if q.CorrectAnswer == nil || *q.CorrectAnswer == "" {
			return nil, newSchemaError("correct_answer", "question %d is missing its answer", i+1)
		}

		var options []string
		if qType == domain.QuizQuestionMCQ {
			if len(q.Options) != domain.MCQOptionCount {
				return nil, newSchemaError(
					"options",
					"mcq question %d has %d options, want %d",
					i+1, len(q.Options), domain.MCQOptionCount,
				)
			}
			options = q.Options
		}

		questions = append(questions, domain.QuizQuestion{
			ID:            i + 1,
			Type:          qType,
			Text:          *q.Text,
			Options:       options,
			CorrectAnswer: *q.CorrectAnswer,
		})
	}

	return &domain.Quiz{
		ID:        domain.NewArtifactID(domain.GenerationTypeQuiz),
		Title:     resolveTitle(req.Title, reply.Title, DefaultQuizTitle),
		Questions: questions,
	}, nil
}

// ParseFlashcards converts a raw model reply into a Deck.
func ParseFlashcards(raw string, req *domain.GenerationRequest) (*domain.Deck, error) {
	var reply flashcardReply
	if err := decodeReply(raw, &reply); err != nil {
		return nil, err
	}

	if len(reply.Cards) == 0 {
		return nil, newSchemaError("cards", "missing or empty cards list")
	}

	cards := make([]domain.Flashcard, 0, len(reply.Cards))
	for i, c := range reply.Cards {
		if c.Front == nil || *c.Front == "" {
			return nil, newSchemaError("front", "card %d is missing its front side", i+1)
		}
		if c.Back == nil || *c.Back == "" {
			return nil, newSchemaError("back", "card %d is missing its back side", i+1)
		}
		cards = append(cards, domain.Flashcard{Front: *c.Front, Back: *c.Back})
	}

	return &domain.Deck{
		ID:    domain.NewArtifactID(domain.GenerationTypeFlashcards),
		Title: resolveTitle(req.Title, reply.Title, DefaultFlashcardTitle),
		Cards: cards,
	}, nil
}

// ParseExam converts a raw model reply into a manually-graded Exam. A
// question whose correct_option is absent gets the ManualGradingOption
// sentinel; an exam is never rejected for withholding answers.
func ParseExam(raw string, req *domain.GenerationRequest) (*domain.Exam, error) {
	var reply examReply
	if err := decodeReply(raw, &reply); err != nil {
		return nil, err
	}

	if len(reply.Questions) == 0 {
		return nil, newSchemaError("questions", "missing or empty questions list")
	}

	questions := make([]domain.ExamQuestion, 0, len(reply.Questions))
	for i, q := range reply.Questions {
		if q.Text == nil || *q.Text == "" {
			return nil, newSchemaError("text", "question %d is missing its text", i+1)
		}
		if len(q.Options) != domain.MCQOptionCount {
			return nil, newSchemaError(
				"options",
				"question %d has %d options, want %d",
				i+1, len(q.Options), domain.MCQOptionCount,
			)
		}

		correct := domain.ManualGradingOption
		if q.CorrectOption != nil {
			c := *q.CorrectOption
			if c != domain.ManualGradingOption && (c < 0 || c >= domain.MCQOptionCount) {
				return nil, newSchemaError(
					"correct_option",
					"question %d has correct_option %d out of range",
					i+1, c,
				)
			}
			correct = c
		}

		questions = append(questions, domain.ExamQuestion{
			ID:            i + 1,
			Text:          *q.Text,
			Options:       q.Options,
			CorrectOption: correct,
		})
	}

	duration := req.ExamDurationMinutes
	if duration == 0 {
		duration = defaultExamDuration
	}

	return &domain.Exam{
		ID:                   domain.NewArtifactID(domain.GenerationTypeExam),
		Title:                resolveTitle(req.Title, reply.Title, DefaultExamTitle),
		DurationMinutes:      duration,
		ShowResultsImmediate: false,
		ManualGrading:        true,
		Questions:            questions,
	}, nil
}
