package generation

import (
	"fmt"
	"strings"

	"github.com/studyengine/studyengine-api/internal/domain"
)

// BuildPrompt maps a validated generation request to the model-ready
// instruction string for its (generation type, source kind) pair. It is a
// pure function: identical requests yield byte-identical prompts, and it
// never fails for a validated request except for the one pairing that has
// no builder (exam from transcript), which returns ErrUnsupportedCombination.
//
// The output schema each prompt demands is pinned in the prompt text itself;
// the parsers in this package expect exactly those field names. Changing a
// schema means changing prompt and parser in lockstep.
func BuildPrompt(req *domain.GenerationRequest) (string, error) {
	source := req.SourceKind()
	switch req.GenerationType {
	case domain.GenerationTypeQuiz:
		if source == domain.SourceKindDocument {
			return buildQuizDocumentPrompt(req), nil
		}
		return buildQuizTranscriptPrompt(req), nil
	case domain.GenerationTypeFlashcards:
		if source == domain.SourceKindDocument {
			return buildFlashcardDocumentPrompt(req), nil
		}
		return buildFlashcardTranscriptPrompt(req), nil
	case domain.GenerationTypeExam:
		if source == domain.SourceKindDocument {
			return buildExamDocumentPrompt(req), nil
		}
		return "", fmt.Errorf("%w: exam generation requires a PDF document", ErrUnsupportedCombination)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCombination, req.GenerationType)
	}
}

// customInstructionsBlock renders the caller's free-text instructions
// verbatim, or nothing when none were supplied.
func customInstructionsBlock(req *domain.GenerationRequest) string {
	if req.CustomInstructions == "" {
		return ""
	}
	return "ADDITIONAL INSTRUCTIONS: " + req.CustomInstructions + "\n\n"
}

// transcriptBlock embeds the transcript source into the prompt body.
func transcriptBlock(req *domain.GenerationRequest) string {
	return "TRANSCRIPT:\n" + strings.TrimSpace(req.TranscriptText) + "\n\n"
}

const quizOutputSchema = `OUTPUT FORMAT:
You must respond with ONLY valid JSON matching this exact structure (no markdown, no explanation):

{
  "title": "Quiz title based on the source content",
  "questions": [
    {
      "id": 1,
      "type": "mcq",
      "text": "Question text here?",
      "options": ["A) First option", "B) Second option", "C) Third option", "D) Fourth option"],
      "correct_answer": "A"
    },
    {
      "id": 2,
      "type": "short_answer",
      "text": "Short answer question here?",
      "options": null,
      "correct_answer": "Expected answer text"
    }
  ]
}`

func quizRequirements(req *domain.GenerationRequest) string {
	total := req.MCQCount + req.ShortAnswerCount
	return fmt.Sprintf(`REQUIREMENTS:
- Generate exactly %d multiple choice questions (MCQ)
- Generate exactly %d short answer questions
- Total: %d questions
- Questions should test understanding of key concepts from the source
- MCQ questions must have exactly 4 options (A, B, C, D)
- Vary difficulty from easy to challenging
- Ensure questions are clear and unambiguous`, req.MCQCount, req.ShortAnswerCount, total)
}

func buildQuizDocumentPrompt(req *domain.GenerationRequest) string {
	return fmt.Sprintf(`Analyze the provided PDF document and generate a quiz based on its content.

%s

%s%s

Generate the quiz now based on the PDF content:`,
		quizRequirements(req), customInstructionsBlock(req), quizOutputSchema)
}

func buildQuizTranscriptPrompt(req *domain.GenerationRequest) string {
	return fmt.Sprintf(`Analyze the following lecture transcript and generate a quiz based on its content.

%s%s

%s%s

Generate the quiz now based on the transcript:`,
		transcriptBlock(req), quizRequirements(req), customInstructionsBlock(req), quizOutputSchema)
}

const flashcardOutputSchema = `OUTPUT FORMAT:
You must respond with ONLY valid JSON matching this exact structure (no markdown, no explanation):

{
  "title": "Deck title based on the source content",
  "cards": [
    {
      "front": "What is [concept]?",
      "back": "Clear definition or explanation here"
    },
    {
      "front": "Term or question",
      "back": "Answer or definition"
    }
  ]
}`

func flashcardRequirements(req *domain.GenerationRequest) string {
	return fmt.Sprintf(`REQUIREMENTS:
- Generate exactly %d flashcards
- Focus on key concepts, definitions, and important facts
- Front of card should be a question or term
- Back of card should be a clear, concise answer or definition
- Cover the most important topics from the source
- Vary the types: definitions, concepts, processes, relationships`, req.FlashcardCount)
}

func buildFlashcardDocumentPrompt(req *domain.GenerationRequest) string {
	return fmt.Sprintf(`Analyze the provided PDF document and generate flashcards for studying its content.

%s

%s%s

Generate the flashcards now based on the PDF content:`,
		flashcardRequirements(req), customInstructionsBlock(req), flashcardOutputSchema)
}

func buildFlashcardTranscriptPrompt(req *domain.GenerationRequest) string {
	return fmt.Sprintf(`Analyze the following lecture transcript and generate flashcards for studying its content.

%s%s

%s%s

Generate the flashcards now based on the transcript:`,
		transcriptBlock(req), flashcardRequirements(req), customInstructionsBlock(req), flashcardOutputSchema)
}

const examOutputSchema = `OUTPUT FORMAT:
You must respond with ONLY valid JSON matching this exact structure (no markdown, no explanation):

{
  "title": "Exam title based on the document content",
  "questions": [
    {
      "id": 1,
      "text": "Question text here?",
      "options": ["A) First option", "B) Second option", "C) Third option", "D) Fourth option"],
      "correct_option": 0
    }
  ]
}

The "correct_option" field is the 0-based index of the correct option. You may omit it when the answer should be withheld for manual grading.`

func buildExamDocumentPrompt(req *domain.GenerationRequest) string {
	return fmt.Sprintf(`Analyze the provided PDF document and generate a practice exam based on its content.

REQUIREMENTS:
- Generate exactly %d multiple choice questions
- Every question must have exactly 4 options (A, B, C, D)
- The exam will be graded manually by an instructor
- Questions should test understanding of key concepts from the document
- Vary difficulty from easy to challenging
- Ensure questions are clear and unambiguous

%s%s

Generate the exam now based on the PDF content:`,
		req.ExamQuestionCount, customInstructionsBlock(req), examOutputSchema)
}
