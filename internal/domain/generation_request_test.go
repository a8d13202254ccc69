package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// validTranscript is comfortably above the minimum transcript length.
var validTranscript = strings.Repeat("the lecture covered goroutines ", 5)

func validQuizRequest() *GenerationRequest {
	return &GenerationRequest{
		GenerationType: GenerationTypeQuiz,
		Model:          ModelTierFast,
		MCQCount:       5,
		TranscriptText: validTranscript,
	}
}

func TestGenerationRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(r *GenerationRequest)
		wantErr error
	}{
		{
			name:   "valid quiz from transcript",
			mutate: func(r *GenerationRequest) {},
		},
		{
			name: "valid flashcards from document",
			mutate: func(r *GenerationRequest) {
				r.GenerationType = GenerationTypeFlashcards
				r.FlashcardCount = 10
				r.TranscriptText = ""
				r.PDFData = []byte("%PDF-1.4 fake")
			},
		},
		{
			name: "valid exam from document",
			mutate: func(r *GenerationRequest) {
				r.GenerationType = GenerationTypeExam
				r.ExamQuestionCount = 20
				r.ExamDurationMinutes = 90
				r.TranscriptText = ""
				r.PDFData = []byte("%PDF-1.4 fake")
			},
		},
		{
			name: "unknown generation type",
			mutate: func(r *GenerationRequest) {
				r.GenerationType = "podcast"
			},
			wantErr: ErrUnknownGenerationType,
		},
		{
			name: "unknown model tier",
			mutate: func(r *GenerationRequest) {
				r.Model = "turbo"
			},
			wantErr: ErrUnknownModelTier,
		},
		{
			name: "negative count",
			mutate: func(r *GenerationRequest) {
				r.ShortAnswerCount = -1
			},
			wantErr: ErrNegativeCount,
		},
		{
			name: "quiz with zero questions",
			mutate: func(r *GenerationRequest) {
				r.MCQCount = 0
				r.ShortAnswerCount = 0
			},
			wantErr: ErrNoItemsRequested,
		},
		{
			name: "quiz with only short answer questions is fine",
			mutate: func(r *GenerationRequest) {
				r.MCQCount = 0
				r.ShortAnswerCount = 3
			},
		},
		{
			name: "flashcards with zero cards",
			mutate: func(r *GenerationRequest) {
				r.GenerationType = GenerationTypeFlashcards
				r.FlashcardCount = 0
			},
			wantErr: ErrNoItemsRequested,
		},
		{
			name: "exam with zero questions",
			mutate: func(r *GenerationRequest) {
				r.GenerationType = GenerationTypeExam
				r.ExamQuestionCount = 0
				r.TranscriptText = ""
				r.PDFData = []byte("%PDF")
			},
			wantErr: ErrNoItemsRequested,
		},
		{
			name: "both sources supplied",
			mutate: func(r *GenerationRequest) {
				r.PDFData = []byte("%PDF")
			},
			wantErr: ErrAmbiguousSource,
		},
		{
			name: "no source supplied",
			mutate: func(r *GenerationRequest) {
				r.TranscriptText = ""
			},
			wantErr: ErrAmbiguousSource,
		},
		{
			name: "whitespace-only transcript counts as no source",
			mutate: func(r *GenerationRequest) {
				r.TranscriptText = "   \n\t  "
			},
			wantErr: ErrAmbiguousSource,
		},
		{
			name: "transcript too short",
			mutate: func(r *GenerationRequest) {
				r.TranscriptText = "too short to be useful"
			},
			wantErr: ErrTranscriptTooShort,
		},
		{
			name: "transcript length measured in runes after trimming",
			mutate: func(r *GenerationRequest) {
				// 49 runes padded with whitespace: still too short.
				r.TranscriptText = "  " + strings.Repeat("ü", MinTranscriptChars-1) + "  "
			},
			wantErr: ErrTranscriptTooShort,
		},
		{
			name: "transcript exactly at the minimum",
			mutate: func(r *GenerationRequest) {
				r.TranscriptText = strings.Repeat("ü", MinTranscriptChars)
			},
		},
		{
			name: "document exactly at the byte limit",
			mutate: func(r *GenerationRequest) {
				r.TranscriptText = ""
				r.PDFData = make([]byte, MaxDocumentBytes)
			},
		},
		{
			name: "document one byte over the limit",
			mutate: func(r *GenerationRequest) {
				r.TranscriptText = ""
				r.PDFData = make([]byte, MaxDocumentBytes+1)
			},
			wantErr: ErrDocumentTooLarge,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := validQuizRequest()
			tc.mutate(req)

			err := req.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, ErrInvalidRequest,
				"every validation failure must wrap ErrInvalidRequest")
		})
	}
}

func TestGenerationRequestSourceKind(t *testing.T) {
	t.Parallel()

	docReq := &GenerationRequest{PDFData: []byte("%PDF")}
	assert.Equal(t, SourceKindDocument, docReq.SourceKind())

	transcriptReq := &GenerationRequest{TranscriptText: validTranscript}
	assert.Equal(t, SourceKindTranscript, transcriptReq.SourceKind())
}
