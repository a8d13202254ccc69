package generation

import (
	"context"

	"github.com/studyengine/studyengine-api/internal/domain"
)

// Attachment is a binary document forwarded to the model provider alongside
// the prompt, with its declared media type.
type Attachment struct {
	Data      []byte
	MediaType string
}

// MediaTypePDF is the only attachment media type the pipeline produces.
const MediaTypePDF = "application/pdf"

// ModelClient is the outbound boundary to the remote text-generation
// service. Implementations send the prompt (and optional attachment) to the
// provider and return its raw textual reply. Transport, API and rate-limit
// failures must be mapped onto ErrRemoteService so that the pipeline can
// classify them without knowing the provider.
// Version: 1.0
type ModelClient interface {
	// GenerateText performs one model call. A nil attachment means the
	// prompt stands alone (transcript sources embed their text directly).
	GenerateText(
		ctx context.Context,
		tier domain.ModelTier,
		prompt string,
		attachment *Attachment,
	) (string, error)
}
