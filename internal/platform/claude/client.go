// Package claude implements the generation.ModelClient boundary on top of
// the Anthropic Messages API. PDF sources travel as base64 document blocks
// ahead of the prompt text, the way the provider expects multimodal input.
package claude

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/studyengine/studyengine-api/internal/config"
	"github.com/studyengine/studyengine-api/internal/domain"
	"github.com/studyengine/studyengine-api/internal/generation"
)

// Client calls the Anthropic Messages API to turn prompts into raw text
// replies. It implements generation.ModelClient.
type Client struct {
	client anthropic.Client
	cfg    config.LLMConfig
	logger *slog.Logger
}

// NewClient creates a Client from the LLM configuration.
// Returns an error wrapping generation.ErrInvalidConfig if the
// configuration is unusable.
func NewClient(cfg config.LLMConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.FastModel == "" || cfg.CapableModel == "" {
		return nil, fmt.Errorf("%w: model ids cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.MaxTokens <= 0 {
		return nil, fmt.Errorf("%w: max tokens must be positive", generation.ErrInvalidConfig)
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))

	return &Client{
		client: client,
		cfg:    cfg,
		logger: logger.With("component", "claude_client"),
	}, nil
}

// modelFor maps a caller-visible tier to the configured provider model id.
func (c *Client) modelFor(tier domain.ModelTier) string {
	if tier == domain.ModelTierCapable {
		return c.cfg.CapableModel
	}
	return c.cfg.FastModel
}

// GenerateText performs one Messages API call and returns the concatenated
// text content of the reply. No retry and no client-side timeout are
// applied; a failure surfaces immediately as a RemoteService error.
func (c *Client) GenerateText(
	ctx context.Context,
	tier domain.ModelTier,
	prompt string,
	attachment *generation.Attachment,
) (string, error) {
	model := c.modelFor(tier)

	blocks := make([]anthropic.ContentBlockParamUnion, 0, 2)
	if attachment != nil {
		if attachment.MediaType != generation.MediaTypePDF {
			return "", fmt.Errorf(
				"%w: unsupported attachment media type %q",
				generation.ErrInvalidConfig, attachment.MediaType,
			)
		}
		blocks = append(blocks, anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
			Data: base64.StdEncoding.EncodeToString(attachment.Data),
		}))
	}
	blocks = append(blocks, anthropic.NewTextBlock(prompt))

	c.logger.InfoContext(ctx, "calling model provider",
		"model", model,
		"tier", tier,
		"prompt_length", len(prompt),
		"has_attachment", attachment != nil)

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(c.cfg.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	})
	if err != nil {
		return "", mapProviderError(err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("%w: reply contained no text content", generation.ErrRemoteService)
	}

	c.logger.InfoContext(ctx, "model provider call succeeded",
		"model", model,
		"reply_length", text.Len())

	return text.String(), nil
}

// mapProviderError converts SDK errors into the generation failure
// taxonomy, preserving the provider message.
func mapProviderError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %v", generation.ErrRateLimited, err)
		}
		return fmt.Errorf("%w: provider returned status %d: %v",
			generation.ErrRemoteService, apiErr.StatusCode, err)
	}
	return fmt.Errorf("%w: %v", generation.ErrRemoteService, err)
}

var _ generation.ModelClient = (*Client)(nil)
