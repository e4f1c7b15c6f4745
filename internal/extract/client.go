package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"

	"bazarbot/pkg/models"
)

// Extractor turns an unstructured message into a candidate record. The
// pipeline depends on this interface so tests can substitute the inference
// service.
type Extractor interface {
	Extract(ctx context.Context, text, imageRef string) (models.Candidate, error)
}

// ErrMalformedOutput means the inference service replied with something that
// is not a parseable candidate record.
var ErrMalformedOutput = errors.New("malformed extraction output")

// Client calls an OpenAI-compatible multimodal endpoint. It performs no
// retries: a failed or malformed reply is surfaced to the caller once.
type Client struct {
	api     openai.Client
	model   shared.ChatModel
	timeout time.Duration
}

type ClientConfig struct {
	APIKey  string
	BaseURL string // optional, for self-hosted gateways
	Model   string
	Timeout time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := shared.ChatModel(cfg.Model)
	if cfg.Model == "" {
		model = shared.ChatModelGPT4o
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		api:     openai.NewClient(opts...),
		model:   model,
		timeout: timeout,
	}
}

// Extract sends one system instruction plus one user turn (text, and the
// image reference as a second content part when present) and parses the
// reply. Low temperature and a bounded reply keep the extraction literal.
func (c *Client) Extract(ctx context.Context, text, imageRef string) (models.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var user openai.ChatCompletionMessageParamUnion
	if imageRef != "" {
		user = openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(userPrompt(text, true)),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: imageRef,
			}),
		})
	} else {
		user = openai.UserMessage(userPrompt(text, false))
	}

	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			user,
		},
		Model:       c.model,
		MaxTokens:   openai.Int(500),
		Temperature: openai.Float(0.3),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return models.Candidate{}, fmt.Errorf("inference call: %w", err)
	}
	if len(completion.Choices) == 0 {
		return models.Candidate{}, fmt.Errorf("%w: empty completion", ErrMalformedOutput)
	}

	return ParseCandidate(completion.Choices[0].Message.Content)
}
