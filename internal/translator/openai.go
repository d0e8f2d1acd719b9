package translator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/imam0096361/translation/internal/postprocess"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIService talks to the OpenAI chat-completions API, or to any
// OpenAI-compatible gateway (OpenRouter, vLLM, …) via a custom base URL.
type OpenAIService struct {
	apiKey  string
	baseURL string
	model   string
}

func NewOpenAIService(apiKey, baseURL, model string) *OpenAIService {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIService{apiKey: apiKey, baseURL: baseURL, model: model}
}

func (s *OpenAIService) Name() string {
	return "openai"
}

func (s *OpenAIService) newClient(cfg ServiceConfig) *openai.Client {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = s.apiKey
	}
	config := openai.DefaultConfig(apiKey)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = s.baseURL
	}
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}

func (s *OpenAIService) chatRequest(cfg ServiceConfig, req TranslateRequest) openai.ChatCompletionRequest {
	model := cfg.Model
	if model == "" {
		model = s.model
	}

	messages := []openai.ChatCompletionMessage{}
	if req.SystemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemInstruction,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: buildUserPrompt(req),
	})

	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.3,
	}
}

func (s *OpenAIService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	client := s.newClient(cfg)
	chatReq := s.chatRequest(cfg, req)

	resp, err := client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result, fmt.Errorf("openai: request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		result.Error = "no choices returned"
		return result, fmt.Errorf("openai: no choices returned")
	}

	result.TranslatedText = postprocess.Clean(resp.Choices[0].Message.Content)
	result.Confidence = 0.8
	result.Metadata = map[string]string{"model": chatReq.Model}

	return result, nil
}

// TranslateStream streams completion deltas through onChunk.
func (s *OpenAIService) TranslateStream(ctx context.Context, cfg ServiceConfig, req TranslateRequest, onChunk func(text string)) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	client := s.newClient(cfg)
	chatReq := s.chatRequest(cfg, req)
	chatReq.Stream = true

	stream, err := client.CreateChatCompletionStream(ctx, chatReq)
	if err != nil {
		result.Error = fmt.Sprintf("stream failed: %v", err)
		return result, fmt.Errorf("openai: stream failed: %w", err)
	}
	defer stream.Close()

	var full string
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Error = fmt.Sprintf("stream recv failed: %v", err)
			return result, fmt.Errorf("openai: stream recv failed: %w", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		full += delta
		if onChunk != nil {
			onChunk(delta)
		}
	}

	result.TranslatedText = postprocess.Clean(full)
	result.Confidence = 0.8
	result.Metadata = map[string]string{"model": chatReq.Model}

	return result, nil
}

func (s *OpenAIService) IsAvailable(ctx context.Context) error {
	if s.apiKey == "" {
		return fmt.Errorf("openai: API key is not configured")
	}
	return nil
}

func (s *OpenAIService) SupportedLanguages(ctx context.Context) ([]string, error) {
	return []string{"bn", "en"}, nil
}
