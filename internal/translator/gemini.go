package translator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/imam0096361/translation/internal"
	"github.com/imam0096361/translation/internal/postprocess"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiService is the primary engine. It streams the translation as it is
// generated and, when requested, grounds it with Google Search and reports
// the consulted sources as citations.
type GeminiService struct {
	apiKey string
	model  string
}

func NewGeminiService(apiKey, model string) *GeminiService {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiService{apiKey: apiKey, model: model}
}

func (s *GeminiService) Name() string {
	return "gemini"
}

func (s *GeminiService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	return s.TranslateStream(ctx, cfg, req, nil)
}

// TranslateStream generates the translation chunk by chunk. onChunk may be
// nil when the caller only wants the assembled result.
func (s *GeminiService) TranslateStream(ctx context.Context, cfg ServiceConfig, req TranslateRequest, onChunk func(text string)) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = s.apiKey
	}
	if apiKey == "" {
		result.Error = "Gemini API key is not configured"
		return result, fmt.Errorf("gemini: API key is not configured")
	}

	model := cfg.Model
	if model == "" {
		model = s.model
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		result.Error = fmt.Sprintf("failed to create client: %v", err)
		return result, fmt.Errorf("gemini: failed to create client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.3)),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}
	if req.Grounded {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	prompt := buildUserPrompt(req)

	var sb strings.Builder
	seen := make(map[string]bool)

	for resp, err := range client.Models.GenerateContentStream(ctx, model, genai.Text(prompt), config) {
		if err != nil {
			result.Error = fmt.Sprintf("generation failed: %v", err)
			return result, fmt.Errorf("gemini: generation failed: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text == "" {
				continue
			}
			sb.WriteString(part.Text)
			if onChunk != nil {
				onChunk(part.Text)
			}
		}
		// Grounding metadata arrives on whichever chunks carry it;
		// deduplicate by URI across the stream.
		if gm := resp.Candidates[0].GroundingMetadata; gm != nil {
			for _, gc := range gm.GroundingChunks {
				if gc.Web == nil || gc.Web.URI == "" || seen[gc.Web.URI] {
					continue
				}
				seen[gc.Web.URI] = true
				result.Citations = append(result.Citations, internal.Citation{
					URI:   gc.Web.URI,
					Title: gc.Web.Title,
				})
			}
		}
	}

	text := postprocess.Clean(sb.String())
	if text == "" {
		result.Error = "empty translation returned"
		return result, fmt.Errorf("gemini: empty translation returned")
	}

	result.TranslatedText = text
	result.Confidence = 0.9
	result.Metadata = map[string]string{"model": model}

	return result, nil
}

func (s *GeminiService) IsAvailable(ctx context.Context) error {
	if s.apiKey == "" {
		return fmt.Errorf("gemini: API key is not configured")
	}
	return nil
}

func (s *GeminiService) SupportedLanguages(ctx context.Context) ([]string, error) {
	return []string{"bn", "en"}, nil
}

// buildUserPrompt wraps the text to translate. Editorial instructions live
// in the system instruction; the user prompt stays minimal so engines do
// not echo it back.
func buildUserPrompt(req TranslateRequest) string {
	return fmt.Sprintf("Translate the following text from %s to %s. Respond with the translation only.\n\n%s",
		languageName(req.SourceLang), languageName(req.TargetLang), req.Text)
}

func languageName(code string) string {
	switch code {
	case "bn":
		return "Bangla"
	case "en":
		return "English"
	default:
		return code
	}
}
