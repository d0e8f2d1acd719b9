package translator

import (
	"context"
	"time"

	"github.com/imam0096361/translation/internal"
)

type ServiceConfig struct {
	Credentials string        `mapstructure:"credentials" json:"credentials"`
	APIKey      string        `mapstructure:"api_key" json:"api_key"`
	Model       string        `mapstructure:"model" json:"model"`
	BaseURL     string        `mapstructure:"base_url" json:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout"`
	ProjectID   string        `mapstructure:"project_id" json:"project_id"`
}

type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`

	// SystemInstruction is the editorial prompt (tone, formatting rules,
	// glossary terms) built by the prompt package. Engines that have no
	// concept of a system role fold it into the user prompt.
	SystemInstruction string `json:"system_instruction,omitempty"`

	// Grounded asks the engine to back the translation with web sources
	// when the engine supports it (currently Gemini only).
	Grounded bool `json:"grounded,omitempty"`
}

type ServiceResult struct {
	ServiceName    string              `json:"service_name"`
	TranslatedText string              `json:"translated_text"`
	Confidence     float64             `json:"confidence"`
	Citations      []internal.Citation `json:"citations,omitempty"`
	Metadata       map[string]string   `json:"metadata"`
	Latency        time.Duration       `json:"latency"`
	Error          string              `json:"error,omitempty"`
}

type TranslationService interface {
	Name() string
	Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error)
	IsAvailable(ctx context.Context) error
	SupportedLanguages(ctx context.Context) ([]string, error)
}

// StreamingService is implemented by engines that can deliver the translation
// incrementally. onChunk is called once per text fragment, in order, from a
// single goroutine; the returned result contains the assembled full text and
// any citations gathered along the way.
type StreamingService interface {
	TranslationService
	TranslateStream(ctx context.Context, cfg ServiceConfig, req TranslateRequest, onChunk func(text string)) (*ServiceResult, error)
}
