package translator

import (
	"context"
	"fmt"
	"time"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleService is a conventional machine-translation engine. It ignores the
// editorial system instruction; useful as a quick literal baseline in
// compare mode.
type GoogleService struct{}

func NewGoogleService() *GoogleService {
	return &GoogleService{}
}

func (s *GoogleService) Name() string {
	return "google"
}

// knownTags restricts the engine to the two languages the assistant works
// with; anything else is a caller bug.
var knownTags = map[string]language.Tag{
	"bn": language.Bengali,
	"en": language.English,
}

func (s *GoogleService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	target, ok := knownTags[req.TargetLang]
	if !ok {
		result.Error = fmt.Sprintf("unsupported target language %q", req.TargetLang)
		return result, fmt.Errorf("google: unsupported target language %q", req.TargetLang)
	}

	var clientOpts []option.ClientOption
	if cfg.Credentials != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.Credentials))
	}
	client, err := translate.NewClient(ctx, clientOpts...)
	if err != nil {
		result.Error = fmt.Sprintf("failed to create client: %v", err)
		return result, fmt.Errorf("google: failed to create client: %w", err)
	}
	defer client.Close()

	var opts *translate.Options
	if source, ok := knownTags[req.SourceLang]; ok {
		opts = &translate.Options{Source: source}
	}

	translations, err := client.Translate(ctx, []string{req.Text}, target, opts)
	if err != nil {
		result.Error = fmt.Sprintf("translation failed: %v", err)
		return result, fmt.Errorf("google: translation failed: %w", err)
	}
	if len(translations) == 0 {
		result.Error = "no translation returned"
		return result, fmt.Errorf("google: no translation returned")
	}

	result.TranslatedText = translations[0].Text
	result.Confidence = 1.0
	return result, nil
}

func (s *GoogleService) IsAvailable(ctx context.Context) error {
	return nil
}

func (s *GoogleService) SupportedLanguages(ctx context.Context) ([]string, error) {
	return []string{"bn", "en"}, nil
}
