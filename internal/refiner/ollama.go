package refiner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/imam0096361/translation/internal/postprocess"
)

// OllamaRefiner polishes drafts with a local Ollama model, keeping copy
// on-premises.
type OllamaRefiner struct {
	model   string
	baseURL string
	client  *http.Client
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// NewOllamaRefiner creates a refiner backed by a local Ollama model.
func NewOllamaRefiner(model, baseURL string) *OllamaRefiner {
	return &OllamaRefiner{
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Refine sends the draft to the model with a subeditor prompt and returns
// the polished translation. An empty model response keeps the draft.
func (r *OllamaRefiner) Refine(ctx context.Context, sourceLang, targetLang, sourceText, draftText string) (string, error) {
	prompt := buildPolishPrompt(sourceLang, targetLang, sourceText, draftText)

	reqBody := ollamaRequest{
		Model:  r.model,
		Prompt: prompt,
		Stream: false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal refinement request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/api/generate", r.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create refinement request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("refinement request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refiner returned status %d", resp.StatusCode)
	}

	var ollamaResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", fmt.Errorf("failed to decode refinement response: %w", err)
	}

	refined := postprocess.Clean(ollamaResp.Response)
	if refined == "" {
		return draftText, nil
	}
	return refined, nil
}

func buildPolishPrompt(sourceLang, targetLang, sourceText, draftText string) string {
	srcName, tgtName := langName(sourceLang), langName(targetLang)
	return fmt.Sprintf(`You are a senior %s subeditor on a news desk.

You will receive the original article and a draft %s translation.
Rewrite the draft so it reads like copy written directly in %s.

ORIGINAL (%s):
%s

DRAFT (%s):
%s

Rules:
- Keep every fact, name, figure, date, and quotation exactly as in the original.
- Fix awkward literal phrasing and unnatural word order.
- Keep the paragraph structure unchanged.
- If the draft is already publishable, return it unchanged.

Output ONLY the polished %s text. No explanation.`,
		tgtName,
		tgtName, tgtName,
		srcName, sourceText,
		tgtName, draftText,
		tgtName,
	)
}

func langName(code string) string {
	switch code {
	case "bn":
		return "Bangla"
	case "en":
		return "English"
	default:
		return code
	}
}
