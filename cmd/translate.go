/*
Copyright © 2026 The anubad authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/imam0096361/translation/internal"
	"github.com/imam0096361/translation/internal/article"
	"github.com/imam0096361/translation/internal/chunker"
	"github.com/imam0096361/translation/internal/detector"
	"github.com/imam0096361/translation/internal/orchestrator"
	"github.com/imam0096361/translation/internal/placeholder"
	"github.com/imam0096361/translation/internal/prompt"
	"github.com/imam0096361/translation/internal/refiner"
	"github.com/imam0096361/translation/internal/store"
	"github.com/imam0096361/translation/internal/translator"
	"github.com/imam0096361/translation/internal/validator"
)

var (
	inputFile  string
	inputURL   string
	outputFile string
	sourceLang string
	targetLang string

	engineName     string
	compareEngines []string
	useRefine      bool
	refinerModel   string
	refinerURL     string

	tone           string
	preserveFormat bool
	grounded       bool

	noCache        bool
	fuzzyThreshold float64
	maxChunkRunes  int
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate between Bangla and English",
	Long: `Translate news copy between Bangla and English. The direction is
detected from the input; pass --source and --target to override it.

Input can be an argument, a file (--input), a URL whose article body is
extracted (--url), or stdin.

Engines:
  gemini   Gemini API, streams output, supports --grounded citations
  openai   OpenAI or any compatible gateway (set openai.base_url)
  ollama   Self-hosted Ollama
  google   Google Cloud Translation (literal baseline)

Compare mode runs several engines in parallel and shows all candidates:
  anubad translate --input story.txt --compare gemini,openai,google`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranslate,
}

func runTranslate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	text, err := readInput(ctx, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text to translate")
	}

	// Resolve the direction before anything else; undetectable input is an
	// error rather than a guess.
	if sourceLang == "" || targetLang == "" {
		lang := detector.Detect(text)
		src, dst, ok := detector.Direction(lang)
		if !ok {
			return fmt.Errorf("could not detect the input language; pass --source and --target explicitly")
		}
		sourceLang, targetLang = src, dst
		log.Debug().Str("source", src).Str("target", dst).Msg("direction detected")
	}

	db, err := store.New(dbPath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if !noCache {
		if cached, found := lookupMemory(ctx, db, text); found {
			log.Info().Msg("serving translation from memory")
			return writeOutput(cached)
		}
	}

	glossary, err := db.GetGlossaryTerms(ctx, sourceLang, targetLang)
	if err != nil {
		log.Warn().Err(err).Msg("glossary lookup failed")
	}

	instruction := prompt.Build(prompt.Options{
		SourceLang:     sourceLang,
		TargetLang:     targetLang,
		Tone:           tone,
		PreserveFormat: preserveFormat,
		Glossary:       glossary,
	})

	// Markup is swapped for [PHn] markers before any engine sees the text.
	workText := text
	var markers []string
	if preserveFormat {
		workText, markers = placeholder.Protect(text)
	}

	var finalText, serviceName string
	var citations []internal.Citation
	var printed bool
	if len(compareEngines) > 0 {
		finalText, serviceName, citations, err = runCompare(ctx, workText, instruction)
	} else {
		finalText, serviceName, citations, printed, err = runSingle(ctx, workText, instruction)
	}
	if err != nil {
		return err
	}

	if useRefine {
		log.Info().Msg("running refinement pass")
		ref := refiner.NewOllamaRefiner(refinerModel, refinerURL)
		refined, rerr := ref.Refine(ctx, sourceLang, targetLang, workText, finalText)
		if rerr != nil {
			log.Warn().Err(rerr).Msg("refiner failed, keeping draft")
		} else {
			finalText = refined
		}
	}

	if preserveFormat {
		if missing := placeholder.Validate(finalText, markers); len(missing) > 0 {
			log.Warn().Ints("missing", missing).Msg("engine dropped formatting markers")
		}
		finalText = placeholder.Restore(finalText, markers)
	}

	if valid, verr := validator.IsValid(finalText, targetLang); verr != nil {
		return fmt.Errorf("translation rejected: %w", verr)
	} else if !valid {
		log.Warn().Str("target", targetLang).Msg("output does not look like the target language")
	}

	record(ctx, db, text, finalText, serviceName, citations)

	if printed {
		return nil
	}
	return writeOutput(finalText)
}

// readInput fetches the text to translate from the URL, file, argument, or
// stdin, in that priority order.
func readInput(ctx context.Context, args []string) (string, error) {
	switch {
	case inputURL != "":
		art, err := article.Fetch(ctx, nil, inputURL)
		if err != nil {
			return "", fmt.Errorf("failed to extract article: %w", err)
		}
		log.Info().Str("title", art.Title).Msg("article extracted")
		return art.Text, nil
	case inputFile != "":
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	case len(args) == 1:
		return args[0], nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}

// lookupMemory checks the translation memory, falling back to fuzzy matching
// when a threshold is configured.
func lookupMemory(ctx context.Context, db *store.Store, text string) (string, bool) {
	cached, found, err := db.GetCachedTranslation(ctx, text, sourceLang, targetLang)
	if err != nil {
		log.Warn().Err(err).Msg("translation memory lookup failed")
		return "", false
	}
	if found {
		return cached, true
	}
	if fuzzyThreshold > 0 {
		cached, found, err = db.FuzzyGetCachedTranslation(ctx, text, sourceLang, targetLang, fuzzyThreshold)
		if err != nil {
			log.Warn().Err(err).Msg("fuzzy memory lookup failed")
			return "", false
		}
		if found {
			log.Info().Float64("threshold", fuzzyThreshold).Msg("fuzzy memory hit")
			return cached, true
		}
	}
	return "", false
}

// runSingle translates with one engine, chunking long texts and streaming
// output to the terminal when possible. The returned bool reports whether
// the translation was already printed while streaming.
func runSingle(ctx context.Context, text, instruction string) (string, string, []internal.Citation, bool, error) {
	svc, err := buildService(engineName)
	if err != nil {
		return "", "", nil, false, err
	}
	cfg := serviceConfig()

	chunks := []string{text}
	if maxChunkRunes > 0 && utf8.RuneCountInString(text) > maxChunkRunes {
		chunks = chunker.Chunk(text, maxChunkRunes)
		log.Info().Int("chunks", len(chunks)).Msg("input split for translation")
	}

	streamer, canStream := svc.(translator.StreamingService)
	// Streaming to the terminal only makes sense when nothing rewrites the
	// text afterwards.
	streamToTerminal := canStream && outputFile == "" && len(chunks) == 1 &&
		!useRefine && !preserveFormat

	var out strings.Builder
	var citations []internal.Citation
	for i, chunk := range chunks {
		req := translator.TranslateRequest{
			Text:              chunk,
			SourceLang:        sourceLang,
			TargetLang:        targetLang,
			SystemInstruction: instruction,
			Grounded:          grounded,
		}
		// Later chunks carry the tail of what has been translated so far so
		// the engine keeps terminology and register consistent.
		if i > 0 {
			req.SystemInstruction = instruction +
				"\nThe translation so far ends with: " + chunker.ExtractContext(out.String(), 0)
		}

		var result *translator.ServiceResult
		if streamToTerminal {
			result, err = streamer.TranslateStream(ctx, cfg, req, func(piece string) {
				fmt.Print(piece)
			})
			fmt.Println()
		} else {
			result, err = svc.Translate(ctx, cfg, req)
		}
		if err != nil {
			return "", "", nil, false, fmt.Errorf("translation failed: %w", err)
		}

		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(result.TranslatedText)

		citations = append(citations, result.Citations...)
		for _, c := range result.Citations {
			fmt.Fprintf(os.Stderr, "Source: %s (%s)\n", c.Title, c.URI)
		}
	}

	return out.String(), engineName, citations, streamToTerminal, nil
}

// runCompare fans the request out to every named engine and prints all
// candidates so the editor can choose; the highest-confidence result becomes
// the recorded translation.
func runCompare(ctx context.Context, text, instruction string) (string, string, []internal.Citation, error) {
	services, err := buildServices(compareEngines)
	if err != nil {
		return "", "", nil, err
	}

	orch := orchestrator.New(services, orchestrator.Config{Timeout: 60 * time.Second})
	result := orch.Execute(ctx, serviceConfig(), translator.TranslateRequest{
		Text:              text,
		SourceLang:        sourceLang,
		TargetLang:        targetLang,
		SystemInstruction: instruction,
		Grounded:          grounded,
	})

	if result.Succeeded == 0 {
		for _, e := range result.Errors {
			log.Error().Err(e).Msg("engine failed")
		}
		return "", "", nil, fmt.Errorf("all engines failed")
	}

	fmt.Fprintf(os.Stderr, "--- %d of %d engines succeeded ---\n", result.Succeeded, len(services))
	for _, r := range result.Results {
		fmt.Fprintf(os.Stderr, "\n[%s] confidence=%.2f latency=%s\n%s\n",
			r.ServiceName, r.Confidence, r.Latency.Round(time.Millisecond), r.TranslatedText)
	}

	best := result.Results[0]
	return best.TranslatedText, best.ServiceName, best.Citations, nil
}

// record saves the finished translation to history and memory. Failures are
// logged; the translation itself has already succeeded.
func record(ctx context.Context, db *store.Store, sourceText, finalText, serviceName string, citations []internal.Citation) {
	err := db.SaveHistory(ctx, store.HistoryEntry{
		ID:             uuid.New().String(),
		SourceText:     sourceText,
		TranslatedText: finalText,
		SourceLang:     sourceLang,
		TargetLang:     targetLang,
		Service:        serviceName,
		Tone:           tone,
		Citations:      citations,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to record history")
	}
	if err := db.SaveToMemory(ctx, sourceText, sourceLang, targetLang, finalText, serviceName); err != nil {
		log.Warn().Err(err).Msg("failed to update translation memory")
	}
}

func writeOutput(text string) error {
	if outputFile == "" {
		fmt.Println(text)
		return nil
	}
	if dir := filepath.Dir(outputFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	log.Info().Str("file", outputFile).Msg("translation written")
	return nil
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to translate")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")
	translateCmd.Flags().StringVar(&inputURL, "url", "", "Fetch and translate the article at this URL")
	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", "", "Source language code (bn or en; default: detected)")
	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language code (bn or en; default: detected)")

	translateCmd.Flags().StringVarP(&engineName, "engine", "e", "gemini", "Translation engine")
	translateCmd.Flags().StringSliceVar(&compareEngines, "compare", nil, "Run these engines in parallel and show all candidates")
	translateCmd.Flags().BoolVar(&useRefine, "refine", false, "Run a second editorial polish pass")
	translateCmd.Flags().StringVar(&refinerModel, "refiner-model", "llama3.2", "Refiner model name")
	translateCmd.Flags().StringVar(&refinerURL, "refiner-url", "http://localhost:11434", "Refiner Ollama URL")

	translateCmd.Flags().StringVar(&tone, "tone", prompt.ToneNeutral, "Editorial tone: formal, neutral, or colloquial")
	translateCmd.Flags().BoolVar(&preserveFormat, "preserve-format", false, "Protect markup and code spans during translation")
	translateCmd.Flags().BoolVar(&grounded, "grounded", false, "Ground the translation with web sources (gemini only)")

	translateCmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the translation memory")
	translateCmd.Flags().Float64Var(&fuzzyThreshold, "fuzzy", 0, "Fuzzy memory match threshold (0 disables, e.g. 0.9)")
	translateCmd.Flags().IntVar(&maxChunkRunes, "max-chunk", 4000, "Split inputs longer than this many characters (0 disables)")
}
