package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/imam0096361/translation/internal/article"
	"github.com/imam0096361/translation/internal/cache"
	"github.com/imam0096361/translation/internal/detector"
	"github.com/imam0096361/translation/internal/markdown"
	"github.com/imam0096361/translation/internal/prompt"
	"github.com/imam0096361/translation/internal/store"
	"github.com/imam0096361/translation/internal/translator"
	"github.com/imam0096361/translation/internal/validator"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, format string, args ...interface{}) {
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- detection ---

type detectRequest struct {
	Text string `json:"text"`
}

type detectResponse struct {
	Language   detector.Language `json:"language"`
	SourceLang string            `json:"source_lang,omitempty"`
	TargetLang string            `json:"target_lang,omitempty"`
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}

	lang := detector.Detect(req.Text)
	resp := detectResponse{Language: lang}
	if src, dst, ok := detector.Direction(lang); ok {
		resp.SourceLang = src
		resp.TargetLang = dst
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- translation (SSE) ---

type translateRequest struct {
	Text           string `json:"text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
	Engine         string `json:"engine"`
	Tone           string `json:"tone"`
	PreserveFormat bool   `json:"preserve_format"`
	Grounded       bool   `json:"grounded"`
	NoCache        bool   `json:"no_cache"`
}

type translateDone struct {
	ID             string `json:"id"`
	TranslatedText string `json:"translated_text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
	Service        string `json:"service"`
	Cached         bool   `json:"cached"`
}

// sseWriter emits server-sent events on a flushable response writer.
type sseWriter struct {
	w http.ResponseWriter
	f http.Flusher
}

func newSSEWriter(w http.ResponseWriter) (*sseWriter, bool) {
	f, ok := w.(http.Flusher)
	if !ok {
		return nil, false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	return &sseWriter{w: w, f: f}, true
}

func (s *sseWriter) event(name string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", name, data)
	s.f.Flush()
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	// Resolve the direction up front so an undetectable input is rejected
	// before any engine call.
	if req.SourceLang == "" || req.TargetLang == "" {
		lang := detector.Detect(req.Text)
		src, dst, ok := detector.Direction(lang)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity,
				"could not detect the input language; set source_lang and target_lang explicitly")
			return
		}
		req.SourceLang = src
		req.TargetLang = dst
	}

	eng, ok := s.engineFor(req.Engine)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown engine %q", req.Engine)
		return
	}

	sse, ok := newSSEWriter(w)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ctx := r.Context()

	if !req.NoCache {
		if text, hit := s.cachedTranslation(ctx, req); hit {
			sse.event("chunk", map[string]string{"text": text})
			sse.event("done", translateDone{
				TranslatedText: text,
				SourceLang:     req.SourceLang,
				TargetLang:     req.TargetLang,
				Service:        "cache",
				Cached:         true,
			})
			return
		}
	}

	glossary, err := s.opts.Store.GetGlossaryTerms(ctx, req.SourceLang, req.TargetLang)
	if err != nil {
		s.log.Warn().Err(err).Msg("glossary lookup failed")
	}

	treq := translator.TranslateRequest{
		Text:       req.Text,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
		Grounded:   req.Grounded,
		SystemInstruction: prompt.Build(prompt.Options{
			SourceLang:     req.SourceLang,
			TargetLang:     req.TargetLang,
			Tone:           req.Tone,
			PreserveFormat: req.PreserveFormat,
			Glossary:       glossary,
		}),
	}

	var result *translator.ServiceResult
	if streamer, ok := eng.Service.(translator.StreamingService); ok {
		result, err = streamer.TranslateStream(ctx, eng.Config, treq, func(text string) {
			sse.event("chunk", map[string]string{"text": text})
		})
	} else {
		result, err = eng.Service.Translate(ctx, eng.Config, treq)
		if err == nil {
			sse.event("chunk", map[string]string{"text": result.TranslatedText})
		}
	}
	if err != nil {
		sse.event("error", map[string]string{"error": err.Error()})
		return
	}

	if len(result.Citations) > 0 {
		sse.event("citations", result.Citations)
	}

	if valid, verr := validator.IsValid(result.TranslatedText, req.TargetLang); verr != nil || !valid {
		s.log.Warn().Err(verr).
			Str("target_lang", req.TargetLang).
			Msg("translation failed language validation")
	}

	id := uuid.New().String()
	s.record(r, req, result, id)

	sse.event("done", translateDone{
		ID:             id,
		TranslatedText: result.TranslatedText,
		SourceLang:     req.SourceLang,
		TargetLang:     req.TargetLang,
		Service:        result.ServiceName,
	})
}

// cachedTranslation consults the lookaside cache and then the sqlite
// translation memory.
func (s *Server) cachedTranslation(ctx context.Context, req translateRequest) (string, bool) {
	key := cache.Key(req.SourceLang, req.TargetLang, req.Text)
	if s.opts.Cache != nil {
		if text, hit := s.opts.Cache.Get(ctx, key); hit {
			return text, true
		}
	}
	text, hit, err := s.opts.Store.GetCachedTranslation(ctx, req.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		s.log.Warn().Err(err).Msg("translation memory lookup failed")
		return "", false
	}
	if hit && s.opts.Cache != nil {
		_ = s.opts.Cache.Set(ctx, key, text)
	}
	return text, hit
}

// record persists a completed translation to history, memory, and the
// lookaside cache. Failures are logged, not surfaced; the editor already has
// the text.
func (s *Server) record(r *http.Request, req translateRequest, result *translator.ServiceResult, id string) {
	ctx := r.Context()

	entry := store.HistoryEntry{
		ID:             id,
		SourceText:     req.Text,
		TranslatedText: result.TranslatedText,
		SourceLang:     req.SourceLang,
		TargetLang:     req.TargetLang,
		Service:        result.ServiceName,
		Tone:           req.Tone,
		Citations:      result.Citations,
		CreatedAt:      time.Now(),
	}
	if err := s.opts.Store.SaveHistory(ctx, entry); err != nil {
		s.log.Warn().Err(err).Msg("failed to save history")
	}
	if err := s.opts.Store.SaveToMemory(ctx, req.Text, req.SourceLang, req.TargetLang, result.TranslatedText, result.ServiceName); err != nil {
		s.log.Warn().Err(err).Msg("failed to save translation memory")
	}
	if s.opts.Cache != nil {
		key := cache.Key(req.SourceLang, req.TargetLang, req.Text)
		if err := s.opts.Cache.Set(ctx, key, result.TranslatedText); err != nil {
			s.log.Warn().Err(err).Msg("failed to update lookaside cache")
		}
	}
}

// --- article extraction ---

type extractRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	art, err := article.Fetch(r.Context(), nil, req.URL)
	if err != nil {
		writeError(w, http.StatusBadGateway, "extraction failed: %v", err)
		return
	}

	lang := detector.Detect(art.Text)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"title":    art.Title,
		"text":     art.Text,
		"language": lang,
	})
}

// --- markdown preview ---

type renderRequest struct {
	Markdown string `json:"markdown"`
	Title    string `json:"title"`
	Lang     string `json:"lang"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if req.Lang == "" {
		req.Lang = "en"
	}

	fragment := markdown.ToHTML([]byte(req.Markdown))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, markdown.Preview(req.Title, req.Lang, fragment))
}

// --- glossary ---

type glossaryAddRequest struct {
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	SourceTerm string `json:"source_term"`
	TargetTerm string `json:"target_term"`
}

func (s *Server) handleGlossaryAdd(w http.ResponseWriter, r *http.Request) {
	var req glossaryAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if req.SourceLang == "" || req.TargetLang == "" || req.SourceTerm == "" || req.TargetTerm == "" {
		writeError(w, http.StatusBadRequest, "source_lang, target_lang, source_term, and target_term are required")
		return
	}

	if err := s.opts.Store.AddGlossaryTerm(r.Context(), req.SourceLang, req.TargetLang, req.SourceTerm, req.TargetTerm); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add glossary entry: %v", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleGlossaryList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.opts.Store.ListGlossaryTerms(r.Context(),
		r.URL.Query().Get("source_lang"), r.URL.Query().Get("target_lang"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list glossary: %v", err)
		return
	}
	if entries == nil {
		entries = []store.GlossaryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGlossaryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.opts.Store.DeleteGlossaryTerm(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete glossary entry: %v", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- history ---

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit %q", v)
			return
		}
		limit = n
	}

	entries, err := s.opts.Store.ListHistory(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list history: %v", err)
		return
	}
	if entries == nil {
		entries = []store.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleHistoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.opts.Store.HistoryStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get stats: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.opts.Store.DeleteHistory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete history entry: %v", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	n, err := s.opts.Store.ClearHistory(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear history: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

// --- drafts ---

type draftPutRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleDraftPut(w http.ResponseWriter, r *http.Request) {
	var req draftPutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}

	name := chi.URLParam(r, "name")
	if err := s.opts.Store.SaveDraft(r.Context(), name, req.Content); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save draft: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

func (s *Server) handleDraftGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	content, found, err := s.opts.Store.GetDraft(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load draft: %v", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "draft %q not found", name)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name, "content": content})
}

func (s *Server) handleDraftList(w http.ResponseWriter, r *http.Request) {
	drafts, err := s.opts.Store.ListDrafts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list drafts: %v", err)
		return
	}
	if drafts == nil {
		drafts = []store.Draft{}
	}
	writeJSON(w, http.StatusOK, drafts)
}

func (s *Server) handleDraftDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.opts.Store.DeleteDraft(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete draft: %v", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
