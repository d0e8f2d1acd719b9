// Package orchestrator fans a translation request out to several engines in
// parallel. Compare mode shows the editor every candidate; normal mode takes
// the best-ranked success.
package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/imam0096361/translation/internal/translator"
)

type Config struct {
	// Timeout bounds each engine call individually.
	Timeout time.Duration
}

type Result struct {
	Results   []translator.ServiceResult
	Errors    []error
	Succeeded int
	Failed    int
}

type Orchestrator struct {
	services []translator.TranslationService
	config   Config
}

func New(services []translator.TranslationService, config Config) *Orchestrator {
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}
	return &Orchestrator{services: services, config: config}
}

// Execute runs every engine concurrently and collects all outcomes.
// Successful results are ordered by confidence, ties broken by latency.
func (o *Orchestrator) Execute(ctx context.Context, cfg translator.ServiceConfig, req translator.TranslateRequest) *Result {
	result := &Result{}

	type outcome struct {
		res *translator.ServiceResult
		err error
	}

	outcomes := make(chan outcome, len(o.services))

	var wg sync.WaitGroup
	for _, svc := range o.services {
		wg.Add(1)
		go func(service translator.TranslationService) {
			defer wg.Done()

			serviceCtx, cancel := context.WithTimeout(ctx, o.config.Timeout)
			defer cancel()

			res, err := service.Translate(serviceCtx, cfg, req)
			outcomes <- outcome{res: res, err: err}
		}(svc)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for oc := range outcomes {
		switch {
		case oc.err != nil:
			result.Errors = append(result.Errors, oc.err)
			result.Failed++
		case oc.res.Error != "":
			result.Errors = append(result.Errors, fmt.Errorf("%s: %s", oc.res.ServiceName, oc.res.Error))
			result.Failed++
		default:
			result.Results = append(result.Results, *oc.res)
			result.Succeeded++
		}
	}

	sort.SliceStable(result.Results, func(i, j int) bool {
		if result.Results[i].Confidence != result.Results[j].Confidence {
			return result.Results[i].Confidence > result.Results[j].Confidence
		}
		return result.Results[i].Latency < result.Results[j].Latency
	})

	return result
}

// Best returns the top-ranked successful result, or nil when every engine
// failed.
func (o *Orchestrator) Best(ctx context.Context, cfg translator.ServiceConfig, req translator.TranslateRequest) *translator.ServiceResult {
	result := o.Execute(ctx, cfg, req)
	if result.Succeeded == 0 {
		return nil
	}
	return &result.Results[0]
}
