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
	"fmt"

	"github.com/spf13/viper"

	"github.com/imam0096361/translation/internal/translator"
)

// engineNames lists the engines buildService knows how to construct.
var engineNames = []string{"gemini", "openai", "ollama", "google"}

// buildService constructs a single engine from viper settings. Keys follow
// the "<engine>.<setting>" convention, so ANUBAD_GEMINI_API_KEY or a
// gemini.api_key config entry both work.
func buildService(name string) (translator.TranslationService, error) {
	switch name {
	case "gemini":
		return translator.NewGeminiService(
			viper.GetString("gemini.api_key"),
			viper.GetString("gemini.model"),
		), nil
	case "openai":
		return translator.NewOpenAIService(
			viper.GetString("openai.api_key"),
			viper.GetString("openai.base_url"),
			viper.GetString("openai.model"),
		), nil
	case "ollama":
		return translator.NewOllamaService(
			viper.GetString("ollama.url"),
			viper.GetString("ollama.model"),
		), nil
	case "google":
		return translator.NewGoogleService(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (available: %v)", name, engineNames)
	}
}

// buildServices constructs the named engines in order.
func buildServices(names []string) ([]translator.TranslationService, error) {
	var list []translator.TranslationService
	for _, name := range names {
		svc, err := buildService(name)
		if err != nil {
			return nil, err
		}
		list = append(list, svc)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no engines configured")
	}
	return list, nil
}

// serviceConfig carries the settings engines read per call rather than at
// construction (Google Cloud credentials, shared timeout).
func serviceConfig() translator.ServiceConfig {
	return translator.ServiceConfig{
		Credentials: viper.GetString("google.credentials"),
		ProjectID:   viper.GetString("google.project_id"),
	}
}

func dbPath() string {
	return viper.GetString("db")
}
