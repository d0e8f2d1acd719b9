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
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/imam0096361/translation/internal/cache"
	"github.com/imam0096361/translation/internal/server"
	"github.com/imam0096361/translation/internal/store"
)

var (
	serveAddr    string
	serveOrigins []string
	serveEngines []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API for the browser front end",
	Long: `Start the HTTP API: JSON endpoints for language detection, glossary,
history, and drafts, plus a server-sent-events endpoint that streams
translation output.

A Redis lookaside cache is used when redis.url is configured (or
ANUBAD_REDIS_URL is set); otherwise an in-process cache is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(dbPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		var lookaside cache.Cache
		if url := viper.GetString("redis.url"); url != "" {
			redisCache, err := cache.NewRedis(cache.RedisConfig{
				URL: url,
				TTL: viper.GetDuration("redis.ttl"),
			})
			if err != nil {
				return fmt.Errorf("failed to connect to redis: %w", err)
			}
			defer redisCache.Close()
			lookaside = redisCache
			log.Info().Str("url", url).Msg("using redis lookaside cache")
		} else {
			lookaside = cache.NewMemory(time.Hour)
		}

		engines := make(map[string]server.Engine, len(serveEngines))
		for _, name := range serveEngines {
			svc, err := buildService(name)
			if err != nil {
				return err
			}
			engines[name] = server.Engine{Service: svc, Config: serviceConfig()}
		}
		if len(engines) == 0 {
			return fmt.Errorf("no engines configured")
		}
		defaultEngine := serveEngines[0]

		srv := server.New(server.Options{
			Store:          db,
			Cache:          lookaside,
			Engines:        engines,
			DefaultEngine:  defaultEngine,
			AllowedOrigins: serveOrigins,
			Logger:         log.Logger,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return srv.Run(ctx, serveAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "allowed-origins", nil, "CORS allowed origins")
	serveCmd.Flags().StringSliceVar(&serveEngines, "engines", engineNames, "Engines to expose (first is the default)")
}
