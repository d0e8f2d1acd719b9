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
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/imam0096361/translation/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past translations",
	Long:  `List, inspect, and clear the translation history.`,
}

var historyLimit int

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent translations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(dbPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		entries, err := db.ListHistory(context.Background(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("History is empty.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tWHEN\tDIRECTION\tENGINE\tTONE\tSOURCE\tTRANSLATION")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s→%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.CreatedAt.Format("2006-01-02 15:04"),
				e.SourceLang, e.TargetLang, e.Service, e.Tone,
				snippet(e.SourceText), snippet(e.TranslatedText))
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a history entry in full, including citations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(dbPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		entries, err := db.ListHistory(context.Background(), 0)
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		for _, e := range entries {
			if e.ID != args[0] {
				continue
			}
			fmt.Printf("ID:        %s\n", e.ID)
			fmt.Printf("When:      %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Direction: %s → %s\n", e.SourceLang, e.TargetLang)
			fmt.Printf("Engine:    %s\n", e.Service)
			if e.Tone != "" {
				fmt.Printf("Tone:      %s\n", e.Tone)
			}
			fmt.Printf("\n--- Source ---\n%s\n", e.SourceText)
			fmt.Printf("\n--- Translation ---\n%s\n", e.TranslatedText)
			if len(e.Citations) > 0 {
				fmt.Printf("\n--- Sources ---\n")
				for _, c := range e.Citations {
					fmt.Printf("- %s (%s)\n", c.Title, c.URI)
				}
			}
			return nil
		}
		return fmt.Errorf("no history entry with ID %s", args[0])
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show translation history statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(dbPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		stats, err := db.HistoryStats(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		fmt.Printf("Total translations: %d\n", stats.Total)
		fmt.Printf("Bangla → English:   %d\n", stats.BanglaToEnglish)
		fmt.Printf("English → Bangla:   %d\n", stats.EnglishToBangla)
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a history entry by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(dbPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := db.DeleteHistory(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		fmt.Printf("Deleted entry: %s\n", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all history entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(dbPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		n, err := db.ClearHistory(context.Background())
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Printf("Cleared %d history entries.\n", n)
		return nil
	},
}

// snippet truncates text for the tabular listing.
func snippet(text string) string {
	runes := []rune(text)
	if len(runes) > 40 {
		return string(runes[:37]) + "..."
	}
	return text
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to show (0 = all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}
