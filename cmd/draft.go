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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/imam0096361/translation/internal/store"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Save and restore named drafts",
	Long: `Save work-in-progress copy under a name and restore it later.

  anubad draft save monday-lead --file lead.md
  anubad draft load monday-lead
  anubad draft list`,
}

var draftSaveFile string

var draftSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a draft from a file or stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var content []byte
		var err error
		if draftSaveFile != "" {
			content, err = os.ReadFile(draftSaveFile)
		} else {
			content, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("failed to read draft content: %w", err)
		}

		db, err := store.New(dbPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := db.SaveDraft(context.Background(), args[0], string(content)); err != nil {
			return fmt.Errorf("failed to save draft: %w", err)
		}
		fmt.Printf("Saved draft %q (%d bytes)\n", args[0], len(content))
		return nil
	},
}

var draftLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Print a saved draft to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(dbPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		content, found, err := db.GetDraft(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load draft: %w", err)
		}
		if !found {
			return fmt.Errorf("no draft named %q", args[0])
		}
		fmt.Print(content)
		return nil
	},
}

var draftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(dbPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		drafts, err := db.ListDrafts(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list drafts: %w", err)
		}

		if len(drafts) == 0 {
			fmt.Println("No saved drafts.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tUPDATED\tPREVIEW")
		for _, d := range drafts {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				d.Name, d.UpdatedAt.Format("2006-01-02 15:04"), snippet(d.Content))
		}
		return w.Flush()
	},
}

var draftDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(dbPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := db.DeleteDraft(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete draft: %w", err)
		}
		fmt.Printf("Deleted draft %q\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(draftCmd)

	draftSaveCmd.Flags().StringVarP(&draftSaveFile, "file", "f", "", "Read draft content from file instead of stdin")

	draftCmd.AddCommand(draftSaveCmd)
	draftCmd.AddCommand(draftLoadCmd)
	draftCmd.AddCommand(draftListCmd)
	draftCmd.AddCommand(draftDeleteCmd)
}
