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
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imam0096361/translation/internal/detector"
)

var detectFile string

var detectCmd = &cobra.Command{
	Use:   "detect [text]",
	Short: "Detect whether text is Bangla or English",
	Long: `Detect the language of the given text and print the translation
direction that would be used.

Text can be passed as an argument, read from a file with --file, or piped
on stdin:

  anubad detect "আমি ঢাকায় থাকি"
  anubad detect --file article.txt
  cat article.txt | anubad detect`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		switch {
		case detectFile != "":
			data, err := os.ReadFile(detectFile)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}
			text = string(data)
		case len(args) == 1:
			text = args[0]
		default:
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			text = string(data)
		}

		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("no text to detect")
		}

		lang := detector.Detect(text)
		fmt.Printf("Language: %s\n", lang)
		if src, dst, ok := detector.Direction(lang); ok {
			fmt.Printf("Direction: %s → %s\n", src, dst)
		} else {
			fmt.Println("Direction: undetermined; pass --source and --target to translate")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().StringVarP(&detectFile, "file", "f", "", "Read text from file instead of arguments")
}
