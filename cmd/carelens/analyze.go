package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agenthands/carelens/internal/llm"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Enrich a single note text and print the result",
	Long: `Runs the sentiment, emotion and safeguarding analyses over the given text,
or over stdin when no argument is given, and prints the enrichment as JSON.
Nothing is stored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := noteText(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		pipeline, client, err := newPipeline(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer llm.Close(client)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(pipeline.Enrich(cmd.Context(), text))
	},
}

func noteText(stdin io.Reader, args []string) (string, error) {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(b)
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("no note text given")
	}
	return text, nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
