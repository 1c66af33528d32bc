package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

const (
	formatJSON = "json"
	formatText = "text"
)

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("format", formatJSON, "Output format: json or text")
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case formatJSON, formatText:
		return format, nil
	}
	return "", fmt.Errorf("unknown format %q, want json or text", format)
}

// printJSON marshals v into a pretty-printed JSON string.
func printJSON(w io.Writer, v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}
