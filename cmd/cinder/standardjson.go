package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cinder/internal/driver"
)

var standardJSONCmd = &cobra.Command{
	Use:   "standard-json [file]",
	Short: "Run the batch JSON interface",
	Long: `Standard-json reads a JSON request from a file or stdin, analyzes the
embedded sources and writes a JSON response to stdout. Malformed requests are
reported inside the response.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStandardJSON,
}

func runStandardJSON(cmd *cobra.Command, args []string) error {
	var raw []byte
	var err error
	if len(args) == 1 {
		raw, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read request: %w", err)
		}
	} else {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	out, err := driver.StandardJSON(raw)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		return err
	}
	_, err = os.Stdout.Write([]byte("\n"))
	return err
}
