package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cinder/internal/diag"
	"cinder/internal/diagfmt"
	"cinder/internal/lexer"
	"cinder/internal/source"
	"cinder/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.cin",
	Short: "Tokenize a Cinder source file",
	Long:  `Tokenize breaks a Cinder source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}

	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %q: %w", args[0], err)
	}

	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.Tokenize(fileSet.Get(fileID), diag.BagReporter{Bag: bag})

	if bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{
			Color:    useColor(cmd, os.Stderr),
			PathMode: diagfmt.PathModeRelative,
		})
	}

	switch format {
	case "pretty":
		return printTokensPretty(tokens, fileSet)
	case "json":
		return printTokensJSON(tokens, fileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printTokensPretty(tokens []token.Token, fileSet *source.FileSet) error {
	for _, tok := range tokens {
		start, _ := fileSet.Resolve(tok.Span)
		if _, err := fmt.Printf("%4d:%-3d %-12s %q\n", start.Line, start.Col, tok.Kind, tok.Text); err != nil {
			return err
		}
	}
	return nil
}

type tokenJSON struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

func printTokensJSON(tokens []token.Token, fileSet *source.FileSet) error {
	out := make([]tokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		start, _ := fileSet.Resolve(tok.Span)
		out = append(out, tokenJSON{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Line: start.Line,
			Col:  start.Col,
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
