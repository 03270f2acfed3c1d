package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/kaptinlin/jsonish"
)

var (
	schemaPath   string
	inputPath    string
	allowPartial bool
	locale       string
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse text against a schema document and print the typed result",
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&schemaPath, "schema", "", "path to a YAML or JSON schema document (required)")
	parseCmd.Flags().StringVar(&inputPath, "input", "-", "path to the input text, or - for stdin")
	parseCmd.Flags().BoolVar(&allowPartial, "allow-partial", false, "accept truncated/streaming input")
	parseCmd.Flags().StringVar(&locale, "locale", "en", "locale for error messages (en, zh-Hans)")
	_ = parseCmd.MarkFlagRequired("schema")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	schema, err := jsonish.LoadSchemaYAML(schemaBytes)
	if err != nil {
		return fmt.Errorf("building schema: %w", err)
	}

	var input []byte
	if inputPath == "-" {
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(inputPath)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	opts := jsonish.DefaultParseOptions()
	opts.AllowPartial = allowPartial

	result, err := jsonish.Parse(string(input), schema, opts)
	if err != nil {
		return localizedError(err)
	}

	out, err := json.MarshalIndent(jsonish.ToPlainTyped(result), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func localizedError(err error) error {
	pe, ok := err.(*jsonish.ParseError)
	if !ok {
		return err
	}
	bundle, bErr := jsonish.I18n()
	if bErr != nil {
		return err
	}
	return fmt.Errorf("%s", pe.Localize(bundle.NewLocalizer(locale)))
}
