// Package main implements the jsonish command line tool: parse and coerce
// loosely-formed LLM output against a schema document from the shell.
package main

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jsonish",
	Short: "Schema-directed, error-tolerant parsing of JSON-like text",
	Long: `jsonish extracts structured data out of text an LLM produced: text
that may be wrapped in markdown fences, contain multiple JSON objects,
use the wrong quote characters, or simply be cut off mid-stream.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("jsonish: %v", err)
	}
}

func main() {
	Execute()
}
