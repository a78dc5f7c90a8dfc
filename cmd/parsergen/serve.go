package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/talhanaseem08/ParserGen/api"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

var serveFlags = struct {
	port *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the table generator and the parser over HTTP",
		Example: `  parsergen serve --port 8080`,
		Args:    cobra.NoArgs,
		RunE:    runServe,
	}
	serveFlags.port = cmd.Flags().IntP("port", "p", 0, "port to listen on (0 reads the PORT environment variable, default 5000)")
	rootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	gtrace.SyntaxTracer = gologadapter.New()

	port := *serveFlags.port
	if port == 0 {
		if v := os.Getenv("PORT"); v != "" {
			p, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid PORT value %q: %w", v, err)
			}
			port = p
		} else {
			port = 5000
		}
	}

	return api.ListenAndServe(fmt.Sprintf(":%d", port))
}
