package seqvault

import "github.com/seqvault/seqvault/internal/cli"

// Execute runs the seqvault CLI entrypoint.
func Execute() int {
	return cli.Execute()
}
