package main

import (
	"os"

	"github.com/seqvault/seqvault/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
