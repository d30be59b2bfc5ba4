package main

import (
	"os"

	"github.com/nkapur/verbaprep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
