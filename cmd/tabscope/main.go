package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tabscope/tabscope/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	_ = godotenv.Load()

	if err := cli.Run(version); err != nil {
		fmt.Fprintf(os.Stderr, "tabscope: %v\n", err)
		os.Exit(1)
	}
}
