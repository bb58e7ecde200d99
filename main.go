package main

import (
	"fmt"
	"os"

	"vised/config"
	"vised/editor"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: vised <file>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	e := editor.New(cfg)
	if err := e.Run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
