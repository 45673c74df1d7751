package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// Interrupted runs already said why they stopped.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "kotoba: %v\n", err)
		}
		os.Exit(1)
	}
}
