package systemid_test

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/slashdevops/systemid"
)

// ExampleResolve shows the simplest way to obtain the machine identity.
func ExampleResolve() {
	id, err := systemid.Resolve()
	if errors.Is(err, systemid.ErrUnavailable) {
		fmt.Println("no machine identity; continuing without a machine-specific seed")
		return
	}

	fmt.Printf("%d bytes, %s confidence\n", id.Len(), id.Confidence())
}

// ExampleResolver_WithMinConfidence only accepts identifiers expected to last
// as long as the OS installation.
func ExampleResolver_WithMinConfidence() {
	resolver := systemid.New().WithMinConfidence(systemid.ConfidenceHigh)

	id, err := resolver.Resolve()
	if err != nil {
		fmt.Println("no stable identity available")
		return
	}

	seed := id.Bytes()
	fmt.Printf("seed: %x\n", seed)
}

// ExampleResolver_Diagnostics explains why strategies were skipped.
func ExampleResolver_Diagnostics() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	resolver := systemid.New().WithLogger(logger)

	_, _ = resolver.Resolve()

	diag := resolver.Diagnostics()
	fmt.Println("selected:", diag.Selected)
	for name, err := range diag.Errors {
		fmt.Printf("  %s: %v\n", name, err)
	}
}

// ExampleResolver_Chain lists the strategies in the order they are tried.
func ExampleResolver_Chain() {
	for _, info := range systemid.New().Chain() {
		fmt.Printf("%s (%s)\n", info.Name, info.Confidence)
	}
}

func ExampleConfidence_String() {
	fmt.Println(systemid.ConfidenceHigh)
	fmt.Println(systemid.ConfidenceLow)
	// Output:
	// high
	// low
}
