// Package repoolerrors provides examples of structured error handling in repool.
package repoolerrors_test

import (
	"errors"
	"fmt"
	"io"

	"github.com/ajitpratap0/repool/pkg/repoolerrors"
)

// Example demonstrates basic error creation and wrapping.
func Example() {
	// Create a new error with type
	err := repoolerrors.New(repoolerrors.ErrorTypeConfig, "pool not initialized for requested type")

	// Add context details
	err = err.WithDetail("type", "*widget.Widget")

	// Print the error
	fmt.Println(err.Error())

	// Output:
	// config: pool not initialized for requested type
}

// ExampleWrap shows how to wrap existing errors with context.
func ExampleWrap() {
	// Simulate an underlying error
	originalErr := io.EOF

	// Wrap the error with context
	err := repoolerrors.Wrap(originalErr, repoolerrors.ErrorTypeFile, "failed to read bench config").
		WithDetail("file", "bench.yaml")

	fmt.Println(err.Error())
	fmt.Println(errors.Is(err, io.EOF))

	// Output:
	// file: failed to read bench config: EOF
	// true
}

// ExampleIsType demonstrates checking error categories.
func ExampleIsType() {
	err := repoolerrors.New(repoolerrors.ErrorTypeConfig, "pool creator not provided")

	fmt.Println(repoolerrors.IsType(err, repoolerrors.ErrorTypeConfig))
	fmt.Println(repoolerrors.IsType(err, repoolerrors.ErrorTypeValidation))
	fmt.Println(repoolerrors.IsType(io.EOF, repoolerrors.ErrorTypeConfig))

	// Output:
	// true
	// false
	// false
}
