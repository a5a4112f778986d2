package domain

import "fmt"

// GenerationError reports a failed call to the text-generation provider.
// It covers transport, authentication, quota and malformed-response failures.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("generation failed: %v", e.Err)
	}
	return fmt.Sprintf("generation failed (%s): %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// StoreOp names the archive operation that failed.
type StoreOp string

const (
	StoreOpAppend StoreOp = "append"
	StoreOpList   StoreOp = "list"
	StoreOpInit   StoreOp = "init"
)

// StoreError reports a failed archive store operation.
type StoreError struct {
	Backend string
	Op      StoreOp
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("archive %s failed (%s): %v", e.Op, e.Backend, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
