package generation

import (
	"context"
	"fmt"
)

// ResponseFormat tells the provider what shape of text the caller expects back.
type ResponseFormat int

const (
	// FormatPlainText asks for free text.
	FormatPlainText ResponseFormat = iota
	// FormatStructured asks for a JSON document.
	FormatStructured
)

// String returns the name used in logs.
func (f ResponseFormat) String() string {
	switch f {
	case FormatPlainText:
		return "plain-text"
	case FormatStructured:
		return "structured-data"
	default:
		return fmt.Sprintf("ResponseFormat(%d)", int(f))
	}
}

// MIMEType returns the response MIME type matching the format.
func (f ResponseFormat) MIMEType() string {
	if f == FormatStructured {
		return "application/json"
	}
	return "text/plain"
}

// Request is a single prompt sent to a language model.
type Request struct {
	// SystemInstruction is optional; empty means none.
	SystemInstruction string
	UserInstruction   string
	MaxOutputTokens   int
	ResponseFormat    ResponseFormat
}

// Generator defines the interface for turning a prompt into model text.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// Generate sends req to the model and returns the raw text it produced.
	// The text is not interpreted in any way; callers parse it themselves.
	//
	// Implementations return ErrMissingCredential when they have no API key,
	// and wrap provider failures with the other errors in this package.
	Generate(ctx context.Context, req Request) (string, error)
}
