package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/tutor-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, req generation.Request) (string, error)

	// Default response values
	Text string
	Err  error

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Requests contains all requests passed to Generate calls
		Requests []generation.Request
	}
}

var _ generation.Generator = (*MockGenerator)(nil)

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, req generation.Request) (string, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Requests = append(m.GenerateCalls.Requests, req)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}

	return m.Text, m.Err
}

// CallCount returns how many times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// LastRequest returns the most recent request, or false if Generate was never called.
func (m *MockGenerator) LastRequest() (generation.Request, bool) {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	if len(m.GenerateCalls.Requests) == 0 {
		return generation.Request{}, false
	}
	return m.GenerateCalls.Requests[len(m.GenerateCalls.Requests)-1], true
}

// NewMockGeneratorWithText creates a MockGenerator that returns the given text
func NewMockGeneratorWithText(text string) *MockGenerator {
	return &MockGenerator{Text: text}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}

// MockGeneratorWithoutCredential simulates a provider with no API key configured
func MockGeneratorWithoutCredential() *MockGenerator {
	return &MockGenerator{Err: generation.ErrMissingCredential}
}

// MockGeneratorWithContentBlocked creates a MockGenerator that simulates content being blocked
func MockGeneratorWithContentBlocked() *MockGenerator {
	return &MockGenerator{Err: generation.ErrContentBlocked}
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	m.GenerateCalls.Count = 0
	m.GenerateCalls.Requests = nil
}
