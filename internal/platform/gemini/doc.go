// Package gemini provides an implementation of the generation.Generator interface
// backed by Google's Gemini API.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application core to Google's external Gemini AI service.
// It translates generation.Request values into GenerateContent calls and hands
// the candidate text back without interpreting it.
//
// Key responsibilities:
//
// 1. Client lifecycle:
//   - Creates a google.golang.org/genai client for the Gemini API backend
//   - Takes the API key and model name from config.LLMConfig at construction
//
// 2. Request mapping:
//   - System instruction, output token budget and response MIME type
//     (application/json or text/plain) per request
//
// 3. Error handling:
//   - Missing API key surfaces as generation.ErrMissingCredential on every call
//   - Safety blocks, empty candidates and transport failures are mapped onto the
//     generation package's sentinel errors
//
// Calls are made exactly once; there is no retry or backoff.
package gemini
