// Package generation defines the boundary between the application core and
// external AI/LLM services. The core hands a Generator a rendered prompt and
// a response-format hint and gets raw text back; how that text is produced
// (Gemini, a mock in tests) is hidden behind the Generator interface.
package generation
