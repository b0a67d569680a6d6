// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, request-scoped loggers carried in context.Context,
// and helpers for asserting on log output in tests.
package logger
