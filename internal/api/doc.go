// Package api handles incoming HTTP requests, routing, request decoding,
// and response formatting. It acts as an adapter between HTTP clients and
// the tutor pipelines, translating pipeline errors into status codes and
// safe messages.
package api
