// Package domain contains the entities exchanged between the HTTP layer, the
// tutor pipelines and the language model: course plan requests and results,
// course specs, lessons and lesson chat results.
//
// Nothing here is persisted; every value is built per request and discarded
// once the response is written.
package domain
