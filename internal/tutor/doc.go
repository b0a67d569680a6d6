// Package tutor implements the two request pipelines of the service:
// building a course plan spec from a free-text topic, and answering a
// student's question about a lesson.
//
// Each pipeline validates its input, renders a prompt from an embedded
// template, hands it to a generation.Generator, and interprets the raw model
// text. The course plan path is strict: output that does not parse is an
// error. The lesson chat path is lenient: missing sections fall back to the
// raw text or to the caller's lesson, so a usable answer always comes back.
package tutor
