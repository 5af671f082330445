// Package mock provides a test double for concept extraction, usable
// without any model or network dependency.
//
// The extractor returns a concrete type so tests can inject behavior via
// the ExtractConceptsFunc field and assert on CallCount.
package mock
