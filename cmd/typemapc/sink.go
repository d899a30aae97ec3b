package main

import "fmt"

// counterSink is the CLI's locals.Sink: it hands out unique
// identifiers by suffixing a running counter onto the preferred name,
// the simplest possible implementation of Wrapper_new_localv
// (spec.md section 6) for a manifest-driven run that has no real
// wrapper function to emit locals into.
type counterSink struct {
	seen map[string]int
}

func newCounterSink() *counterSink {
	return &counterSink{seen: make(map[string]int)}
}

func (s *counterSink) NewLocalV(preferredName, declarationText, initialValue string) string {
	s.seen[preferredName]++
	n := s.seen[preferredName]
	if n == 1 {
		return preferredName
	}
	return fmt.Sprintf("%s_%d", preferredName, n)
}
