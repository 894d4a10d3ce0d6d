package agent_test

import (
	"context"
	"testing"
)

type stubCompletion struct {
	output string
	err    error

	gotSystem string
	gotInput  string
	calls     int
}

func (s *stubCompletion) Complete(_ context.Context, systemPrompt, userContent string) (string, error) {
	s.calls++
	s.gotSystem = systemPrompt
	s.gotInput = userContent

	return s.output, s.err
}

type stubSearch struct {
	results string
	err     error

	gotQuery string
	calls    int
}

func (s *stubSearch) Search(_ context.Context, query string) (string, error) {
	s.calls++
	s.gotQuery = query

	return s.results, s.err
}

func newStubCompletion(t *testing.T, output string, err error) *stubCompletion {
	t.Helper()

	return &stubCompletion{output: output, err: err}
}

func newStubSearch(t *testing.T, results string, err error) *stubSearch {
	t.Helper()

	return &stubSearch{results: results, err: err}
}
