package api

import (
	"tally/pkg/tracker"
)

type mockApplier struct {
	ApplyBatchFunc  func(requests []tracker.UpdateRequest) []tracker.UpdateResult
	ApplyBatchCalls [][]tracker.UpdateRequest
}

func (m *mockApplier) ApplyBatch(requests []tracker.UpdateRequest) []tracker.UpdateResult {
	m.ApplyBatchCalls = append(m.ApplyBatchCalls, requests)
	return m.ApplyBatchFunc(requests)
}

type mockNotifier struct {
	BatchAppliedCalls [][]tracker.UpdateResult
}

func (m *mockNotifier) BatchApplied(results []tracker.UpdateResult) {
	m.BatchAppliedCalls = append(m.BatchAppliedCalls, results)
}
