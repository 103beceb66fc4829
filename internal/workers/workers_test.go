// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
)

// recordingWorker appends its id to a shared log on Start and Stop.
type recordingWorker struct {
	id  string
	log *[]string
}

func (r *recordingWorker) Start(context.Context) { *r.log = append(*r.log, "start:"+r.id) }
func (r *recordingWorker) Stop()                 { *r.log = append(*r.log, "stop:"+r.id) }

func TestWorkers_StartStopOrder(t *testing.T) {
	var log []string
	ws := NewWorkers(
		&recordingWorker{id: "a", log: &log},
		&recordingWorker{id: "b", log: &log},
		&recordingWorker{id: "c", log: &log},
	)

	ws.Start(context.Background())
	ws.Stop()

	expected := []string{"start:a", "start:b", "start:c", "stop:c", "stop:b", "stop:a"}
	if len(log) != len(expected) {
		t.Fatalf("expected %d calls, got %d: %v", len(expected), len(log), log)
	}
	for i, v := range expected {
		if log[i] != v {
			t.Errorf("expected log[%d]=%s, got %s", i, v, log[i])
		}
	}
}

func TestWorkers_SkipsNil(t *testing.T) {
	var log []string
	ws := NewWorkers(nil, &recordingWorker{id: "a", log: &log}, nil)

	ws.Start(context.Background())
	ws.Stop()

	if len(log) != 2 {
		t.Errorf("expected 2 calls, got %d: %v", len(log), log)
	}
}

func TestWorkers_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not panic on an empty group
	ws.Start(context.Background())
	ws.Stop()
}

func TestWorkers_ZeroValue(t *testing.T) {
	ws := &Workers{}

	// Should not panic when the workers field is nil
	ws.Start(context.Background())
	ws.Stop()
}
