package compiler_test

import (
	"testing"

	"github.com/maya-venkatesan/loom/pkg/canvas"
	"github.com/maya-venkatesan/loom/pkg/compiler"
)

func TestNames_Slugification(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		label string
		want  string
	}{
		{"Fetch Data", "fetch-data"},
		{"HTTP  Request!!", "http-request"},
		{"  spaced  out  ", "spaced-out"},
		{"Ünïcode Päth", "n-code-p-th"},
		{"42 things", "42-things"},
		{"___", "node-a"}, // falls through to the canvas id
	} {
		result := compiler.Build(&canvas.Snapshot{
			Nodes: []canvas.Node{{ID: "node a", Data: map[string]any{"label": tc.label}}},
		})
		got := result.Graph.Nodes[1].Name
		if got != tc.want {
			t.Errorf("label %q: name = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestNames_FallbackChain(t *testing.T) {
	t.Parallel()

	// No label: the canvas id is slugified.
	result := compiler.Build(&canvas.Snapshot{
		Nodes: []canvas.Node{{ID: "Node_17", Data: map[string]any{}}},
	})
	if got := result.Graph.Nodes[1].Name; got != "node-17" {
		t.Errorf("name = %q, want node-17 from the canvas id", got)
	}

	// Neither label nor id slugifies: positional fallback.
	result = compiler.Build(&canvas.Snapshot{
		Nodes: []canvas.Node{
			{ID: "???", Data: map[string]any{}},
			{ID: "!!!", Data: map[string]any{"label": "•••"}},
		},
	})
	if got := result.Graph.Nodes[1].Name; got != "node-1" {
		t.Errorf("first name = %q, want node-1", got)
	}
	if got := result.Graph.Nodes[2].Name; got != "node-2" {
		t.Errorf("second name = %q, want node-2", got)
	}
}

func TestNames_SuffixesAreFirstFit(t *testing.T) {
	t.Parallel()
	nodes := make([]canvas.Node, 4)
	for i := range nodes {
		nodes[i] = canvas.Node{
			ID:   string(rune('a' + i)),
			Data: map[string]any{"label": "Step"},
		}
	}
	result := compiler.Build(&canvas.Snapshot{Nodes: nodes})

	want := []string{"step", "step-2", "step-3", "step-4"}
	for i, w := range want {
		if got := result.Graph.Nodes[i+1].Name; got != w {
			t.Errorf("node %d: name = %q, want %q", i, got, w)
		}
	}
}

func TestNames_SentinelsAreReserved(t *testing.T) {
	t.Parallel()
	result := compiler.Build(&canvas.Snapshot{
		Nodes: []canvas.Node{
			{ID: "a", Data: map[string]any{"label": "START"}},
			{ID: "b", Data: map[string]any{"label": "end"}},
		},
	})
	if got := result.Graph.Nodes[1].Name; got != "start" {
		t.Errorf("name = %q, want start (lowercased, distinct from the sentinel)", got)
	}
	if got := result.Graph.Nodes[2].Name; got != "end" {
		t.Errorf("name = %q, want end", got)
	}
}

func TestNames_SuffixCollisionWithAuthoredLabel(t *testing.T) {
	t.Parallel()

	// An authored "step-2" occupies the slot a duplicate "step" would
	// otherwise take; the duplicate skips to the next free suffix.
	result := compiler.Build(&canvas.Snapshot{
		Nodes: []canvas.Node{
			{ID: "a", Data: map[string]any{"label": "step"}},
			{ID: "b", Data: map[string]any{"label": "step-2"}},
			{ID: "c", Data: map[string]any{"label": "step"}},
		},
	})
	want := []string{"step", "step-2", "step-3"}
	for i, w := range want {
		if got := result.Graph.Nodes[i+1].Name; got != w {
			t.Errorf("node %d: name = %q, want %q", i, got, w)
		}
	}
}
