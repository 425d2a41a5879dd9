package lint_test

import (
	"strings"
	"testing"

	"github.com/maya-venkatesan/loom/pkg/canvas"
	"github.com/maya-venkatesan/loom/pkg/lint"
)

func findError(errs []lint.LintError, fragment string) bool {
	for _, e := range errs {
		if strings.Contains(e.Error(), fragment) {
			return true
		}
	}
	return false
}

func TestLint_CleanCanvas(t *testing.T) {
	t.Parallel()
	snap := &canvas.Snapshot{
		Nodes: []canvas.Node{
			{ID: "a", Data: map[string]any{"label": "Fetch"}},
			{ID: "b", Data: map[string]any{"label": "Store"}},
		},
		Edges: []canvas.Edge{{ID: "e1", Source: "a", Target: "b"}},
	}
	if errs := lint.Lint(snap); len(errs) != 0 {
		t.Errorf("errors = %v, want none", errs)
	}
	if err := lint.LintErr(snap); err != nil {
		t.Errorf("LintErr = %v, want nil", err)
	}
}

func TestLint_NilSnapshot(t *testing.T) {
	t.Parallel()
	if errs := lint.Lint(nil); errs != nil {
		t.Errorf("errors = %v, want nil", errs)
	}
}

func TestLint_DuplicateNodeIDs(t *testing.T) {
	t.Parallel()
	snap := &canvas.Snapshot{
		Nodes: []canvas.Node{
			{ID: "dup", Data: map[string]any{}},
			{ID: "dup", Data: map[string]any{}},
		},
	}
	errs := lint.Lint(snap)
	if !findError(errs, "duplicate canvas node id") {
		t.Errorf("errors = %v, want duplicate id finding", errs)
	}
}

func TestLint_DanglingEdges(t *testing.T) {
	t.Parallel()
	snap := &canvas.Snapshot{
		Nodes: []canvas.Node{
			{ID: "a", Data: map[string]any{}},
			{ID: "note", Shape: "stickyNote", Data: map[string]any{}},
		},
		Edges: []canvas.Edge{
			{ID: "e1", Source: "a", Target: "ghost"},
			{ID: "e2", Source: "note", Target: "a"},
		},
	}
	errs := lint.Lint(snap)
	if !findError(errs, `non-executable target "ghost"`) {
		t.Errorf("errors = %v, want dangling target finding", errs)
	}
	if !findError(errs, `non-executable source "note"`) {
		t.Errorf("errors = %v, want decorative source finding", errs)
	}
}

func TestLint_InvalidCronExpression(t *testing.T) {
	t.Parallel()
	snap := &canvas.Snapshot{
		Nodes: []canvas.Node{
			{ID: "cr", Data: map[string]any{
				"backendType": "CronTriggerNode",
				"expression":  "99 * * * *",
			}},
		},
	}
	errs := lint.Lint(snap)
	if !findError(errs, "invalid cron expression") {
		t.Errorf("errors = %v, want cron finding", errs)
	}
}

func TestLint_CronDescriptorAndEmptyAccepted(t *testing.T) {
	t.Parallel()
	for _, expr := range []string{"@hourly", "*/5 * * * *", ""} {
		snap := &canvas.Snapshot{
			Nodes: []canvas.Node{
				{ID: "cr", Data: map[string]any{
					"backendType": "CronTriggerNode",
					"expression":  expr,
				}},
			},
		}
		if errs := lint.Lint(snap); len(errs) != 0 {
			t.Errorf("expression %q: errors = %v, want none", expr, errs)
		}
	}
}

func TestLint_WebhookRateLimitNonNumeric(t *testing.T) {
	t.Parallel()
	snap := &canvas.Snapshot{
		Nodes: []canvas.Node{
			{ID: "wh", Data: map[string]any{
				"backendType": "WebhookTriggerNode",
				"rate_limit":  map[string]any{"limit": "lots", "interval_seconds": 60},
			}},
		},
	}
	errs := lint.Lint(snap)
	if !findError(errs, "rate_limit needs numeric") {
		t.Errorf("errors = %v, want rate_limit finding", errs)
	}
}

func TestLint_SwitchDuplicateBranchKeys(t *testing.T) {
	t.Parallel()
	snap := &canvas.Snapshot{
		Nodes: []canvas.Node{
			{ID: "sw", Data: map[string]any{
				"backendType": "SwitchNode",
				"cases": []any{
					map[string]any{"branchKey": "hot"},
					map[string]any{"branchKey": "hot"},
				},
			}},
		},
		Edges: []canvas.Edge{{ID: "e1", Source: "sw", Target: "sw"}},
	}
	errs := lint.Lint(snap)
	if !findError(errs, `duplicate switch branch key "hot"`) {
		t.Errorf("errors = %v, want duplicate key finding", errs)
	}
}

func TestLint_ControlFlowWithoutOutgoingEdges(t *testing.T) {
	t.Parallel()
	snap := &canvas.Snapshot{
		Nodes: []canvas.Node{
			{ID: "if", Data: map[string]any{"backendType": "IfElseNode"}},
		},
	}
	errs := lint.Lint(snap)
	if !findError(errs, "no outgoing edges") {
		t.Errorf("errors = %v, want control-flow finding", errs)
	}
}

func TestLintErr_CombinesFindings(t *testing.T) {
	t.Parallel()
	snap := &canvas.Snapshot{
		Nodes: []canvas.Node{
			{ID: "dup", Data: map[string]any{}},
			{ID: "dup", Data: map[string]any{}},
		},
		Edges: []canvas.Edge{{ID: "e1", Source: "dup", Target: "ghost"}},
	}
	err := lint.LintErr(snap)
	if err == nil {
		t.Fatal("LintErr = nil, want combined error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "canvas lint failed:") {
		t.Errorf("message = %q, want canvas lint failed prefix", msg)
	}
	if !strings.Contains(msg, "duplicate canvas node id") || !strings.Contains(msg, "ghost") {
		t.Errorf("message = %q, want both findings listed", msg)
	}
}
