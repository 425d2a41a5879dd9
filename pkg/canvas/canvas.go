// Package canvas defines the editor-side snapshot of a workflow: the node
// and edge arrays the visual editor exports before a build or save action.
// The compiler treats a Snapshot as immutable input.
package canvas

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Node is a single canvas node as exported by the editor. Shape holds the
// UI widget kind (e.g. "stickyNote"); everything semantic lives in Data.
type Node struct {
	ID    string         `json:"id"`
	Shape string         `json:"type,omitempty"`
	Data  map[string]any `json:"data"`
}

// Edge is a directed canvas connection. SourceHandle carries the chosen
// branch/case key when the source is a control-flow node.
type Edge struct {
	ID           string `json:"id,omitempty"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
}

// Snapshot is a full canvas export: every node and edge, in editor order.
// Order is significant downstream — node naming and IR node position both
// follow the array order of this snapshot.
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Decode parses a JSON canvas export into a Snapshot.
func Decode(src []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(src, &s); err != nil {
		return nil, fmt.Errorf("canvas decode error: %w", err)
	}
	return &s, nil
}

// Label returns the node's human label, falling back to the canvas id.
func (n Node) Label() string {
	if l := AsString(n.Data["label"]); l != "" {
		return l
	}
	return n.ID
}

// SemanticKind returns the semantic node kind from data.type (e.g.
// "annotation", "python"). Distinct from Shape, which is the UI widget.
func (n Node) SemanticKind() string {
	return strings.TrimSpace(AsString(n.Data["type"]))
}

// BackendKind returns the trimmed backend node kind from data.backendType,
// or "" when absent.
func (n Node) BackendKind() string {
	return strings.TrimSpace(AsString(n.Data["backendType"]))
}

// Decorative reports whether the node is editor chrome (annotations and
// sticky notes) that never reaches the compiled graph.
func (n Node) Decorative() bool {
	if n.Shape == "stickyNote" || n.Shape == "annotation" {
		return true
	}
	switch n.SemanticKind() {
	case "annotation", "stickyNote", "sticky_note":
		return true
	}
	return false
}
