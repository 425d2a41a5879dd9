// Package compiler turns a canvas snapshot into the graph IR consumed by
// the backend state-machine engine. The build is a pure function: it never
// fails, never mutates its input, and produces deterministic output for a
// fixed node/edge order.
package compiler

import "encoding/json"

// Sentinel node names. Every compiled graph starts at StartName and
// terminates at EndName; derived node names can never collide with them
// because derived names are lowercased slugs.
const (
	StartName = "START"
	EndName   = "END"
)

// Node is a single IR node. Fields holds the kind-specific configuration
// produced by that kind's serializer; it is flattened to the top level
// when the node is marshalled, matching the engine's wire shape.
type Node struct {
	Name        string
	Type        string
	DisplayName string
	CanvasID    string
	Fields      map[string]any
}

// MarshalJSON flattens Fields alongside the base keys.
func (n Node) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(n.Fields)+4)
	for k, v := range n.Fields {
		out[k] = v
	}
	out["name"] = n.Name
	out["type"] = n.Type
	if n.DisplayName != "" {
		out["display_name"] = n.DisplayName
	}
	if n.CanvasID != "" {
		out["canvas_id"] = n.CanvasID
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a Node from its flattened wire shape.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n.Name, _ = raw["name"].(string)
	n.Type, _ = raw["type"].(string)
	n.DisplayName, _ = raw["display_name"].(string)
	n.CanvasID, _ = raw["canvas_id"].(string)
	delete(raw, "name")
	delete(raw, "type")
	delete(raw, "display_name")
	delete(raw, "canvas_id")
	if len(raw) > 0 {
		n.Fields = raw
	}
	return nil
}

// Edge is an unconditional successor relation between IR node names.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// ConditionalEdge routes execution out of a control-flow node. Path is a
// runtime expression (results.<name>.branch) the engine evaluates; the
// resulting branch key selects a Mapping target, falling back to Default.
type ConditionalEdge struct {
	Source  string            `json:"source"`
	Path    string            `json:"path"`
	Mapping map[string]string `json:"mapping"`
	Default string            `json:"default,omitempty"`
}

// Graph is the engine-consumable IR.
type Graph struct {
	Nodes            []Node            `json:"nodes"`
	Edges            []Edge            `json:"edges"`
	ConditionalEdges []ConditionalEdge `json:"conditional_edges,omitempty"`
}

// DroppedEdge records a canvas edge the builder discarded because one of
// its endpoints did not resolve to an IR node. The default contract stays
// silent; callers that want to warn the author can inspect these.
type DroppedEdge struct {
	EdgeID string `json:"edge_id,omitempty"`
	Source string `json:"source"`
	Target string `json:"target"`
	Reason string `json:"reason"`
}

// Result is the output of a single Build call.
type Result struct {
	Graph Graph `json:"config"`

	// CanvasToGraph and GraphToCanvas are exact inverses restricted to
	// serializable canvas nodes. The editor persists them next to the
	// saved canvas so run telemetry keyed by IR name can be mapped back
	// to the originating canvas node.
	CanvasToGraph map[string]string `json:"canvasToGraph"`
	GraphToCanvas map[string]string `json:"graphToCanvas"`

	// Dropped lists edges discarded during classification.
	Dropped []DroppedEdge `json:"-"`
}
