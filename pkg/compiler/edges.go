package compiler

import (
	"fmt"

	"github.com/maya-venkatesan/loom/pkg/canvas"
)

// edgeBuilder classifies canvas edges into plain successors and
// conditional-edge contributions, then completes connectivity against the
// START/END sentinels.
type edgeBuilder struct {
	canvasToGraph map[string]string

	// branchPath maps a control-flow node's canvas id to the runtime
	// expression the engine evaluates to pick its branch. A canvas id
	// present here never produces a plain edge as a source.
	branchPath map[string]string

	// defaultKey maps a switch node's canvas id to its default branch key.
	defaultKey map[string]string

	edges     []Edge
	conds     []ConditionalEdge
	condIndex map[string]int // conditional source name → index into conds
	dropped   []DroppedEdge
}

func newEdgeBuilder(canvasToGraph map[string]string) *edgeBuilder {
	return &edgeBuilder{
		canvasToGraph: canvasToGraph,
		branchPath:    make(map[string]string),
		defaultKey:    make(map[string]string),
		condIndex:     make(map[string]int),
	}
}

// add classifies one canvas edge. Edges whose endpoints do not resolve to
// an IR node are dropped without failing the build; the drop is recorded
// so callers can surface a warning if they choose to.
func (b *edgeBuilder) add(e canvas.Edge) {
	srcName, ok := b.canvasToGraph[e.Source]
	if !ok {
		b.drop(e, fmt.Sprintf("source %q does not resolve to a graph node", e.Source))
		return
	}
	tgtName, ok := b.canvasToGraph[e.Target]
	if !ok {
		b.drop(e, fmt.Sprintf("target %q does not resolve to a graph node", e.Target))
		return
	}

	path, conditional := b.branchPath[e.Source]
	if !conditional {
		b.edges = append(b.edges, Edge{Source: srcName, Target: tgtName})
		return
	}

	defKey, hasDefault := b.defaultKey[e.Source]
	handle := e.SourceHandle
	switch {
	case hasDefault && (handle == defKey || handle == ""):
		b.cond(srcName, path).Default = tgtName
	case handle != "":
		b.cond(srcName, path).Mapping[handle] = tgtName
	default:
		// No handle and no default key: nothing to route on. The edge
		// contributes nothing; connectivity completion will reattach the
		// target if it ends up orphaned.
	}
}

func (b *edgeBuilder) drop(e canvas.Edge, reason string) {
	b.dropped = append(b.dropped, DroppedEdge{
		EdgeID: e.ID,
		Source: e.Source,
		Target: e.Target,
		Reason: reason,
	})
}

// cond returns the single ConditionalEdge entry for a source, creating it
// on first contribution. Lazy creation keeps no-op entries (a conditional
// source whose every edge was dropped) out of the output entirely.
func (b *edgeBuilder) cond(sourceName, path string) *ConditionalEdge {
	if i, ok := b.condIndex[sourceName]; ok {
		return &b.conds[i]
	}
	b.conds = append(b.conds, ConditionalEdge{
		Source:  sourceName,
		Path:    path,
		Mapping: make(map[string]string),
	})
	b.condIndex[sourceName] = len(b.conds) - 1
	return &b.conds[len(b.conds)-1]
}

// complete synthesizes START/END edges so every serialized node has at
// least one incoming and one outgoing path. nodeNames is the serialized
// node list in canvas order, which keeps the synthesized edges stable
// across builds.
func (b *edgeBuilder) complete(nodeNames []string) {
	if len(nodeNames) == 0 {
		b.edges = []Edge{{Source: StartName, Target: EndName}}
		return
	}

	incoming := make(map[string]bool)
	outgoing := make(map[string]bool)
	for _, e := range b.edges {
		incoming[e.Target] = true
		outgoing[e.Source] = true
	}
	for _, c := range b.conds {
		outgoing[c.Source] = true
		for _, target := range c.Mapping {
			incoming[target] = true
		}
		if c.Default != "" {
			incoming[c.Default] = true
		}
	}

	for _, name := range nodeNames {
		if !incoming[name] {
			b.edges = append(b.edges, Edge{Source: StartName, Target: name})
		}
	}
	for _, name := range nodeNames {
		if !outgoing[name] {
			b.edges = append(b.edges, Edge{Source: name, Target: EndName})
		}
	}
}
