package compiler

import (
	"fmt"

	"github.com/maya-venkatesan/loom/pkg/canvas"
)

// Build compiles a canvas snapshot into the engine IR. It is total: any
// snapshot, including nil, an empty canvas, nodes with empty data bags,
// or edges referencing unknown ids, produces a valid Result. Malformed
// node fields coerce to kind defaults instead of failing; user-facing
// validation belongs in the lint pass, not here.
//
// Output is deterministic for a fixed node/edge order. Naming is
// order-dependent on purpose: run history references IR names by value,
// so a reorder-only edit changes names but a plain rebuild never does.
func Build(snap *canvas.Snapshot) *Result {
	if snap == nil {
		snap = &canvas.Snapshot{}
	}

	names := newNameResolver()
	canvasToGraph := make(map[string]string)
	graphToCanvas := make(map[string]string)

	nodes := []Node{{Name: StartName, Type: StartName}}
	var nodeNames []string
	builder := newEdgeBuilder(canvasToGraph)

	for i, n := range snap.Nodes {
		if n.Decorative() {
			continue
		}
		name := names.resolve(
			canvas.AsString(n.Data["label"]),
			n.ID,
			fmt.Sprintf("node-%d", i+1),
		)
		canvasToGraph[n.ID] = name
		graphToCanvas[name] = n.ID

		kind := nodeKind(n)
		fields := serializeFields(n)
		nodes = append(nodes, Node{
			Name:        name,
			Type:        string(kind),
			DisplayName: n.Label(),
			CanvasID:    n.ID,
			Fields:      fields,
		})
		nodeNames = append(nodeNames, name)

		// Branch resolution happens inline with serialization: the
		// edge builder needs the path and default key before it sees
		// any edge out of this node.
		switch kind {
		case KindIfElse, KindSwitch, KindWhile:
			builder.branchPath[n.ID] = fmt.Sprintf("results.%s.branch", name)
		}
		if kind == KindSwitch {
			builder.defaultKey[n.ID] = canvas.AsString(fields["default_branch_key"])
		}
	}

	for _, e := range snap.Edges {
		builder.add(e)
	}
	builder.complete(nodeNames)

	nodes = append(nodes, Node{Name: EndName, Type: EndName})

	edges := builder.edges
	if edges == nil {
		edges = []Edge{}
	}

	return &Result{
		Graph: Graph{
			Nodes:            nodes,
			Edges:            edges,
			ConditionalEdges: builder.conds,
		},
		CanvasToGraph: canvasToGraph,
		GraphToCanvas: graphToCanvas,
		Dropped:       builder.dropped,
	}
}
