package main

import (
	"strings"
	"testing"

	"github.com/maya-venkatesan/loom/pkg/compiler"
)

func sampleGraph() *compiler.Graph {
	return &compiler.Graph{
		Nodes: []compiler.Node{
			{Name: "START", Type: "START"},
			{Name: "check", Type: "IfElseNode", DisplayName: "Check"},
			{Name: "assign", Type: "SetVariableNode", DisplayName: "Assign"},
			{Name: "END", Type: "END"},
		},
		Edges: []compiler.Edge{
			{Source: "START", Target: "check"},
			{Source: "assign", Target: "END"},
		},
		ConditionalEdges: []compiler.ConditionalEdge{
			{
				Source:  "check",
				Path:    "results.check.branch",
				Mapping: map[string]string{"true": "assign"},
				Default: "END",
			},
		},
	}
}

func TestRenderText(t *testing.T) {
	t.Parallel()
	out := renderText(sampleGraph())

	for _, want := range []string{
		"Graph: 4 nodes, 2 edges, 1 conditional edges",
		"check",
		"IfElseNode",
		"check  on results.check.branch",
		"(default)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderText_DeterministicMappingOrder(t *testing.T) {
	t.Parallel()
	g := sampleGraph()
	g.ConditionalEdges[0].Mapping = map[string]string{
		"zeta": "assign", "alpha": "assign", "mid": "assign",
	}
	out := renderText(g)
	alpha := strings.Index(out, "alpha")
	mid := strings.Index(out, "mid")
	zeta := strings.Index(out, "zeta")
	if !(alpha < mid && mid < zeta) {
		t.Errorf("mapping keys not sorted:\n%s", out)
	}
}

func TestRenderDOT(t *testing.T) {
	t.Parallel()
	out, err := renderDOT(sampleGraph())
	if err != nil {
		t.Fatalf("renderDOT: %v", err)
	}

	for _, want := range []string{
		"digraph workflow",
		`"START"->"check"`,
		"doublecircle",
		"dashed",
		`label="true"`,
		`label="default"`,
	} {
		if !strings.Contains(strings.ReplaceAll(out, " ", ""), strings.ReplaceAll(want, " ", "")) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
}
