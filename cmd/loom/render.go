package main

import (
	"fmt"
	"sort"
	"strings"

	gographviz "github.com/awalterschulze/gographviz"

	"github.com/maya-venkatesan/loom/pkg/compiler"
)

// renderText produces the human-readable summary of a compiled graph.
func renderText(g *compiler.Graph) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Graph: %d nodes, %d edges, %d conditional edges\n",
		len(g.Nodes), len(g.Edges), len(g.ConditionalEdges))

	// Calculate column width.
	maxNameLen := 4
	for _, n := range g.Nodes {
		if len(n.Name) > maxNameLen {
			maxNameLen = len(n.Name)
		}
	}

	fmt.Fprintf(&sb, "\nNodes:\n")
	for _, n := range g.Nodes {
		display := n.DisplayName
		if display != "" && display != n.Name {
			display = "  (" + display + ")"
		} else {
			display = ""
		}
		fmt.Fprintf(&sb, "  %-*s  %s%s\n", maxNameLen, n.Name, n.Type, display)
	}

	fmt.Fprintf(&sb, "\nEdges:\n")
	maxFromLen := 4
	for _, e := range g.Edges {
		if len(e.Source) > maxFromLen {
			maxFromLen = len(e.Source)
		}
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&sb, "  %-*s  →  %s\n", maxFromLen, e.Source, e.Target)
	}

	if len(g.ConditionalEdges) > 0 {
		fmt.Fprintf(&sb, "\nConditional edges:\n")
		for _, c := range g.ConditionalEdges {
			fmt.Fprintf(&sb, "  %s  on %s\n", c.Source, c.Path)
			for _, key := range sortedKeys(c.Mapping) {
				fmt.Fprintf(&sb, "    %-10s →  %s\n", key, c.Mapping[key])
			}
			if c.Default != "" {
				fmt.Fprintf(&sb, "    %-10s →  %s\n", "(default)", c.Default)
			}
		}
	}

	return sb.String()
}

// renderDOT produces a DOT digraph of the compiled graph. Conditional
// routes are drawn as labelled dashed edges.
func renderDOT(g *compiler.Graph) (string, error) {
	const graphName = "workflow"

	dot := gographviz.NewGraph()
	if err := dot.SetName(graphName); err != nil {
		return "", fmt.Errorf("dot render: %w", err)
	}
	if err := dot.SetDir(true); err != nil {
		return "", fmt.Errorf("dot render: %w", err)
	}

	for _, n := range g.Nodes {
		attrs := map[string]string{"label": dotQuote(n.Name)}
		if n.Name == compiler.StartName || n.Name == compiler.EndName {
			attrs["shape"] = "doublecircle"
		} else {
			attrs["shape"] = "box"
		}
		if err := dot.AddNode(graphName, dotQuote(n.Name), attrs); err != nil {
			return "", fmt.Errorf("dot render node %s: %w", n.Name, err)
		}
	}

	for _, e := range g.Edges {
		if err := dot.AddEdge(dotQuote(e.Source), dotQuote(e.Target), true, nil); err != nil {
			return "", fmt.Errorf("dot render edge %s→%s: %w", e.Source, e.Target, err)
		}
	}

	for _, c := range g.ConditionalEdges {
		for _, key := range sortedKeys(c.Mapping) {
			target := c.Mapping[key]
			attrs := map[string]string{"label": dotQuote(key), "style": "dashed"}
			if err := dot.AddEdge(dotQuote(c.Source), dotQuote(target), true, attrs); err != nil {
				return "", fmt.Errorf("dot render branch %s→%s: %w", c.Source, target, err)
			}
		}
		if c.Default != "" {
			attrs := map[string]string{"label": dotQuote("default"), "style": "dashed"}
			if err := dot.AddEdge(dotQuote(c.Source), dotQuote(c.Default), true, attrs); err != nil {
				return "", fmt.Errorf("dot render default %s→%s: %w", c.Source, c.Default, err)
			}
		}
	}

	return dot.String(), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// dotQuote returns s as a quoted DOT identifier.
func dotQuote(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
