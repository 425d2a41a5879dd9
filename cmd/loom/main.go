package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maya-venkatesan/loom/pkg/canvas"
	"github.com/maya-venkatesan/loom/pkg/compiler"
	"github.com/maya-venkatesan/loom/pkg/lint"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "loom",
		Short: "Loom — canvas workflow graph compiler",
		Long: `Loom compiles visual-editor canvas exports into the graph IR the
workflow engine executes.

Each canvas node is normalized by a kind-specific serializer; control-flow
nodes (if/else, switch, while) become conditional edges with branch
routing, and START/END sentinels bound the resulting graph.`,
	}
	root.AddCommand(buildCmd())
	root.AddCommand(lintCmd())
	root.AddCommand(graphCmd())
	return root
}

// ─── build ────────────────────────────────────────────────────────────────────

func buildCmd() *cobra.Command {
	var (
		output   string
		withMaps bool
	)

	cmd := &cobra.Command{
		Use:   "build <canvas.json>",
		Short: "Compile a canvas export into graph IR JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			snap, err := readSnapshot(args[0])
			if err != nil {
				return err
			}

			result := compiler.Build(snap)
			for _, d := range result.Dropped {
				fmt.Fprintf(os.Stderr, "warning: dropped edge %s→%s: %s\n", d.Source, d.Target, d.Reason)
			}

			var payload any = result.Graph
			if withMaps {
				payload = result
			}
			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal result: %w", err)
			}
			data = append(data, '\n')

			if output == "" || output == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write IR JSON to file instead of stdout")
	cmd.Flags().BoolVar(&withMaps, "maps", false, "include canvas↔graph id maps in the output")
	return cmd
}

// ─── lint ─────────────────────────────────────────────────────────────────────

func lintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <canvas.json>",
		Short: "Check a canvas export without compiling it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			snap, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			if lintErr := lint.LintErr(snap); lintErr != nil {
				return lintErr
			}
			fmt.Printf("OK: canvas is clean (%d nodes, %d edges)\n",
				len(snap.Nodes), len(snap.Edges))
			return nil
		},
	}
	return cmd
}

// ─── graph ────────────────────────────────────────────────────────────────────

func graphCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "graph <canvas.json>",
		Short: "Print a human-readable summary of the compiled graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			snap, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			result := compiler.Build(snap)

			switch strings.ToLower(format) {
			case "dot":
				out, err := renderDOT(&result.Graph)
				if err != nil {
					return err
				}
				fmt.Print(out)
			case "text", "":
				fmt.Print(renderText(&result.Graph))
			default:
				return fmt.Errorf("unknown format %q: use text or dot", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or dot")
	return cmd
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func readSnapshot(path string) (*canvas.Snapshot, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read canvas file: %w", err)
	}
	snap, err := canvas.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("parse canvas: %w", err)
	}
	return snap, nil
}
