package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maya-venkatesan/loom/pkg/canvas"
	"github.com/maya-venkatesan/loom/pkg/store"
)

// SaveWorkflow inserts or replaces a workflow record. A workflow without
// an ID gets an auto-generated UUID. Returns the workflow with all fields
// filled in.
func (s *PGStore) SaveWorkflow(ctx context.Context, w *store.Workflow) (*store.Workflow, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}

	canvasJSON, err := json.Marshal(w.Canvas)
	if err != nil {
		return nil, fmt.Errorf("store: marshal canvas: %w", err)
	}
	graphJSON, err := json.Marshal(w.Graph)
	if err != nil {
		return nil, fmt.Errorf("store: marshal graph: %w", err)
	}
	canvasMapJSON, err := json.Marshal(w.CanvasMap)
	if err != nil {
		return nil, fmt.Errorf("store: marshal canvas map: %w", err)
	}
	graphMapJSON, err := json.Marshal(w.GraphMap)
	if err != nil {
		return nil, fmt.Errorf("store: marshal graph map: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.Exec(ctx, `
		INSERT INTO workflows (id, name, canvas, graph, canvas_to_graph, graph_to_canvas, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (id) DO UPDATE SET
			name            = EXCLUDED.name,
			canvas          = EXCLUDED.canvas,
			graph           = EXCLUDED.graph,
			canvas_to_graph = EXCLUDED.canvas_to_graph,
			graph_to_canvas = EXCLUDED.graph_to_canvas,
			updated_at      = EXCLUDED.updated_at`,
		w.ID, w.Name, canvasJSON, graphJSON, canvasMapJSON, graphMapJSON, now,
	)
	if err != nil {
		return nil, fmt.Errorf("store: save workflow %s: %w", w.ID, err)
	}

	return s.GetWorkflow(ctx, w.ID)
}

// GetWorkflow retrieves a workflow by ID.
func (s *PGStore) GetWorkflow(ctx context.Context, id string) (*store.Workflow, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, canvas, graph, canvas_to_graph, graph_to_canvas, created_at, updated_at
		FROM workflows WHERE id = $1`, id)

	w, err := scanWorkflow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrWorkflowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get workflow %s: %w", id, err)
	}
	return w, nil
}

// ListWorkflows returns all workflows, newest first.
func (s *PGStore) ListWorkflows(ctx context.Context) ([]store.Workflow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, canvas, graph, canvas_to_graph, graph_to_canvas, created_at, updated_at
		FROM workflows ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: query workflows: %w", err)
	}
	defer rows.Close()

	var out []store.Workflow
	for rows.Next() {
		w, err := scanWorkflow(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan workflow: %w", err)
		}
		out = append(out, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: rows workflows: %w", err)
	}
	return out, nil
}

// DeleteWorkflow removes a workflow. No error if the id doesn't exist.
func (s *PGStore) DeleteWorkflow(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM workflows WHERE id = $1`, id); err != nil {
		return fmt.Errorf("store: delete workflow %s: %w", id, err)
	}
	return nil
}

func scanWorkflow(row pgx.Row) (*store.Workflow, error) {
	var (
		w             store.Workflow
		canvasJSON    []byte
		graphJSON     []byte
		canvasMapJSON []byte
		graphMapJSON  []byte
	)
	if err := row.Scan(&w.ID, &w.Name, &canvasJSON, &graphJSON,
		&canvasMapJSON, &graphMapJSON, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}

	w.Canvas = &canvas.Snapshot{}
	if err := json.Unmarshal(canvasJSON, w.Canvas); err != nil {
		return nil, fmt.Errorf("unmarshal canvas: %w", err)
	}
	if err := json.Unmarshal(graphJSON, &w.Graph); err != nil {
		return nil, fmt.Errorf("unmarshal graph: %w", err)
	}
	if err := json.Unmarshal(canvasMapJSON, &w.CanvasMap); err != nil {
		return nil, fmt.Errorf("unmarshal canvas map: %w", err)
	}
	if err := json.Unmarshal(graphMapJSON, &w.GraphMap); err != nil {
		return nil, fmt.Errorf("unmarshal graph map: %w", err)
	}
	return &w, nil
}
