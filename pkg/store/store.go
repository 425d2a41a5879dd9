// Package store persists compiled workflows: the canvas snapshot the
// author saved, the graph IR the compiler produced from it, and the two
// id maps that tie IR-level run telemetry back to canvas nodes.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/maya-venkatesan/loom/pkg/canvas"
	"github.com/maya-venkatesan/loom/pkg/compiler"
)

var (
	ErrWorkflowNotFound = errors.New("store: workflow not found")
)

// Workflow is one saved compile result.
type Workflow struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Canvas    *canvas.Snapshot  `json:"canvas"`
	Graph     compiler.Graph    `json:"graph"`
	CanvasMap map[string]string `json:"canvasToGraph"`
	GraphMap  map[string]string `json:"graphToCanvas"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Store defines the contract for persisting and retrieving workflows.
type Store interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// Workflows
	SaveWorkflow(ctx context.Context, w *Workflow) (*Workflow, error)
	GetWorkflow(ctx context.Context, id string) (*Workflow, error)
	ListWorkflows(ctx context.Context) ([]Workflow, error)
	DeleteWorkflow(ctx context.Context, id string) error
}
