// Command loom-server exposes the canvas compiler and the workflow store
// over a small JSON API for the visual editor.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maya-venkatesan/loom/pkg/canvas"
	"github.com/maya-venkatesan/loom/pkg/compiler"
	"github.com/maya-venkatesan/loom/pkg/lint"
	"github.com/maya-venkatesan/loom/pkg/store"
	"github.com/maya-venkatesan/loom/pkg/store/postgres"
)

func main() {
	cfgPath := os.Getenv("LOOM_CONFIG")
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is not set")
		os.Exit(1)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	var st store.Store = postgres.New(pool)

	app := fiber.New()

	// ── Schema ────────────────────────────────────────────────────────
	app.Post("/schema", func(c fiber.Ctx) error {
		if err := st.CreateSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema created"})
	})

	app.Delete("/schema", func(c fiber.Ctx) error {
		if err := st.DropSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema dropped"})
	})

	// ── Compile & lint ────────────────────────────────────────────────
	app.Post("/compile", func(c fiber.Ctx) error {
		var snap canvas.Snapshot
		if err := c.Bind().JSON(&snap); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		result := compiler.Build(&snap)
		return c.JSON(fiber.Map{
			"config":        result.Graph,
			"canvasToGraph": result.CanvasToGraph,
			"graphToCanvas": result.GraphToCanvas,
			"dropped_edges": result.Dropped,
		})
	})

	app.Post("/lint", func(c fiber.Ctx) error {
		var snap canvas.Snapshot
		if err := c.Bind().JSON(&snap); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		errs := lint.Lint(&snap)
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return c.JSON(fiber.Map{"ok": len(errs) == 0, "errors": msgs})
	})

	// ── Workflows ─────────────────────────────────────────────────────
	app.Post("/workflows", func(c fiber.Ctx) error {
		var body struct {
			ID     string          `json:"id"`
			Name   string          `json:"name"`
			Canvas canvas.Snapshot `json:"canvas"`
		}
		if err := c.Bind().JSON(&body); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}

		result := compiler.Build(&body.Canvas)
		w := &store.Workflow{
			ID:        body.ID,
			Name:      body.Name,
			Canvas:    &body.Canvas,
			Graph:     result.Graph,
			CanvasMap: result.CanvasToGraph,
			GraphMap:  result.GraphToCanvas,
		}
		saved, err := st.SaveWorkflow(c.Context(), w)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(saved)
	})

	app.Get("/workflows", func(c fiber.Ctx) error {
		ws, err := st.ListWorkflows(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(ws)
	})

	app.Get("/workflows/:id", func(c fiber.Ctx) error {
		w, err := st.GetWorkflow(c.Context(), c.Params("id"))
		if errors.Is(err, store.ErrWorkflowNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "workflow not found"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(w)
	})

	app.Delete("/workflows/:id", func(c fiber.Ctx) error {
		if err := st.DeleteWorkflow(c.Context(), c.Params("id")); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	slog.Info("listening", "addr", cfg.Listen)
	if err := app.Listen(cfg.Listen); err != nil {
		slog.Error("serve", "error", err)
		os.Exit(1)
	}
}
