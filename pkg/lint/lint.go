// Package lint checks a canvas snapshot for authoring mistakes the
// compiler deliberately tolerates. The compiler is total — it silently
// drops dangling edges and coerces malformed fields — so anything a
// workflow author should hear about must be reported here instead.
package lint

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/maya-venkatesan/loom/pkg/canvas"
	"github.com/maya-venkatesan/loom/pkg/compiler"
)

// LintError describes a problem in a canvas snapshot.
type LintError struct {
	NodeID  string
	Message string
}

func (e LintError) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("node %q: %s", e.NodeID, e.Message)
	}
	return e.Message
}

// cronParser accepts the standard five-field crontab format plus
// descriptors like @hourly, matching what the scheduler side supports.
var cronParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Lint checks a snapshot and returns all discovered errors, not just the
// first.
func Lint(snap *canvas.Snapshot) []LintError {
	if snap == nil {
		return nil
	}
	var errs []LintError

	// Duplicate canvas ids shadow each other in the id maps.
	seen := make(map[string]bool, len(snap.Nodes))
	serializable := make(map[string]bool, len(snap.Nodes))
	for _, n := range snap.Nodes {
		if seen[n.ID] {
			errs = append(errs, LintError{NodeID: n.ID, Message: "duplicate canvas node id"})
		}
		seen[n.ID] = true
		if !n.Decorative() {
			serializable[n.ID] = true
		}
	}

	// Edges the compiler would silently drop.
	for _, e := range snap.Edges {
		if !serializable[e.Source] {
			errs = append(errs, LintError{Message: fmt.Sprintf(
				"edge %s→%s references non-executable source %q", e.Source, e.Target, e.Source)})
		}
		if !serializable[e.Target] {
			errs = append(errs, LintError{Message: fmt.Sprintf(
				"edge %s→%s references non-executable target %q", e.Source, e.Target, e.Target)})
		}
	}

	// Per-kind field checks.
	for _, n := range snap.Nodes {
		if n.Decorative() {
			continue
		}
		errs = append(errs, lintNode(n, snap)...)
	}

	return errs
}

func lintNode(n canvas.Node, snap *canvas.Snapshot) []LintError {
	var errs []LintError
	kind := n.BackendKind()

	switch compiler.Kind(kind) {
	case compiler.KindCronTrigger:
		expr := strings.TrimSpace(canvas.AsString(n.Data["expression"]))
		if expr != "" {
			if _, err := cronParser.Parse(expr); err != nil {
				errs = append(errs, LintError{NodeID: n.ID,
					Message: fmt.Sprintf("invalid cron expression %q: %v", expr, err)})
			}
		}

	case compiler.KindWebhookTrigger:
		if rl := canvas.AsMap(n.Data["rate_limit"]); rl != nil {
			_, limitOK := canvas.AsNumber(rl["limit"])
			_, intervalOK := canvas.AsNumber(rl["interval_seconds"])
			if !limitOK || !intervalOK {
				errs = append(errs, LintError{NodeID: n.ID,
					Message: "rate_limit needs numeric limit and interval_seconds; it will be dropped"})
			}
		}

	case compiler.KindSwitch:
		keys := make(map[string]bool)
		for _, item := range canvas.AsList(n.Data["cases"]) {
			key := strings.TrimSpace(canvas.AsString(canvas.AsMap(item)["branchKey"]))
			if key == "" {
				continue
			}
			if keys[key] {
				errs = append(errs, LintError{NodeID: n.ID,
					Message: fmt.Sprintf("duplicate switch branch key %q", key)})
			}
			keys[key] = true
		}
	}

	// A control-flow node with no outgoing edge routes nowhere; the
	// compiler will wire it straight to END, which is rarely intended.
	switch compiler.Kind(kind) {
	case compiler.KindIfElse, compiler.KindSwitch, compiler.KindWhile:
		hasOut := false
		for _, e := range snap.Edges {
			if e.Source == n.ID {
				hasOut = true
				break
			}
		}
		if !hasOut {
			errs = append(errs, LintError{NodeID: n.ID, Message: "control-flow node has no outgoing edges"})
		}
	}

	return errs
}

// LintErr calls Lint and returns nil when clean, or a combined error
// listing every finding.
func LintErr(snap *canvas.Snapshot) error {
	errs := Lint(snap)
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("canvas lint failed:\n  %s", strings.Join(msgs, "\n  "))
}
