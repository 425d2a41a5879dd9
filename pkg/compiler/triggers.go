package compiler

import (
	"strings"

	"github.com/maya-venkatesan/loom/pkg/canvas"
)

// Trigger-kind serializers. Triggers are ordinary IR nodes to the
// compiler; the engine decides what "being a trigger" means at runtime.

func serializeCronTrigger(n canvas.Node) map[string]any {
	expr := strings.TrimSpace(canvas.AsString(n.Data["expression"]))
	if expr == "" {
		expr = "0 * * * *"
	}
	tz := strings.TrimSpace(canvas.AsString(n.Data["timezone"]))
	if tz == "" {
		tz = "UTC"
	}
	fields := map[string]any{
		"expression": expr,
		"timezone":   tz,
	}
	if b, ok := canvas.AsBool(n.Data["allow_overlapping"]); ok {
		fields["allow_overlapping"] = b
	}
	if v := strings.TrimSpace(canvas.AsString(n.Data["start_at"])); v != "" {
		fields["start_at"] = v
	}
	if v := strings.TrimSpace(canvas.AsString(n.Data["end_at"])); v != "" {
		fields["end_at"] = v
	}
	return fields
}

func serializeManualTrigger(n canvas.Node) map[string]any {
	label := strings.TrimSpace(canvas.AsString(n.Data["label"]))
	if label == "" {
		label = "manual"
	}
	fields := map[string]any{"label": label}

	if actors := canvas.AsStringList(n.Data["allowed_actors"]); len(actors) > 0 {
		fields["allowed_actors"] = actors
	}
	if b, ok := canvas.AsBool(n.Data["require_comment"]); ok {
		fields["require_comment"] = b
	}
	if payload := canvas.AsMap(n.Data["default_payload"]); len(payload) > 0 {
		fields["default_payload"] = payload
	}
	cooldown, ok := canvas.AsNumber(n.Data["cooldown_seconds"])
	if !ok {
		cooldown = 0
	}
	fields["cooldown_seconds"] = cooldown
	return fields
}

func serializeHTTPPolling(n canvas.Node) map[string]any {
	fields := map[string]any{}
	if url := strings.TrimSpace(canvas.AsString(n.Data["url"])); url != "" {
		fields["url"] = url
	}

	method := strings.ToUpper(strings.TrimSpace(canvas.AsString(n.Data["method"])))
	if method == "" {
		method = "GET"
	}
	fields["method"] = method

	if headers := canvas.AsStringMap(n.Data["headers"]); headers != nil {
		fields["headers"] = headers
	}
	if params := canvas.AsStringMap(n.Data["query_params"]); params != nil {
		fields["query_params"] = params
	}
	if body := canvas.AsString(n.Data["body"]); body != "" {
		fields["body"] = body
	}

	interval, ok := canvas.AsNumber(n.Data["interval_seconds"])
	if !ok || interval <= 0 {
		interval = 300
	}
	fields["interval_seconds"] = interval

	timeout, ok := canvas.AsNumber(n.Data["timeout_seconds"])
	if !ok || timeout <= 0 {
		timeout = 30
	}
	fields["timeout_seconds"] = timeout

	// verify_tls stays on unless the author explicitly switched it off.
	verify := true
	if b, ok := canvas.AsBool(n.Data["verify_tls"]); ok && !b {
		verify = false
	}
	fields["verify_tls"] = verify

	if b, ok := canvas.AsBool(n.Data["follow_redirects"]); ok {
		fields["follow_redirects"] = b
	}
	if dedup := strings.TrimSpace(canvas.AsString(n.Data["deduplicate_on"])); dedup != "" {
		fields["deduplicate_on"] = dedup
	}
	return fields
}

func serializeWebhookTrigger(n canvas.Node) map[string]any {
	fields := map[string]any{}

	var methods []string
	for _, m := range canvas.AsStringList(n.Data["allowed_methods"]) {
		methods = append(methods, strings.ToUpper(m))
	}
	if len(methods) == 0 {
		methods = []string{"POST"}
	}
	fields["allowed_methods"] = methods

	if headers := canvas.AsStringMap(n.Data["required_headers"]); headers != nil {
		fields["required_headers"] = headers
	}
	if params := canvas.AsStringMap(n.Data["required_query_params"]); params != nil {
		fields["required_query_params"] = params
	}
	if h := strings.TrimSpace(canvas.AsString(n.Data["shared_secret_header"])); h != "" {
		fields["shared_secret_header"] = h
	}
	if s := canvas.AsString(n.Data["shared_secret"]); s != "" {
		fields["shared_secret"] = s
	}

	// The rate limit is kept only when both numbers parse; each is floored
	// with a minimum of 1 so a zero interval still yields a usable limit.
	if rl := canvas.AsMap(n.Data["rate_limit"]); rl != nil {
		limit, limitOK := canvas.AsNumber(rl["limit"])
		interval, intervalOK := canvas.AsNumber(rl["interval_seconds"])
		if limitOK && intervalOK {
			fields["rate_limit"] = map[string]any{
				"limit":            floorAtLeastOne(limit),
				"interval_seconds": floorAtLeastOne(interval),
			}
		}
	}
	return fields
}
