package compiler

import (
	"fmt"
	"math"
	"strings"

	"github.com/maya-venkatesan/loom/pkg/canvas"
)

// Kind identifies a backend node kind (the data.backendType value).
type Kind string

const (
	KindPythonCode     Kind = "PythonCode"
	KindIfElse         Kind = "IfElseNode"
	KindSwitch         Kind = "SwitchNode"
	KindWhile          Kind = "WhileNode"
	KindSetVariable    Kind = "SetVariableNode"
	KindDelay          Kind = "DelayNode"
	KindMongoDB        Kind = "MongoDBNode"
	KindSlack          Kind = "SlackNode"
	KindTelegram       Kind = "MessageTelegram"
	KindCronTrigger    Kind = "CronTriggerNode"
	KindManualTrigger  Kind = "ManualTriggerNode"
	KindHTTPPolling    Kind = "HttpPollingTriggerNode"
	KindWebhookTrigger Kind = "WebhookTriggerNode"
)

// serializer produces the kind-specific IR fields for one canvas node.
// Serializers are total: malformed input degrades to defaults, it never
// aborts the build.
type serializer func(n canvas.Node) map[string]any

// serializers maps each known kind to its field serializer. A kind absent
// from this table still compiles — it gets base fields only and its config
// is whatever the engine defines for that type.
var serializers = map[Kind]serializer{
	KindPythonCode:     serializePythonCode,
	KindIfElse:         serializeIfElse,
	KindSwitch:         serializeSwitch,
	KindWhile:          serializeWhile,
	KindSetVariable:    serializeSetVariable,
	KindDelay:          serializeDelay,
	KindMongoDB:        serializeMongoDB,
	KindSlack:          serializeSlack,
	KindTelegram:       serializeTelegram,
	KindCronTrigger:    serializeCronTrigger,
	KindManualTrigger:  serializeManualTrigger,
	KindHTTPPolling:    serializeHTTPPolling,
	KindWebhookTrigger: serializeWebhookTrigger,
}

// nodeKind resolves a canvas node's backend kind, defaulting blank or
// absent backendType to PythonCode.
func nodeKind(n canvas.Node) Kind {
	if k := n.BackendKind(); k != "" {
		return Kind(k)
	}
	return KindPythonCode
}

// serializeFields dispatches to the kind's serializer, returning nil
// (base fields only) for unknown kinds.
func serializeFields(n canvas.Node) map[string]any {
	if fn, ok := serializers[nodeKind(n)]; ok {
		return fn(n)
	}
	return nil
}

// ── code ──────────────────────────────────────────────────────────────────────

const (
	pythonSnippet  = "def main(context):\n    return context\n"
	genericSnippet = "def main(context):\n    return {}\n"
)

func serializePythonCode(n canvas.Node) map[string]any {
	code := canvas.AsString(n.Data["code"])
	if code == "" {
		if n.SemanticKind() == "python" {
			code = pythonSnippet
		} else {
			code = genericSnippet
		}
	}
	return map[string]any{"code": code}
}

// ── control flow ──────────────────────────────────────────────────────────────

// normalizeConditions rewrites a loose conditions array into the engine
// shape. Each condition gets a deterministic id when missing so repeated
// builds of the same canvas stay byte-identical.
func normalizeConditions(raw any, defaultOperator string) []map[string]any {
	items := canvas.AsList(raw)
	if len(items) == 0 {
		// A control-flow node with no authored conditions degrades to a
		// single always-truthy check rather than failing the build.
		return []map[string]any{{
			"id":             "cond-1",
			"operator":       "truthy",
			"case_sensitive": true,
		}}
	}

	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		src := canvas.AsMap(item)
		cond := make(map[string]any, len(src)+2)

		id := strings.TrimSpace(canvas.AsString(src["id"]))
		if id == "" {
			id = fmt.Sprintf("cond-%d", i+1)
		}
		cond["id"] = id

		op := strings.TrimSpace(canvas.AsString(src["operator"]))
		if op == "" {
			op = defaultOperator
		}
		cond["operator"] = op

		cs := true
		if b, ok := canvas.AsBool(src["caseSensitive"]); ok {
			cs = b
		}
		cond["case_sensitive"] = cs

		if v := canvas.AsString(src["variable"]); v != "" {
			cond["variable"] = v
		}
		if v, ok := src["value"]; ok {
			cond["value"] = v
		}
		out = append(out, cond)
	}
	return out
}

func conditionLogic(raw any) string {
	logic := strings.ToLower(strings.TrimSpace(canvas.AsString(raw)))
	if logic != "and" && logic != "or" {
		return "and"
	}
	return logic
}

func serializeIfElse(n canvas.Node) map[string]any {
	return map[string]any{
		"conditions":      normalizeConditions(n.Data["conditions"], "equals"),
		"condition_logic": conditionLogic(n.Data["conditionLogic"]),
	}
}

func serializeWhile(n canvas.Node) map[string]any {
	fields := map[string]any{
		"conditions":      normalizeConditions(n.Data["conditions"], "less_than"),
		"condition_logic": conditionLogic(n.Data["conditionLogic"]),
	}
	if max, ok := canvas.AsNumber(n.Data["maxIterations"]); ok {
		fields["max_iterations"] = max
	}
	return fields
}

func serializeSwitch(n canvas.Node) map[string]any {
	fields := map[string]any{}
	if v, ok := n.Data["value"]; ok {
		fields["value"] = v
	}
	cs := true
	if b, ok := canvas.AsBool(n.Data["caseSensitive"]); ok {
		cs = b
	}
	fields["case_sensitive"] = cs

	items := canvas.AsList(n.Data["cases"])
	cases := make([]map[string]any, 0, len(items))
	for i, item := range items {
		src := canvas.AsMap(item)
		key := strings.TrimSpace(canvas.AsString(src["branchKey"]))
		if key == "" {
			key = fmt.Sprintf("case_%d", i+1)
		}
		c := map[string]any{"branch_key": key}
		if v, ok := src["value"]; ok {
			c["value"] = v
		}
		cases = append(cases, c)
	}
	if len(cases) == 0 {
		cases = []map[string]any{{"branch_key": "case_1"}}
	}
	fields["cases"] = cases

	defKey := strings.TrimSpace(canvas.AsString(n.Data["defaultBranchKey"]))
	if defKey == "" {
		defKey = "default"
	}
	fields["default_branch_key"] = defKey
	return fields
}

// ── data & side effects ───────────────────────────────────────────────────────

// coerceScalar converts numeric strings to numbers; everything else
// passes through untouched.
func coerceScalar(v any) any {
	if s, ok := v.(string); ok {
		if f, ok := canvas.AsNumber(s); ok {
			return f
		}
	}
	return v
}

func serializeSetVariable(n canvas.Node) map[string]any {
	path := strings.TrimSpace(canvas.AsString(n.Data["targetPath"]))
	if path == "" {
		path = "context.value"
	}
	fields := map[string]any{"target_path": path}
	if v, ok := n.Data["value"]; ok {
		fields["value"] = coerceScalar(v)
	}
	if vars := canvas.AsMap(n.Data["variables"]); len(vars) > 0 {
		coerced := make(map[string]any, len(vars))
		for k, v := range vars {
			coerced[k] = coerceScalar(v)
		}
		fields["variables"] = coerced
	}
	return fields
}

func serializeDelay(n canvas.Node) map[string]any {
	dur, ok := canvas.AsNumber(n.Data["durationSeconds"])
	if !ok {
		dur = 0
	}
	return map[string]any{"duration_seconds": dur}
}

func serializeMongoDB(n canvas.Node) map[string]any {
	fields := map[string]any{}
	if db := strings.TrimSpace(canvas.AsString(n.Data["database"])); db != "" {
		fields["database"] = db
	}
	if coll := strings.TrimSpace(canvas.AsString(n.Data["collection"])); coll != "" {
		fields["collection"] = coll
	}
	op := strings.TrimSpace(canvas.AsString(n.Data["operation"]))
	if op == "" {
		op = "find"
	}
	fields["operation"] = op

	query := canvas.AsMap(n.Data["query"])
	if query == nil {
		query = map[string]any{}
	}
	fields["query"] = query
	return fields
}

func serializeSlack(n canvas.Node) map[string]any {
	fields := map[string]any{}
	if tool := strings.TrimSpace(canvas.AsString(n.Data["tool_name"])); tool != "" {
		fields["tool_name"] = tool
	}
	kwargs := canvas.AsMap(n.Data["kwargs"])
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	fields["kwargs"] = kwargs
	return fields
}

func serializeTelegram(n canvas.Node) map[string]any {
	fields := map[string]any{}
	for _, key := range []string{"token", "chat_id", "message", "parse_mode"} {
		if v := strings.TrimSpace(canvas.AsString(n.Data[key])); v != "" {
			fields[key] = v
		}
	}
	return fields
}

// floorAtLeastOne floors v to an integer, clamping to a minimum of 1.
func floorAtLeastOne(v float64) int {
	f := int(math.Floor(v))
	if f < 1 {
		return 1
	}
	return f
}
