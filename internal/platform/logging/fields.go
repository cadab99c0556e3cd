package logging

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const badKey = "!BADKEY"

// fields converts alternating key/value args. A zap.Field may be passed in
// place of a pair. A non-string key is logged under badKey with its value.
func fields(args []any) []zap.Field {
	if len(args) == 0 {
		return nil
	}

	out := make([]zap.Field, 0, (len(args)+1)/2)
	for i := 0; i < len(args); {
		if f, ok := args[i].(zap.Field); ok {
			out = append(out, f)
			i++
			continue
		}

		key, ok := args[i].(string)
		if !ok {
			out = append(out, zap.Any(badKey, args[i]))
			i++
			continue
		}
		if i+1 == len(args) {
			out = append(out, zap.String(badKey, key))
			break
		}

		out = append(out, field(key, args[i+1]))
		i += 2
	}
	return out
}

func field(key string, value any) zap.Field {
	if err, ok := value.(error); ok {
		return zap.NamedError(key, err)
	}
	return zap.Any(key, value)
}

func traceFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.Stringer("trace_id", sc.TraceID()),
		zap.Stringer("span_id", sc.SpanID()),
	}
}
