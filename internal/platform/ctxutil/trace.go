package ctxutil

import "context"

type traceDataKey struct{}

// TraceData identifies a single HTTP request across logs and spans.
type TraceData struct {
	TraceID   string
	SpanID    string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// LogFields returns request_id/trace_id/user_id pairs suitable for logger.With.
func LogFields(ctx context.Context) []interface{} {
	var out []interface{}
	if td := GetTraceData(ctx); td != nil {
		if td.RequestID != "" {
			out = append(out, "request_id", td.RequestID)
		}
		if td.TraceID != "" {
			out = append(out, "trace_id", td.TraceID)
		}
		if td.SpanID != "" {
			out = append(out, "span_id", td.SpanID)
		}
	}
	if rd := GetRequestData(ctx); rd != nil {
		out = append(out, "user_id", rd.UserID.String())
	}
	return out
}
