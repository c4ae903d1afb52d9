package logger

import "log/slog"

// Error records a single error under the key "error"; nil yields an empty attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// TenantID records the tenant identifier under the key "tenant_id".
func TenantID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("tenant_id", id)
}

// Host records the request hostname under the key "host".
func Host(host string) slog.Attr {
	return slog.String("host", host)
}

// Source records which tier answered a lookup under the key "source".
func Source(source string) slog.Attr {
	return slog.String("source", source)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}
