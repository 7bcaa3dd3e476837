package middleware

import "context"

// Ключ request ID в контексте запроса.

type contextKey string

const requestIDKey contextKey = "request_id"

// SetRequestID кладет request ID в контекст
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID извлекает request ID из контекста, пустая строка если нет
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
