package logging

import (
	"context"
	"maps"
)

type contextKey string

const contextFieldsKey contextKey = "blog.logging.fields"

// ContextWithFields returns a context carrying structured logging fields that
// providers can merge into subsequent entries. Existing fields on the context
// are preserved and merged with the provided values.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}

	existing := ContextFields(ctx)
	merged := make(map[string]any, len(existing)+len(fields))
	maps.Copy(merged, existing)
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextFieldsKey, merged)
}

// ContextFields extracts previously annotated logging fields from the context.
// A copy is returned so callers can mutate the map without affecting future
// log entries.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}

	fields, ok := ctx.Value(contextFieldsKey).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}

	copied := make(map[string]any, len(fields))
	maps.Copy(copied, fields)
	return copied
}
