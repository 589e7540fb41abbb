package logging

import (
	"context"
)

type contextKey string

const (
	TestNameKey  contextKey = "test_name"
	AttributeKey contextKey = "attribute"
)

func WithTestName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, TestNameKey, name)
}

func WithAttribute(ctx context.Context, attribute string) context.Context {
	return context.WithValue(ctx, AttributeKey, attribute)
}

func GetTestName(ctx context.Context) string {
	if name, ok := ctx.Value(TestNameKey).(string); ok {
		return name
	}
	return ""
}

func GetAttribute(ctx context.Context) string {
	if attribute, ok := ctx.Value(AttributeKey).(string); ok {
		return attribute
	}
	return ""
}

func GetLogFields(ctx context.Context) []interface{} {
	if ctx == nil {
		return nil
	}

	fields := make([]interface{}, 0, 4)

	if name := GetTestName(ctx); name != "" {
		fields = append(fields, string(TestNameKey), name)
	}

	if attribute := GetAttribute(ctx); attribute != "" {
		fields = append(fields, string(AttributeKey), attribute)
	}

	return fields
}
