package service

import (
	"context"

	"github.com/capitalize-ai/mail-assistant/internal/model"
)

// ProgressFunc observes the stages of a running operation.
type ProgressFunc func(model.StageEvent)

type progressKey struct{}

type installIDKey struct{}

// WithProgress attaches a progress observer to ctx.
func WithProgress(ctx context.Context, fn ProgressFunc) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

func progressFrom(ctx context.Context) ProgressFunc {
	if fn, ok := ctx.Value(progressKey{}).(ProgressFunc); ok && fn != nil {
		return fn
	}
	return func(model.StageEvent) {}
}

// WithInstallID tags ctx with the extension install that issued the request.
func WithInstallID(ctx context.Context, installID string) context.Context {
	return context.WithValue(ctx, installIDKey{}, installID)
}

// InstallID returns the install id set by WithInstallID.
func InstallID(ctx context.Context) string {
	id, _ := ctx.Value(installIDKey{}).(string)
	return id
}
