// Package credential resolves the completion-service API key.
package credential

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrNotConfigured is returned when no source holds a key.
var ErrNotConfigured = errors.New("completion API key not configured")

// Source yields the completion-service API key for a request.
type Source interface {
	APIKey(ctx context.Context) (string, error)
}

// EnvSource reads the key from an environment variable on first use.
type EnvSource struct {
	name string
	once sync.Once
	key  string
}

// NewEnvSource creates a source backed by the named environment variable.
func NewEnvSource(name string) *EnvSource {
	return &EnvSource{name: name}
}

// APIKey returns the key, reading the environment once.
func (s *EnvSource) APIKey(context.Context) (string, error) {
	s.once.Do(func() {
		s.key = strings.TrimSpace(os.Getenv(s.name))
	})
	if s.key == "" {
		return "", ErrNotConfigured
	}
	return s.key, nil
}

// Static is a fixed key, mainly for tests and single-user deployments.
type Static string

// APIKey returns the static key.
func (s Static) APIKey(context.Context) (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", ErrNotConfigured
	}
	return string(s), nil
}

type ctxKey struct{}

// WithRequestKey stores a client-supplied key in the context.
func WithRequestKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, ctxKey{}, strings.TrimSpace(key))
}

// RequestKey returns the client-supplied key from the context, if any.
func RequestKey(ctx context.Context) string {
	key, _ := ctx.Value(ctxKey{}).(string)
	return key
}

// RequestSource yields the key placed in the context by WithRequestKey.
type RequestSource struct{}

// APIKey returns the request-scoped key.
func (RequestSource) APIKey(ctx context.Context) (string, error) {
	if key := RequestKey(ctx); key != "" {
		return key, nil
	}
	return "", ErrNotConfigured
}

// Chain tries each source in order and returns the first key found.
type Chain []Source

// APIKey returns the first configured key.
func (c Chain) APIKey(ctx context.Context) (string, error) {
	for _, src := range c {
		key, err := src.APIKey(ctx)
		if err == nil && key != "" {
			return key, nil
		}
		if err != nil && !errors.Is(err, ErrNotConfigured) {
			return "", err
		}
	}
	return "", ErrNotConfigured
}
