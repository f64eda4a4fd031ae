package utils

import (
	"context"
	"errors"

	"hubsync/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrHubIDNotFound      = errors.New("hubID not found in context")
	ErrHubIDNotString     = errors.New("hubID in context is not a string")
	ErrRunIDNotFound      = errors.New("runID not found in context")
	ErrRunIDNotString     = errors.New("runID in context is not a string")
	ErrRequestIDNotFound  = errors.New("requestID not found in context")
	ErrRequestIDNotString = errors.New("requestID in context is not a string")
)

// GetHubIDFromContext retrieves the hub ID from the context.
// It returns the hub ID and an error if the hub ID is not found or is not a string.
func GetHubIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.HubIDKey)
	if val == nil {
		return "", ErrHubIDNotFound
	}
	hubID, ok := val.(string)
	if !ok {
		return "", ErrHubIDNotString
	}
	return hubID, nil
}

// GetRunIDFromContext retrieves the sync run ID from the context.
func GetRunIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.RunIDKey)
	if val == nil {
		return "", ErrRunIDNotFound
	}
	runID, ok := val.(string)
	if !ok {
		return "", ErrRunIDNotString
	}
	return runID, nil
}

// GetRequestIDFromContext retrieves the request ID from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.RequestIDKey)
	if val == nil {
		return "", ErrRequestIDNotFound
	}
	requestID, ok := val.(string)
	if !ok {
		return "", ErrRequestIDNotString
	}
	return requestID, nil
}

// WithHubID returns a context carrying the given hub ID.
func WithHubID(ctx context.Context, hubID string) context.Context {
	return context.WithValue(ctx, contextkeys.HubIDKey, hubID)
}

// WithRunID returns a context carrying the given sync run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, contextkeys.RunIDKey, runID)
}

// WithRequestID returns a context carrying the given request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}
