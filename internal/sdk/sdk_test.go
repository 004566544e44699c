package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/esignconn/internal/connerr"
	"github.com/dmitrijs2005/esignconn/internal/logging"
)

type noopLogger struct{}

func (noopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (noopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (noopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (noopLogger) Error(ctx context.Context, msg string, args ...any) {}
func (noopLogger) With(args ...any) logging.Logger                    { return noopLogger{} }

func TestExecuteDispatchesToRegisteredHandler(t *testing.T) {
	var gotInput json.RawMessage
	conn := New(noopLogger{}).Register(StdAccountRead, func(ctx context.Context, input json.RawMessage, res ResponseSender) error {
		gotInput = input
		return res.Send(map[string]any{"identity": "u-1"})
	})

	var sent []any
	sink := SenderFunc(func(item any) error {
		sent = append(sent, item)
		return nil
	})

	err := conn.Execute(context.Background(), StdAccountRead, json.RawMessage(`{"identity":"u-1"}`), sink)
	require.NoError(t, err)
	assert.JSONEq(t, `{"identity":"u-1"}`, string(gotInput))
	assert.Len(t, sent, 1)
}

func TestExecuteUnknownCommand(t *testing.T) {
	conn := New(noopLogger{})

	err := conn.Execute(context.Background(), Command("std:does-not-exist"), nil, SenderFunc(func(any) error { return nil }))
	assert.True(t, connerr.IsKind(err, connerr.KindInvalidRequest))
}

func TestExecuteWrapsUntypedErrors(t *testing.T) {
	conn := New(noopLogger{}).Register(StdAccountList, func(ctx context.Context, input json.RawMessage, res ResponseSender) error {
		return errors.New("plain failure")
	})

	err := conn.Execute(context.Background(), StdAccountList, nil, SenderFunc(func(any) error { return nil }))

	var ce *connerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, connerr.KindGeneric, ce.Kind())
}

func TestExecutePreservesTypedErrors(t *testing.T) {
	conn := New(noopLogger{}).Register(StdAccountDelete, func(ctx context.Context, input json.RawMessage, res ResponseSender) error {
		return connerr.InvalidResponse("found empty response for user deletion", nil)
	})

	err := conn.Execute(context.Background(), StdAccountDelete, nil, SenderFunc(func(any) error { return nil }))
	assert.True(t, connerr.IsKind(err, connerr.KindInvalidResponse))
}
