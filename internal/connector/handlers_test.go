package connector

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/esignconn/internal/connerr"
	"github.com/dmitrijs2005/esignconn/internal/sdk"
)

func newRegistry(api *fakeAPI) *sdk.Connector {
	c, _ := newTestConnector(api)
	reg := sdk.New(&countingLogger{})
	RegisterHandlers(reg, c)
	return reg
}

func TestHandlersRoundTrip(t *testing.T) {
	api := newFakeAPI()
	reg := newRegistry(api)

	var items []any
	sink := sdk.SenderFunc(func(item any) error {
		items = append(items, item)
		return nil
	})

	err := reg.Execute(context.Background(), sdk.StdAccountRead, json.RawMessage(`{"identity":"u-1"}`), sink)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, api.callCount("GetUser"))
}

func TestHandlersRejectMalformedInput(t *testing.T) {
	reg := newRegistry(newFakeAPI())
	sink := sdk.SenderFunc(func(any) error { return nil })

	tests := []struct {
		name  string
		cmd   sdk.Command
		input json.RawMessage
	}{
		{"missing input", sdk.StdAccountRead, nil},
		{"malformed input", sdk.StdAccountUpdate, json.RawMessage(`{"identity":`)},
		{"wrong shape", sdk.StdAccountCreate, json.RawMessage(`[1,2,3]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Execute(context.Background(), tt.cmd, tt.input, sink)
			assert.True(t, connerr.IsKind(err, connerr.KindInvalidRequest), "got %v", err)
		})
	}
}

func TestEntitlementReadIsUnsupported(t *testing.T) {
	reg := newRegistry(newFakeAPI())
	sink := sdk.SenderFunc(func(any) error { return nil })

	err := reg.Execute(context.Background(), sdk.StdEntitlementRead, json.RawMessage(`{"identity":"g-1"}`), sink)
	require.Error(t, err)
	assert.True(t, connerr.IsKind(err, connerr.KindInvalidRequest))
	assert.Contains(t, err.Error(), "not supported")
}
