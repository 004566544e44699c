package connector

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/esignconn/internal/connerr"
	"github.com/dmitrijs2005/esignconn/internal/sdk"
)

// RegisterHandlers binds every supported command to its operation. Input
// decoding happens here so the operations work on typed values only.
func RegisterHandlers(reg *sdk.Connector, c *Connector) {
	reg.Register(sdk.StdTestConnection, func(ctx context.Context, _ json.RawMessage, res sdk.ResponseSender) error {
		return c.TestConnection(ctx, res)
	})

	reg.Register(sdk.StdAccountRead, func(ctx context.Context, raw json.RawMessage, res sdk.ResponseSender) error {
		var input ReadInput
		if err := decodeInput(raw, &input); err != nil {
			return err
		}
		return c.ReadAccount(ctx, input, res)
	})

	reg.Register(sdk.StdAccountList, func(ctx context.Context, _ json.RawMessage, res sdk.ResponseSender) error {
		return c.ListAccounts(ctx, res)
	})

	reg.Register(sdk.StdAccountCreate, func(ctx context.Context, raw json.RawMessage, res sdk.ResponseSender) error {
		var input CreateInput
		if err := decodeInput(raw, &input); err != nil {
			return err
		}
		return c.CreateAccount(ctx, input, res)
	})

	reg.Register(sdk.StdAccountUpdate, func(ctx context.Context, raw json.RawMessage, res sdk.ResponseSender) error {
		var input UpdateInput
		if err := decodeInput(raw, &input); err != nil {
			return err
		}
		return c.UpdateAccount(ctx, input, res)
	})

	reg.Register(sdk.StdAccountDelete, func(ctx context.Context, raw json.RawMessage, res sdk.ResponseSender) error {
		var input DeleteInput
		if err := decodeInput(raw, &input); err != nil {
			return err
		}
		return c.DeleteAccount(ctx, input, res)
	})

	reg.Register(sdk.StdEntitlementList, func(ctx context.Context, _ json.RawMessage, res sdk.ResponseSender) error {
		return c.ListEntitlements(ctx, res)
	})

	// Groups carry no detail beyond what the list already returns, so a
	// point read has nothing extra to fetch.
	reg.Register(sdk.StdEntitlementRead, func(ctx context.Context, _ json.RawMessage, _ sdk.ResponseSender) error {
		return connerr.InvalidRequest("operation not supported: entitlement read", nil)
	})
}

func decodeInput(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return connerr.InvalidRequest("missing operation input", nil)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return connerr.InvalidRequest("malformed operation input", err)
	}
	return nil
}
