// Package sdk implements the connector side of the governance platform's
// handler contract: command identifiers for the standard account and
// entitlement operations, a streaming response sink, and a registry that
// dispatches parsed inputs to the registered handlers.
package sdk

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/esignconn/internal/connerr"
	"github.com/dmitrijs2005/esignconn/internal/logging"
)

// Command identifies one governance operation.
type Command string

const (
	StdTestConnection  Command = "std:test-connection"
	StdAccountRead     Command = "std:account:read"
	StdAccountList     Command = "std:account:list"
	StdAccountCreate   Command = "std:account:create"
	StdAccountUpdate   Command = "std:account:update"
	StdAccountDelete   Command = "std:account:delete"
	StdEntitlementRead Command = "std:entitlement:read"
	StdEntitlementList Command = "std:entitlement:list"
)

// ResponseSender streams operation output items back to the platform.
// List operations emit zero or more items; point operations emit exactly one.
type ResponseSender interface {
	Send(item any) error
}

// SenderFunc adapts a function to the ResponseSender interface.
type SenderFunc func(item any) error

func (f SenderFunc) Send(item any) error { return f(item) }

// Handler executes one operation: decode the raw input, call the remote
// system, emit results. A handler either emits and returns nil or returns
// one of the typed connector errors.
type Handler func(ctx context.Context, input json.RawMessage, res ResponseSender) error

// Connector is the handler registry for one connector instance.
type Connector struct {
	handlers map[Command]Handler
	log      logging.Logger
}

func New(log logging.Logger) *Connector {
	return &Connector{handlers: make(map[Command]Handler), log: log}
}

// Register binds a handler to a command. It returns the Connector so
// registrations can be chained.
func (c *Connector) Register(cmd Command, h Handler) *Connector {
	c.handlers[cmd] = h
	return c
}

// Execute dispatches one invocation. Every failure is logged exactly once
// here, at the platform boundary, before being returned; errors that are
// not already typed are wrapped as generic connector errors.
func (c *Connector) Execute(ctx context.Context, cmd Command, input json.RawMessage, res ResponseSender) error {
	h, ok := c.handlers[cmd]
	if !ok {
		err := connerr.InvalidRequest(fmt.Sprintf("unknown command %q", cmd), nil)
		c.log.Error(ctx, "operation failed", "command", string(cmd), "kind", err.Kind().String(), "error", err.Error())
		return err
	}

	err := h(ctx, input, res)
	if err == nil {
		return nil
	}

	ce := connerr.Classify(err)
	if ce.Kind() == connerr.KindGeneric && !connerr.IsKind(err, connerr.KindGeneric) {
		// Untyped failure: attach the operation to the catch-all message.
		ce = connerr.Generic(fmt.Sprintf("%s failed: %v", cmd, err), err)
	}
	c.log.Error(ctx, "operation failed", "command", string(cmd), "kind", ce.Kind().String(), "error", ce.Error())
	return ce
}
