package connector

import "fmt"

// groupsAttribute is the designated account attribute that carries group
// membership. Changes to it are executed as membership requests, never as
// ordinary attribute updates.
const groupsAttribute = "groups"

// AttributeOp is the operation of one entry in an attribute change plan.
type AttributeOp string

const (
	OpAdd    AttributeOp = "Add"
	OpRemove AttributeOp = "Remove"
	OpSet    AttributeOp = "Set"
)

// AttributeChange is one requested change in an account update plan.
type AttributeChange struct {
	Attribute string      `json:"attribute"`
	Op        AttributeOp `json:"op"`
	Value     any         `json:"value"`
}

// ReadInput identifies the account to read.
type ReadInput struct {
	Identity string `json:"identity"`
}

// CreateInput describes a new account: the identity becomes the username,
// the attribute map may include the designated groups attribute with one or
// more group identifiers.
type CreateInput struct {
	Identity   string         `json:"identity"`
	Attributes map[string]any `json:"attributes"`
}

// UpdateInput is the change plan for one account.
type UpdateInput struct {
	Identity string            `json:"identity"`
	Changes  []AttributeChange `json:"changes"`
}

// DeleteInput identifies the account to deactivate.
type DeleteInput struct {
	Identity string `json:"identity"`
}

// Account is the governance-side representation of a remote user record.
type Account struct {
	Identity   string         `json:"identity"`
	UUID       string         `json:"uuid"`
	Attributes map[string]any `json:"attributes"`
}

// Entitlement is the governance-side representation of a remote group.
type Entitlement struct {
	Identity   string         `json:"identity"`
	UUID       string         `json:"uuid"`
	Attributes map[string]any `json:"attributes"`
}

// stringValue renders an attribute value the way it is sent to the remote
// API, e.g. a group identifier from a change plan entry.
func stringValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// stringValues normalizes a membership attribute value, which may be a
// single identifier or a list of identifiers.
func stringValues(v any) []string {
	switch value := v.(type) {
	case nil:
		return nil
	case string:
		return []string{value}
	case []string:
		return value
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			out = append(out, stringValue(item))
		}
		return out
	default:
		return []string{stringValue(v)}
	}
}
