// Package connector implements the governance operations — account
// read/list/create/update/delete, entitlement list and test-connection — on
// top of the typed remote API facade: pagination loops, the create/update
// reconciliation of attribute versus membership changes, and classification
// of remote failures into the connector error taxonomy.
package connector

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/dmitrijs2005/esignconn/internal/connerr"
	"github.com/dmitrijs2005/esignconn/internal/esign"
	"github.com/dmitrijs2005/esignconn/internal/logging"
	"github.com/dmitrijs2005/esignconn/internal/sdk"
)

// API is the remote facade the orchestrator runs on. One method per remote
// operation; list calls fetch exactly one page.
type API interface {
	GetUser(ctx context.Context, userID string) (*esign.User, error)
	ListUsers(ctx context.Context, opts esign.ListOptions) (*esign.UserList, error)
	ListGroups(ctx context.Context, opts esign.ListOptions) (*esign.GroupList, error)
	CreateUsers(ctx context.Context, def esign.NewUsersDefinition) (*esign.NewUsersSummary, error)
	UpdateUser(ctx context.Context, userID string, attrs map[string]any) (*esign.User, error)
	DeleteUsers(ctx context.Context, list esign.UserInfoList) (*esign.UsersResponse, error)
	AddGroupUsers(ctx context.Context, groupID string, list esign.UserInfoList) (*esign.UsersResponse, error)
	RemoveGroupUsers(ctx context.Context, groupID string, list esign.UserInfoList) (*esign.UsersResponse, error)
	TokenUserInfo(ctx context.Context) (*esign.UserInfo, error)
}

// Connector orchestrates governance operations against one remote account.
type Connector struct {
	api API
	log logging.Logger
}

func New(api API, log logging.Logger) *Connector {
	return &Connector{api: api, log: log}
}

// TestConnection decodes the current token's subject and reads that
// subject's own user record as a liveness probe. It succeeds with an empty
// payload only if both steps return non-empty data.
func (c *Connector) TestConnection(ctx context.Context, res sdk.ResponseSender) error {
	info, err := c.api.TokenUserInfo(ctx)
	if err != nil {
		return connerr.Classify(err)
	}
	if info == nil || info.Sub == "" {
		return connerr.InvalidResponse("found empty response for token decode", nil)
	}

	user, err := c.api.GetUser(ctx, info.Sub)
	if err != nil {
		return connerr.Classify(err)
	}
	if user == nil || user.UserID == "" {
		return connerr.InvalidResponse("found empty response for user read", nil)
	}

	return res.Send(map[string]any{})
}

// ReadAccount fetches and reshapes one account.
func (c *Connector) ReadAccount(ctx context.Context, input ReadInput, res sdk.ResponseSender) error {
	if input.Identity == "" {
		return connerr.InvalidRequest("native identifier cannot be empty", nil)
	}

	account, err := c.readUserAccount(ctx, input.Identity)
	if err != nil {
		return err
	}
	return res.Send(account)
}

// ListAccounts aggregates all user accounts, emitting each record as an
// individual item. Pages are fetched strictly sequentially; the offset
// advances to the previous end position plus one until the window covers
// the total set size.
func (c *Connector) ListAccounts(ctx context.Context, res sdk.ResponseSender) error {
	offset := 0

	for {
		page, err := c.api.ListUsers(ctx, esign.ListOptions{
			StartPosition:  offset,
			Count:          esign.ListPageLimit,
			AdditionalInfo: true,
		})
		if err != nil {
			return connerr.Classify(err)
		}
		if page == nil {
			return connerr.InvalidResponse(fmt.Sprintf("found empty response for user list, offset %d", offset), nil)
		}
		if len(page.Users) == 0 {
			return nil
		}

		_, end, total, err := page.Window()
		if err != nil {
			return connerr.InvalidResponse(fmt.Sprintf("unusable page descriptor: %v", err), err)
		}

		for i := range page.Users {
			if err := res.Send(accountFromUser(&page.Users[i])); err != nil {
				return err
			}
		}

		if end+1 >= total {
			return nil
		}
		offset = end + 1
	}
}

// ListEntitlements aggregates all groups of the account.
func (c *Connector) ListEntitlements(ctx context.Context, res sdk.ResponseSender) error {
	offset := 0

	for {
		page, err := c.api.ListGroups(ctx, esign.ListOptions{
			StartPosition: offset,
			Count:         esign.ListPageLimit,
		})
		if err != nil {
			return connerr.Classify(err)
		}
		if page == nil {
			return connerr.InvalidResponse(fmt.Sprintf("found empty response for group list, offset %d", offset), nil)
		}
		if len(page.Groups) == 0 {
			return nil
		}

		_, end, total, err := page.Window()
		if err != nil {
			return connerr.InvalidResponse(fmt.Sprintf("unusable page descriptor: %v", err), err)
		}

		for i := range page.Groups {
			if err := res.Send(entitlementFromGroup(&page.Groups[i])); err != nil {
				return err
			}
		}

		if end+1 >= total {
			return nil
		}
		offset = end + 1
	}
}

// CreateAccount creates one user and grants the requested group
// memberships. Membership grants run concurrently and never fail the whole
// operation: the account itself was created, so grant failures are logged
// as warnings and the fresh account state is still returned.
func (c *Connector) CreateAccount(ctx context.Context, input CreateInput, res sdk.ResponseSender) error {
	if input.Identity == "" {
		return connerr.InvalidRequest("username cannot be empty", nil)
	}

	attrs := make(map[string]any, len(input.Attributes)+1)
	var groups []string
	for k, v := range input.Attributes {
		if k == groupsAttribute {
			groups = stringValues(v)
			continue
		}
		attrs[k] = v
	}
	attrs["userName"] = input.Identity

	summary, err := c.api.CreateUsers(ctx, esign.NewUsersDefinition{NewUsers: []map[string]any{attrs}})
	if err != nil {
		return connerr.Classify(err)
	}
	if summary == nil {
		return connerr.InvalidResponse("found empty response for user creation", nil)
	}
	if len(summary.NewUsers) == 0 || summary.NewUsers[0].UserID == "" {
		// Creation nominally always returns an identifier on success.
		return connerr.Generic("user creation failed", nil)
	}
	userID := summary.NewUsers[0].UserID

	if len(groups) > 0 {
		changes := make([]AttributeChange, 0, len(groups))
		for _, groupID := range groups {
			changes = append(changes, AttributeChange{Attribute: groupsAttribute, Op: OpAdd, Value: groupID})
		}

		outcomes := c.applyMembershipChanges(ctx, userID, changes)
		for _, o := range outcomes {
			if o.failed() {
				c.log.Warn(ctx, "entitlement grant failed for created account",
					"user_id", userID, "group_id", stringValue(o.change.Value), "error", o.failure().Error())
			}
		}
	}

	account, err := c.readUserAccount(ctx, userID)
	if err != nil {
		return err
	}
	return res.Send(account)
}

// UpdateAccount applies an attribute change plan: membership changes fan
// out as individual grant/revoke requests, ordinary attribute changes merge
// into one combined update call, and the two sub-results are reconciled.
//
// Reconciliation: success in either dimension reports overall success with
// a warning for the failing one. The only failure-terminal mixed case is
// attribute failure combined with failure of every entitlement change;
// partial entitlement failure never escalates. After any accepted outcome
// the current account state is re-read and returned.
func (c *Connector) UpdateAccount(ctx context.Context, plan UpdateInput, res sdk.ResponseSender) error {
	if plan.Identity == "" {
		return connerr.InvalidRequest("native identifier cannot be empty", nil)
	}
	userID := plan.Identity

	var entChanges, attrChanges []AttributeChange
	for _, ch := range plan.Changes {
		switch {
		case ch.Attribute == groupsAttribute && (ch.Op == OpAdd || ch.Op == OpRemove):
			entChanges = append(entChanges, ch)
		case ch.Attribute != groupsAttribute:
			attrChanges = append(attrChanges, ch)
		}
	}

	var outcomes []membershipOutcome
	entFailed := 0
	if len(entChanges) > 0 {
		outcomes = c.applyMembershipChanges(ctx, userID, entChanges)
		entFailed = countFailed(outcomes)
	}

	var attrErr error
	if len(attrChanges) > 0 {
		attrs := make(map[string]any, len(attrChanges))
		for _, ch := range attrChanges {
			attrs[ch.Attribute] = ch.Value
		}

		user, err := c.api.UpdateUser(ctx, userID, attrs)
		switch {
		case err != nil:
			attrErr = err
		case user != nil && user.ErrorDetails != nil:
			attrErr = user.ErrorDetails.Err()
		}
	}

	switch {
	case len(entChanges) > 0 && len(attrChanges) == 0:
		if entFailed == len(entChanges) {
			return connerr.Generic(
				fmt.Sprintf("all entitlement updates to the account [%s] failed", userID),
				multierr.Combine(failures(outcomes)...))
		}
		if entFailed > 0 {
			c.log.Warn(ctx, "some entitlement updates failed", "user_id", userID, "failed", entFailed)
		}

	case len(entChanges) == 0 && len(attrChanges) > 0:
		if attrErr != nil {
			c.log.Error(ctx, "attribute updates failed", "user_id", userID, "error", attrErr.Error())
			return connerr.Classify(attrErr)
		}

	case len(entChanges) > 0 && len(attrChanges) > 0:
		switch {
		case attrErr == nil && entFailed > 0:
			c.log.Warn(ctx, "entitlement updates failed", "user_id", userID, "failed", entFailed)
		case attrErr != nil && entFailed == 0:
			c.log.Warn(ctx, "attribute updates failed", "user_id", userID, "error", attrErr.Error())
		case attrErr != nil && entFailed > 0:
			if entFailed == len(entChanges) {
				return connerr.Generic(
					fmt.Sprintf("all updates to the account [%s] failed", userID),
					multierr.Append(attrErr, multierr.Combine(failures(outcomes)...)))
			}
			c.log.Warn(ctx, "some updates to the account failed", "user_id", userID, "failed", entFailed)
		}
	}

	account, err := c.readUserAccount(ctx, userID)
	if err != nil {
		return err
	}
	return res.Send(account)
}

// DeleteAccount deactivates one account. The remote platform never hard
// deletes; it closes the record, and closing is idempotent at the API
// level, so no duplicate guard is needed here.
func (c *Connector) DeleteAccount(ctx context.Context, input DeleteInput, res sdk.ResponseSender) error {
	if input.Identity == "" {
		return connerr.InvalidRequest("native identifier cannot be empty", nil)
	}

	resp, err := c.api.DeleteUsers(ctx, esign.UserInfoList{Users: []esign.UserRef{{UserID: input.Identity}}})
	if err != nil {
		return connerr.Classify(err)
	}
	if resp == nil {
		return connerr.InvalidResponse("found empty response for user deletion", nil)
	}
	if resp.ErrorDetails != nil {
		return connerr.Classify(resp.ErrorDetails.Err())
	}

	return res.Send(map[string]any{})
}

// readUserAccount fetches the current state of one user and reshapes it.
func (c *Connector) readUserAccount(ctx context.Context, userID string) (*Account, error) {
	user, err := c.api.GetUser(ctx, userID)
	if err != nil {
		return nil, connerr.Classify(err)
	}
	if user == nil || user.UserID == "" {
		return nil, connerr.InvalidResponse("found empty response for user read", nil)
	}
	return accountFromUser(user), nil
}

func accountFromUser(user *esign.User) *Account {
	groups := make([]string, 0, len(user.GroupList))
	for _, g := range user.GroupList {
		groups = append(groups, g.GroupID)
	}

	return &Account{
		Identity: user.UserName,
		UUID:     user.UserID,
		Attributes: map[string]any{
			"userName":                     user.UserName,
			"firstName":                    user.FirstName,
			"lastName":                     user.LastName,
			"userType":                     user.UserType,
			"uri":                          user.URI,
			"email":                        user.Email,
			"company":                      user.Company,
			"jobTitle":                     user.JobTitle,
			"isAdmin":                      user.IsAdmin,
			"isNAREnabled":                 user.IsNAREnabled,
			"userStatus":                   user.UserStatus,
			"defaultAccountId":             user.DefaultAccountID,
			"createdDateTime":              user.CreatedDateTime,
			"sendActivationOnInvalidLogin": user.SendActivationOnInvalidLogin,
			"enableConnectForUser":         user.EnableConnectForUser,
			"lastLogin":                    user.LastLogin,
			"groups":                       groups,
		},
	}
}

func entitlementFromGroup(group *esign.Group) *Entitlement {
	return &Entitlement{
		Identity: group.GroupName,
		UUID:     group.GroupID,
		Attributes: map[string]any{
			"groupName":           group.GroupName,
			"groupType":           group.GroupType,
			"permissionProfileId": group.PermissionProfileID,
			"usersCount":          group.UsersCount,
		},
	}
}
