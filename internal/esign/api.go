package esign

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// GetUser fetches one user record by its native identifier.
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	var out User
	err := c.execute(ctx, func(ctx context.Context) error {
		return c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, nil, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers fetches exactly one page of users. Pagination across pages is
// the caller's responsibility.
func (c *Client) ListUsers(ctx context.Context, opts ListOptions) (*UserList, error) {
	query := url.Values{}
	query.Set("start_position", strconv.Itoa(opts.StartPosition))
	query.Set("count", strconv.Itoa(opts.Count))
	if opts.AdditionalInfo {
		// Returns group-membership information with each user.
		query.Set("additional_info", "true")
	}

	var out UserList
	err := c.execute(ctx, func(ctx context.Context) error {
		return c.do(ctx, http.MethodGet, "/users", query, nil, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListGroups fetches exactly one page of groups.
func (c *Client) ListGroups(ctx context.Context, opts ListOptions) (*GroupList, error) {
	query := url.Values{}
	query.Set("start_position", strconv.Itoa(opts.StartPosition))
	query.Set("count", strconv.Itoa(opts.Count))

	var out GroupList
	err := c.execute(ctx, func(ctx context.Context) error {
		return c.do(ctx, http.MethodGet, "/groups", query, nil, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUsers adds new users to the account.
func (c *Client) CreateUsers(ctx context.Context, def NewUsersDefinition) (*NewUsersSummary, error) {
	var out NewUsersSummary
	err := c.execute(ctx, func(ctx context.Context) error {
		return c.do(ctx, http.MethodPost, "/users", nil, def, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies the given attribute values to one user.
func (c *Client) UpdateUser(ctx context.Context, userID string, attrs map[string]any) (*User, error) {
	var out User
	err := c.execute(ctx, func(ctx context.Context) error {
		return c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(userID), nil, attrs, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUsers closes the given user records. The remote platform never hard
// deletes; closing prevents further use of account functions and a repeated
// close of an already-closed record succeeds.
func (c *Client) DeleteUsers(ctx context.Context, list UserInfoList) (*UsersResponse, error) {
	var out UsersResponse
	err := c.execute(ctx, func(ctx context.Context) error {
		return c.do(ctx, http.MethodDelete, "/users", nil, list, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AddGroupUsers adds the given users to an existing group.
func (c *Client) AddGroupUsers(ctx context.Context, groupID string, list UserInfoList) (*UsersResponse, error) {
	var out UsersResponse
	err := c.execute(ctx, func(ctx context.Context) error {
		return c.do(ctx, http.MethodPut, "/groups/"+url.PathEscape(groupID)+"/users", nil, list, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveGroupUsers removes the given users from a group.
func (c *Client) RemoveGroupUsers(ctx context.Context, groupID string, list UserInfoList) (*UsersResponse, error) {
	var out UsersResponse
	err := c.execute(ctx, func(ctx context.Context) error {
		return c.do(ctx, http.MethodDelete, "/groups/"+url.PathEscape(groupID)+"/users", nil, list, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TokenUserInfo decodes the current access token into the identity it
// represents.
func (c *Client) TokenUserInfo(ctx context.Context) (*UserInfo, error) {
	return c.tokens.UserInfo(ctx)
}
