package esign

import (
	"fmt"
	"strconv"
)

// PageInfo is the pagination window descriptor the remote API attaches to
// every list response. Positions arrive as decimal strings on the wire.
type PageInfo struct {
	StartPosition string `json:"startPosition"`
	EndPosition   string `json:"endPosition"`
	TotalSetSize  string `json:"totalSetSize"`
	ResultSetSize string `json:"resultSetSize"`
}

// Window parses the page boundaries. For a non-empty page the invariant is
// end == start + (records − 1); the page is the last one when end+1 == total.
func (p PageInfo) Window() (start, end, total int, err error) {
	start, err = strconv.Atoi(p.StartPosition)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad startPosition %q: %w", p.StartPosition, err)
	}
	end, err = strconv.Atoi(p.EndPosition)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad endPosition %q: %w", p.EndPosition, err)
	}
	total, err = strconv.Atoi(p.TotalSetSize)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad totalSetSize %q: %w", p.TotalSetSize, err)
	}
	return start, end, total, nil
}

// ErrorDetails is the application-level error shape the remote API embeds in
// otherwise successful (2xx) responses, either per record or at the top level.
type ErrorDetails struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// Err converts embedded error details into an error value.
func (d *ErrorDetails) Err() error {
	return fmt.Errorf("%s: %s", d.ErrorCode, d.Message)
}

// Group is a group record as returned by the remote API.
type Group struct {
	GroupID             string `json:"groupId"`
	GroupName           string `json:"groupName"`
	GroupType           string `json:"groupType"`
	PermissionProfileID string `json:"permissionProfileId"`
	UsersCount          string `json:"usersCount"`
}

// User is a user record as returned by the remote API. GroupList is only
// populated when a list request asks for additional info.
type User struct {
	UserID                       string  `json:"userId"`
	UserName                     string  `json:"userName"`
	FirstName                    string  `json:"firstName"`
	LastName                     string  `json:"lastName"`
	UserType                     string  `json:"userType"`
	URI                          string  `json:"uri"`
	Email                        string  `json:"email"`
	Company                      string  `json:"company"`
	JobTitle                     string  `json:"jobTitle"`
	IsAdmin                      string  `json:"isAdmin"`
	IsNAREnabled                 string  `json:"isNAREnabled"`
	UserStatus                   string  `json:"userStatus"`
	DefaultAccountID             string  `json:"defaultAccountId"`
	CreatedDateTime              string  `json:"createdDateTime"`
	SendActivationOnInvalidLogin string  `json:"sendActivationOnInvalidLogin"`
	EnableConnectForUser         string  `json:"enableConnectForUser"`
	LastLogin                    string  `json:"lastLogin"`
	GroupList                    []Group `json:"groupList"`

	ErrorDetails *ErrorDetails `json:"errorDetails,omitempty"`
}

// UserList is one page of users.
type UserList struct {
	PageInfo
	Users []User `json:"users"`
}

// GroupList is one page of groups.
type GroupList struct {
	PageInfo
	Groups []Group `json:"groups"`
}

// UserRef identifies a user in membership and deletion requests.
type UserRef struct {
	UserID string `json:"userId"`
}

// UserInfoList is the request body for membership and deletion calls.
type UserInfoList struct {
	Users []UserRef `json:"users"`
}

// NewUsersDefinition is the user-creation request body. Each entry is the
// flat attribute map of one new user.
type NewUsersDefinition struct {
	NewUsers []map[string]any `json:"newUsers"`
}

// NewUser is one creation result inside NewUsersSummary.
type NewUser struct {
	UserID       string        `json:"userId"`
	UserName     string        `json:"userName"`
	ErrorDetails *ErrorDetails `json:"errorDetails,omitempty"`
}

// NewUsersSummary is the user-creation response.
type NewUsersSummary struct {
	NewUsers []NewUser `json:"newUsers"`
}

// MemberUser is one affected user in a UsersResponse.
type MemberUser struct {
	UserID       string        `json:"userId"`
	UserName     string        `json:"userName"`
	ErrorDetails *ErrorDetails `json:"errorDetails,omitempty"`
}

// UsersResponse is returned by membership add/remove and user deletion.
// ErrorDetails at the top level signals a wire-level error delivered inside
// a 2xx body; per-user ErrorDetails signals an application-level failure.
type UsersResponse struct {
	Users        []MemberUser  `json:"users"`
	ErrorDetails *ErrorDetails `json:"errorDetails,omitempty"`
}

// UserInfoAccount is one account entry in the token userinfo response.
type UserInfoAccount struct {
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
	IsDefault   string `json:"is_default"`
	BaseURI     string `json:"base_uri"`
}

// UserInfo is the decoded identity behind the current access token.
type UserInfo struct {
	Sub      string            `json:"sub"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Accounts []UserInfoAccount `json:"accounts"`
}

// ListOptions are the pagination parameters of a single page request.
// Count must be between 1 and ListPageLimit.
type ListOptions struct {
	StartPosition  int
	Count          int
	AdditionalInfo bool
}
