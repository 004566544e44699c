package connector

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/esignconn/internal/esign"
)

// outcomeKind discriminates the result of one membership sub-request.
type outcomeKind int

const (
	// outcomeOK: the request succeeded.
	outcomeOK outcomeKind = iota
	// outcomeCallError: the call itself returned an error.
	outcomeCallError
	// outcomeUserError: a 2xx response carrying per-user error details.
	outcomeUserError
	// outcomeWireError: a 2xx response carrying a top-level error object.
	outcomeWireError
)

// membershipOutcome is the collected result of one group membership
// add/remove request in a fan-out.
type membershipOutcome struct {
	change AttributeChange
	resp   *esign.UsersResponse
	err    error
}

func (o membershipOutcome) kind() outcomeKind {
	switch {
	case o.err != nil:
		return outcomeCallError
	case o.resp != nil && len(o.resp.Users) > 0 && o.resp.Users[0].ErrorDetails != nil:
		return outcomeUserError
	case o.resp != nil && o.resp.ErrorDetails != nil:
		return outcomeWireError
	default:
		return outcomeOK
	}
}

func (o membershipOutcome) failed() bool { return o.kind() != outcomeOK }

// failure returns the error behind a failed outcome, nil for a success.
func (o membershipOutcome) failure() error {
	switch o.kind() {
	case outcomeCallError:
		return o.err
	case outcomeUserError:
		return o.resp.Users[0].ErrorDetails.Err()
	case outcomeWireError:
		return o.resp.ErrorDetails.Err()
	default:
		return nil
	}
}

// applyMembershipChanges issues one membership request per change,
// concurrently, and waits for all of them. Failures are captured per item,
// never raised: a slow or failing group call must not abort the others.
func (c *Connector) applyMembershipChanges(ctx context.Context, userID string, changes []AttributeChange) []membershipOutcome {
	outcomes := make([]membershipOutcome, len(changes))

	var g errgroup.Group
	for i, change := range changes {
		i, change := i, change
		g.Go(func() error {
			groupID := stringValue(change.Value)
			list := esign.UserInfoList{Users: []esign.UserRef{{UserID: userID}}}

			var resp *esign.UsersResponse
			var err error
			if change.Op == OpAdd {
				resp, err = c.api.AddGroupUsers(ctx, groupID, list)
			} else {
				resp, err = c.api.RemoveGroupUsers(ctx, groupID, list)
			}

			outcomes[i] = membershipOutcome{change: change, resp: resp, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func countFailed(outcomes []membershipOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.failed() {
			n++
		}
	}
	return n
}

func failures(outcomes []membershipOutcome) []error {
	var errs []error
	for _, o := range outcomes {
		if err := o.failure(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
