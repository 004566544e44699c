package connerr

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusErr struct {
	status int
	msg    string
}

func (e *statusErr) Error() string   { return e.msg }
func (e *statusErr) HTTPStatus() int { return e.status }

func TestClassify_StatusCodes(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{400, KindInvalidRequest},
		{401, KindConfiguration},
		{403, KindInsufficientPermission},
		{404, KindInvalidRequest},
		{500, KindGeneric},
		{502, KindGeneric},
	}

	for _, tc := range tests {
		err := Classify(&statusErr{status: tc.status, msg: "boom"})
		require.NotNil(t, err, "status %d", tc.status)
		assert.Equal(t, tc.want, err.Kind(), "status %d", tc.status)
	}
}

func TestClassify_WrappedStatusError(t *testing.T) {
	cause := &statusErr{status: 403, msg: "forbidden"}
	err := Classify(fmt.Errorf("list users: %w", cause))

	assert.Equal(t, KindInsufficientPermission, err.Kind())
	assert.ErrorIs(t, err, cause)
}

func TestClassify_UnknownHost(t *testing.T) {
	dns := &net.DNSError{Err: "no such host", Name: "demo.example.invalid", IsNotFound: true}
	err := Classify(fmt.Errorf("token exchange: %w", dns))

	assert.Equal(t, KindConnection, err.Kind())
	assert.Contains(t, err.Error(), "demo.example.invalid")
}

func TestClassify_PassThroughTypedError(t *testing.T) {
	orig := InvalidResponse("found empty response for user read", nil)
	got := Classify(fmt.Errorf("read account: %w", orig))

	assert.Same(t, orig, got)
}

func TestClassify_Default(t *testing.T) {
	err := Classify(errors.New("something odd"))
	assert.Equal(t, KindGeneric, err.Kind())
	assert.Equal(t, "something odd", err.Error())
}

func TestClassify_Nil(t *testing.T) {
	var got *Error = Classify(nil)
	assert.Nil(t, got)
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("op failed: %w", InvalidRequest("native identifier cannot be empty", nil))

	assert.True(t, IsKind(err, KindInvalidRequest))
	assert.False(t, IsKind(err, KindConfiguration))
	assert.False(t, IsKind(errors.New("plain"), KindGeneric))
}

func TestError_MessageAndCause(t *testing.T) {
	cause := errors.New("root cause")
	err := Generic("wrapper message", cause)

	assert.Equal(t, "wrapper message", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := Generic("", cause)
	assert.Contains(t, bare.Error(), "root cause")
}
