package errors_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epicquest/rpg-engine/internal/errors"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.CodeNotFound, "profile not found")

	assert.Equal(t, errors.CodeNotFound, err.Code)
	assert.Equal(t, "profile not found", err.Message)
	assert.Equal(t, "NOT_FOUND: profile not found", err.Error())
}

func TestWrap_PreservesCode(t *testing.T) {
	inner := errors.VersionConflict("stored version moved")
	wrapped := errors.Wrap(inner, "update failed")

	assert.Equal(t, errors.CodeVersionConflict, wrapped.Code)
	assert.True(t, errors.IsVersionConflict(wrapped))
	assert.ErrorIs(t, wrapped, inner)
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	wrapped := errors.Wrap(fmt.Errorf("dial tcp: refused"), "store unreachable")

	assert.Equal(t, errors.CodeInternal, wrapped.Code)
	assert.Contains(t, wrapped.Error(), "dial tcp: refused")
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "ignored"))
}

func TestGetCode(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want errors.Code
	}{
		{"nil", nil, errors.CodeOK},
		{"typed", errors.InsufficientResource("broke"), errors.CodeInsufficientResource},
		{"plain", fmt.Errorf("boom"), errors.CodeInternal},
		{"wrapped typed", fmt.Errorf("outer: %w", errors.NotFound("gone")), errors.CodeNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errors.GetCode(tc.err))
		})
	}
}

func TestCooldownActive_CarriesRemaining(t *testing.T) {
	err := errors.CooldownActive("adventure", 90*time.Second)

	require.True(t, errors.IsCooldownActive(err))
	assert.Equal(t, 90*time.Second, errors.CooldownRemaining(err))
	assert.Equal(t, "adventure", errors.GetMeta(err)["action"])
}

func TestCooldownRemaining_NonCooldown(t *testing.T) {
	assert.Zero(t, errors.CooldownRemaining(errors.NotFound("nope")))
	assert.Zero(t, errors.CooldownRemaining(nil))
}

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		code errors.Code
		want int
	}{
		{errors.CodeInvalidArgument, http.StatusBadRequest},
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeAlreadyExists, http.StatusConflict},
		{errors.CodeVersionConflict, http.StatusConflict},
		{errors.CodeCooldownActive, http.StatusTooManyRequests},
		{errors.CodeInsufficientResource, http.StatusPaymentRequired},
		{errors.CodeUnavailable, http.StatusServiceUnavailable},
		{errors.Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, tc.code.HTTPStatus(), string(tc.code))
	}
}

func TestValidationBuilder(t *testing.T) {
	err := errors.NewValidationBuilder().
		RequiredField("ProfileID").
		NonNegativeField("Amount", -5).
		Build()

	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "ProfileID")
	assert.Contains(t, err.Error(), "Amount")
}

func TestValidationBuilder_Empty(t *testing.T) {
	err := errors.NewValidationBuilder().
		NonNegativeField("Amount", 10).
		Build()

	assert.NoError(t, err)
}
