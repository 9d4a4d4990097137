package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardize(t *testing.T) {
	require.Equal(t, "alice123!", Standardize("  Alice123!  "))
	require.Equal(t, "bob99#", Standardize("BOB99#"))
	require.Equal(t, "", Standardize("   "))
}

func TestValidateUsernameTooShort(t *testing.T) {
	for _, name := range []string{"", "a", "bo1", "a1!", "12!a"} {
		err := ValidateUsername(name)
		require.NotNil(t, err, "username %q", name)
		require.Equal(t, ErrorCodeInvalidUsername, err.Code)
		require.Equal(t, "Username must be at least 5 characters long.", err.Message)
	}
}

func TestValidateUsernameNotEnoughDigits(t *testing.T) {
	// Long enough, special character present, still rejected for digits.
	for _, name := range []string{"alice", "alice!", "alice1!"} {
		err := ValidateUsername(name)
		require.NotNil(t, err, "username %q", name)
		require.Equal(t, "Username must contain at least 2 numbers.", err.Message)
	}
}

func TestValidateUsernameMissingSpecialCharacter(t *testing.T) {
	err := ValidateUsername("alice123")
	require.NotNil(t, err)
	require.Equal(t, "Username must contain at least 1 special character.", err.Message)
}

func TestValidateUsernameChecksLengthFirst(t *testing.T) {
	// Fails every rule; the length reason must win.
	err := ValidateUsername("ab")
	require.NotNil(t, err)
	require.Equal(t, "Username must be at least 5 characters long.", err.Message)
}

func TestValidateUsernameAccepted(t *testing.T) {
	for _, name := range []string{"alice123!", "u5er_42", "99bottles!", "x1y2z3{}"} {
		require.Nil(t, ValidateUsername(name), "username %q", name)
	}
}
