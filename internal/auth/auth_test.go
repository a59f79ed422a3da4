package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	a := NewAuth("s3cret")
	require.True(t, a.Enabled())

	token, err := a.GenerateToken("admin", time.Hour)
	require.NoError(t, err)

	sub, err := a.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewAuth("one").GenerateToken("admin", time.Hour)
	require.NoError(t, err)

	_, err = NewAuth("two").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	a := NewAuth("s3cret")
	token, err := a.GenerateToken("admin", -time.Minute)
	require.NoError(t, err)

	_, err = a.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := NewAuth("s3cret").Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDisabled(t *testing.T) {
	a := NewAuth("")
	assert.False(t, a.Enabled())
	_, err := a.GenerateToken("admin", time.Hour)
	assert.Error(t, err)

	var nilAuth *Auth
	assert.False(t, nilAuth.Enabled())
}
