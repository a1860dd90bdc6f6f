package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"go-gin-addressbook/internal/core/auth"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestJWTer_IssueAndParse(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	j := auth.NewJWTer("secret", "addressbook", 7)
	j.Now = func() time.Time { return now }

	tok, exp, err := j.Issue("uid-1", "ada", "ada@example.com", []string{"User"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), exp)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", c.UID)
	assert.Equal(t, "ada", c.Subject)
	assert.Equal(t, "ada@example.com", c.Email)
	assert.NotEmpty(t, c.ID)
	assert.True(t, c.HasRole("User"))
	assert.False(t, c.HasRole("Admin"))
}

func TestJWTer_UniqueTokenIDs(t *testing.T) {
	j := auth.NewJWTer("secret", "addressbook", 1)

	a, _, err := j.Issue("u", "n", "e", nil)
	require.NoError(t, err)
	b, _, err := j.Issue("u", "n", "e", nil)
	require.NoError(t, err)

	ca, err := j.Parse(a)
	require.NoError(t, err)
	cb, err := j.Parse(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestJWTer_Rejects(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	j := auth.NewJWTer("secret", "addressbook", 1)
	j.Now = func() time.Time { return now }
	tok, _, err := j.Issue("u", "n", "e", nil)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := *j
		later.Now = func() time.Time { return now.Add(48 * time.Hour) }
		_, err := later.Parse(tok)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})
	t.Run("wrong secret", func(t *testing.T) {
		other := *j
		other.Secret = []byte("other")
		_, err := other.Parse(tok)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})
	t.Run("wrong issuer", func(t *testing.T) {
		other := *j
		other.Issuer = "someone-else"
		_, err := other.Parse(tok)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := j.Parse("not.a.token")
		assert.Error(t, err)
	})
}
