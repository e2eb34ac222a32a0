package utils_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/SscSPs/cherry_dining/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndParseJWT(t *testing.T) {
	role := domain.RoleCashier
	now := time.Now()

	token, expiresAt, err := utils.GenerateJWT("staff-1", domain.KindStaff, &role, testSecret, 12*time.Hour, "cherry-dining", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(12*time.Hour), expiresAt)

	claims, err := utils.ParseAndValidateJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.Subject)
	assert.Equal(t, domain.KindStaff, claims.Kind)
	require.NotNil(t, claims.RoleOrNil())
	assert.Equal(t, domain.RoleCashier, *claims.RoleOrNil())
}

func TestParseJWT_Rejects(t *testing.T) {
	token, _, err := utils.GenerateJWT("admin-1", domain.KindAdmin, nil, testSecret, time.Hour, "cherry-dining", time.Now())
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)

	expired, _, err := utils.GenerateJWT("admin-1", domain.KindAdmin, nil, testSecret, time.Minute, "cherry-dining", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = utils.ParseAndValidateJWT(expired, testSecret)
	assert.Error(t, err)
}

func TestClaims_RoleOrNil(t *testing.T) {
	assert.Nil(t, (&utils.Claims{}).RoleOrNil())
	assert.Nil(t, (&utils.Claims{Role: "owner"}).RoleOrNil())
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token := utils.ComposeRefreshToken("user-1", "abc123")
	userID, secret, ok := utils.SplitRefreshToken(token)
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "abc123", secret)

	hash := utils.HashRefreshToken(secret)
	assert.True(t, utils.CompareRefreshTokenHash("abc123", hash))
	assert.False(t, utils.CompareRefreshTokenHash("abc124", hash))

	_, _, ok = utils.SplitRefreshToken("no-separator")
	assert.False(t, ok)
	_, _, ok = utils.SplitRefreshToken(".secret")
	assert.False(t, ok)
}

func TestCredentials(t *testing.T) {
	hash, err := utils.HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("s3cret!", hash))
	assert.False(t, utils.CheckPasswordHash("s3cret", hash))

	assert.Equal(t, "jdoe", utils.NormalizeUsername("  JDoe "))
	assert.Equal(t, "jdoe@staff.cherrydining.local", utils.PlaceholderEmail("JDoe"))
	assert.True(t, utils.ValidEmail("a@b.co"))
	assert.False(t, utils.ValidEmail("not-an-email"))
	assert.False(t, utils.ValidEmail("Name <a@b.co>"))
}

func TestGenerateTemporaryPassword(t *testing.T) {
	a, err := utils.GenerateTemporaryPassword(12)
	require.NoError(t, err)
	b, err := utils.GenerateTemporaryPassword(12)
	require.NoError(t, err)

	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
	assert.False(t, strings.ContainsAny(a, "0O1lI"))

	_, err = utils.GenerateTemporaryPassword(0)
	assert.Error(t, err)
}
