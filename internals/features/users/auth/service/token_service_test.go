package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dugsiku_backend/internals/configs"
	"dugsiku_backend/internals/features/users/auth/model"
)

func testUser() *model.UserModel {
	schoolID := uuid.New()
	return &model.UserModel{
		ID:       uuid.New(),
		UserName: "xaliimo",
		Role:     "admin",
		SchoolID: &schoolID,
	}
}

func TestGenerateTokenPairRoundTrip(t *testing.T) {
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"

	u := testUser()
	access, refresh, err := GenerateTokenPair(u)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims["user_id"])
	assert.Equal(t, "xaliimo", claims["user_name"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, u.SchoolID.String(), claims["school_id"])
}

func TestParseRefreshTokenRejectsAccessToken(t *testing.T) {
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"

	access, _, err := GenerateTokenPair(testUser())
	require.NoError(t, err)

	// Access tokens are signed with a different secret.
	_, err = ParseRefreshToken(access)
	assert.Error(t, err)
}

func TestParseRefreshTokenRejectsWrongAlg(t *testing.T) {
	configs.JWTRefreshSecret = "test-refresh-secret"

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "x"})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseRefreshToken(signed)
	assert.Error(t, err)
}

func TestSignTokenRequiresSecret(t *testing.T) {
	configs.JWTSecret = ""
	configs.JWTRefreshSecret = "x"

	_, _, err := GenerateTokenPair(testUser())
	assert.Error(t, err)
}
