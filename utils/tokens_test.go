package utils

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"belediyeBack/internal/models"
)

// parseClaims reads a token the way the request middleware does.
func parseClaims(token, key string) (*models.Claims, error) {
	claims := &models.Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(key), nil
	})
	return claims, err
}

func TestManagerRoundTrip(t *testing.T) {
	m, err := NewManager("secret")
	require.NoError(t, err)

	token, err := m.NewJWT(42, "admin", time.Now().Add(time.Minute))
	require.NoError(t, err)

	claims, err := parseClaims(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestManagerTokensExpireAndAreKeyed(t *testing.T) {
	m, _ := NewManager("secret")

	expired, err := m.NewJWT(1, "citizen", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = parseClaims(expired, "secret")
	assert.Error(t, err)

	valid, err := m.NewJWT(1, "citizen", time.Now().Add(time.Minute))
	require.NoError(t, err)
	_, err = parseClaims(valid, "other")
	assert.Error(t, err)
}

func TestNewManagerRequiresKey(t *testing.T) {
	_, err := NewManager("")
	assert.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
	m, _ := NewManager("secret")
	a, err := m.NewRefreshToken()
	require.NoError(t, err)
	b, _ := m.NewRefreshToken()
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
