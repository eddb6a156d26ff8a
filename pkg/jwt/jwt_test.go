package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogos-api/pkg/jwt"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	token, exp, err := jwt.Generate("s3cret", "admin", jwt.RoleAdmin, "catalogos-api", 30)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	sub, role, err := jwt.Parse("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
	assert.Equal(t, jwt.RoleAdmin, role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, _, err := jwt.Generate("uno", "admin", jwt.RoleAdmin, "x", 30)
	require.NoError(t, err)
	_, _, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, _, err := jwt.Generate("s3cret", "admin", jwt.RoleAdmin, "x", -1)
	require.NoError(t, err)
	_, _, err = jwt.Parse("s3cret", token)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestGenerate_SinSecret(t *testing.T) {
	_, _, err := jwt.Generate("", "admin", jwt.RoleAdmin, "x", 30)
	assert.Error(t, err)
	_, _, err = jwt.Parse("", "abc")
	assert.Error(t, err)
}
