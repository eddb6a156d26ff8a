package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Catalogos-api/internal/application/dto"
	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// adminSubject subject de los tokens emitidos al administrador.
const adminSubject = "admin"

// AuthUseCase login del administrador. El hash se calcula una sola vez al arrancar.
type AuthUseCase struct {
	hash   []byte
	jwtCfg JWTConfig
}

// NewAuthUseCase hashea adminPassword con bcrypt. Una contraseña vacía es un error de configuración.
func NewAuthUseCase(adminPassword string, jwtCfg JWTConfig) (*AuthUseCase, error) {
	if adminPassword == "" {
		return nil, errors.New("auth: ADMIN_PASSWORD vacío")
	}
	if jwtCfg.Secret == "" {
		return nil, errors.New("auth: JWT_SECRET vacío")
	}
	if jwtCfg.ExpMinutes <= 0 {
		jwtCfg.ExpMinutes = 60
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash: %w", err)
	}
	return &AuthUseCase{hash: hash, jwtCfg: jwtCfg}, nil
}

// Login verifica la contraseña y genera el JWT de administración.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := bcrypt.CompareHashAndPassword(uc.hash, []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, adminSubject, jwt.RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: exp}, nil
}
