package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mernspace/auth-service/internal/models"
	"github.com/mernspace/auth-service/internal/util"
)

var (
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenInvalid         = errors.New("token invalid")
	ErrInvalidSigningMethod = errors.New("invalid signing method")
)

// TokenService mints and verifies both halves of the dual-key scheme:
// access tokens are RS256 signed with the private key and verified with the
// public key; refresh tokens are HS256 signed with the shared secret and
// carry the persisted session id in the jti claim.
type TokenService struct {
	cfg *util.TokenConfig
}

func NewTokenService(cfg *util.TokenConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

type jwtClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

func (ts *TokenService) AccessTTL() time.Duration  { return ts.cfg.AccessTTL }
func (ts *TokenService) RefreshTTL() time.Duration { return ts.cfg.RefreshTTL }

func (ts *TokenService) GenerateAccessToken(payload models.AuthPayload) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		Role: payload.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.Sub,
			Issuer:    util.TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.cfg.AccessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signedToken, err := token.SignedString(ts.cfg.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signedToken, nil
}

func (ts *TokenService) GenerateRefreshToken(payload models.AuthPayload, sessionID int64) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		Role: payload.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        strconv.FormatInt(sessionID, 10),
			Subject:   payload.Sub,
			Issuer:    util.TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.cfg.RefreshTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(ts.cfg.RefreshSecret)
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return signedToken, nil
}

// ParseAccessToken verifies an access token against the public key and the
// fixed issuer and returns the decoded identity.
func (ts *TokenService) ParseAccessToken(token string) (*models.AuthPayload, error) {
	claims, err := ts.parse(token, jwt.SigningMethodRS256.Alg(), func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodRS256.Alg() {
			return nil, ErrInvalidSigningMethod
		}
		return ts.cfg.PublicKey, nil
	})
	if err != nil {
		return nil, err
	}

	return &models.AuthPayload{Sub: claims.Subject, Role: claims.Role}, nil
}

// ParseRefreshToken verifies a refresh token against the symmetric secret and
// extracts the session id from the jti claim. Signature validity alone does
// not prove the session still exists; callers must check the store.
func (ts *TokenService) ParseRefreshToken(token string) (*models.AuthPayload, error) {
	claims, err := ts.parse(token, jwt.SigningMethodHS256.Alg(), func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrInvalidSigningMethod
		}
		return ts.cfg.RefreshSecret, nil
	})
	if err != nil {
		return nil, err
	}

	sessionID, err := strconv.ParseInt(claims.ID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad jti claim", ErrTokenInvalid)
	}

	return &models.AuthPayload{Sub: claims.Subject, Role: claims.Role, SessionID: sessionID}, nil
}

func (ts *TokenService) parse(token, alg string, keyFunc jwt.Keyfunc) (*jwtClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{alg}),
		jwt.WithIssuer(util.TokenIssuer),
		jwt.WithLeeway(util.JWTLeeWay),
		jwt.WithExpirationRequired(),
	}

	parsedToken, err := jwt.ParseWithClaims(token, &jwtClaims{}, keyFunc, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if parsedToken == nil || !parsedToken.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := parsedToken.Claims.(*jwtClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	if _, err := strconv.ParseInt(claims.Subject, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: bad sub claim", ErrTokenInvalid)
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role", ErrTokenInvalid)
	}

	return claims, nil
}
