package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"review-server/internal/observability"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "review-server"
	tokenAudience = "review-server"
	tokenTTL      = 24 * time.Hour
)

var (
	ErrInvalidJWTToken = errors.New("invalid jwt token")
	ErrParseJWTToken   = errors.New("failed to parse jwt token")
	ErrExpiredToken    = errors.New("token expired")
	ErrMissingAccount  = errors.New("token has no account")
	ErrFailedSignToken = errors.New("failed to sign token")
)

// BaseClaims are the claims carried by an account owner's session token.
type BaseClaims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
}

// AuthProcessor issues and validates account session tokens.
type AuthProcessor struct {
	secret []byte
	logger *observability.Logger
	now    func() time.Time
}

func New(jwtSecret string, logger *observability.Logger) AuthProcessor {
	return AuthProcessor{
		secret: []byte(jwtSecret),
		logger: logger,
		now:    time.Now,
	}
}

// GenerateJWTToken signs a token for the account owner.
func (p *AuthProcessor) GenerateJWTToken(ctx context.Context, accountID uuid.UUID) (string, error) {
	now := p.now()
	claims := BaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		AccountID: accountID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(p.secret)
	if err != nil {
		p.logger.Error(ctx, "failed to sign token", err)
		return "", ErrFailedSignToken
	}
	return tokenString, nil
}

// ValidateJWTToken parses the token and returns the account it was issued for.
func (p *AuthProcessor) ValidateJWTToken(ctx context.Context, token string) (uuid.UUID, error) {
	var claims BaseClaims
	t, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			p.logger.Warn(ctx, "token expired")
			return uuid.Nil, ErrExpiredToken
		}
		p.logger.Error(ctx, "failed to parse token", err)
		return uuid.Nil, ErrParseJWTToken
	}
	if !t.Valid {
		return uuid.Nil, ErrInvalidJWTToken
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return uuid.Nil, ErrMissingAccount
	}
	return accountID, nil
}
