package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "portfolio-cms"

// DefaultTokenLifespan applies when no positive lifespan is configured.
const DefaultTokenLifespan = 24 * time.Hour

type JWTService struct {
	secretKey     []byte
	tokenLifespan time.Duration
}

// FlagClaims carries one persisted key/value flag, e.g. admin_session=true.
// Binding ties the token to the credential it was issued for.
type FlagClaims struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Binding string `json:"bnd,omitempty"`
	jwt.RegisteredClaims
}

func NewJWTService(secretKey string, tokenLifespan time.Duration) *JWTService {
	if tokenLifespan <= 0 {
		tokenLifespan = DefaultTokenLifespan
	}
	return &JWTService{
		secretKey:     []byte(secretKey),
		tokenLifespan: tokenLifespan,
	}
}

func (s *JWTService) Lifespan() time.Duration {
	return s.tokenLifespan
}

// Fingerprint is an HMAC of v under the signing key. Tokens carry it instead
// of the credential itself.
func (s *JWTService) Fingerprint(v string) string {
	mac := hmac.New(sha256.New, s.secretKey)
	mac.Write([]byte(v))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *JWTService) GenerateToken(key, value, binding string) (string, error) {
	now := time.Now()
	claims := FlagClaims{
		Key:     key,
		Value:   value,
		Binding: binding,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifespan)),
			Subject:   key,
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("cannot sign token: %w", err)
	}

	return signedString, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*FlagClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &FlagClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signature algorithm: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(*FlagClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("error when parsing token claims")
}

// RandomSecret returns a hex encoded 32 byte secret for processes started
// without a configured signing key.
func RandomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
