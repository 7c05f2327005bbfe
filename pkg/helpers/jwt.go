package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is fixed; tokens are not persisted and cannot be revoked.
const TokenLifetime = time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// JWTManager issues and verifies the bearer tokens handed out by POST /jwt.
// The secret is injected at construction; there is no package-level instance.
type JWTManager struct {
	secret []byte
	now    func() time.Time
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secret: []byte(secret), now: time.Now}
}

// WithClock replaces the time source used for both issuing and verifying.
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	m.now = now
	return m
}

// Claims is a verified token. Identity holds every claim the token was issued
// with except iat and exp; Email is its "email" entry when that is a string.
type Claims struct {
	Email    string
	Identity map[string]any
	jwt.RegisteredClaims
}

// Issue signs {"email": email}; see IssueClaims.
func (m *JWTManager) Issue(email string) (string, time.Time, error) {
	return m.IssueClaims(map[string]any{"email": email})
}

// IssueClaims signs identity as given, without validating it, and adds iat and
// a one hour exp. Caller-supplied iat or exp values are replaced.
func (m *JWTManager) IssueClaims(identity map[string]any) (string, time.Time, error) {
	iat := m.now()
	exp := iat.Add(TokenLifetime)
	claims := make(jwt.MapClaims, len(identity)+2)
	for k, v := range identity {
		claims[k] = v
	}
	claims["iat"] = jwt.NewNumericDate(iat)
	claims["exp"] = jwt.NewNumericDate(exp)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Verify checks signature and expiry. It returns ErrTokenExpired for a well-signed
// token past its expiry and ErrInvalidToken for everything else.
func (m *JWTManager) Verify(tokenStr string) (*Claims, error) {
	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, mc, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claimsFromMap(mc)
}

func claimsFromMap(mc jwt.MapClaims) (*Claims, error) {
	exp, err := mc.GetExpirationTime()
	if err != nil {
		return nil, ErrInvalidToken
	}
	iat, err := mc.GetIssuedAt()
	if err != nil {
		return nil, ErrInvalidToken
	}
	c := &Claims{
		Identity:         make(map[string]any, len(mc)),
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp, IssuedAt: iat},
	}
	for k, v := range mc {
		if k == "iat" || k == "exp" {
			continue
		}
		c.Identity[k] = v
	}
	c.Email, _ = mc["email"].(string)
	return c, nil
}
