package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/rustlingbird/chirprack/apperror"
)

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 145 * time.Minute

// SessionClaims is the identity a verified token asserts.
type SessionClaims struct {
	UserID string
	Email  string
}

// TokenIssuer mints and verifies HS256 session tokens. The signing secret is
// injected once at construction, there is no ambient global and no runtime
// rotation. Tokens are stateless: verification never touches storage and
// revocation is not supported.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    SessionTTL,
		now:    time.Now,
	}
}

// Issue signs a token carrying the user id under "sub" and the email under
// "userEmail", expiring SessionTTL from now.
func (ti *TokenIssuer) Issue(userID, email string) (string, error) {
	now := ti.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       userID,
		"userEmail": email,
		"iat":       now.Unix(),
		"exp":       now.Add(ti.ttl).Unix(),
	})
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", apperror.Wrap(err, apperror.Internal, "signing session token")
	}
	return signed, nil
}

// Verify parses and validates a token, rejecting bad signatures, expired
// tokens and unexpected signing algorithms. All rejections come back as a
// single Unauthorized error so callers cannot probe for the failure reason.
func (ti *TokenIssuer) Verify(tokenString string) (*SessionClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperror.Wrap(err, apperror.Unauthorized, "invalid or expired session token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.New(apperror.Unauthorized, "invalid session token claims")
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["userEmail"].(string)
	if sub == "" {
		return nil, apperror.New(apperror.Unauthorized, "session token carries no subject")
	}
	return &SessionClaims{UserID: sub, Email: email}, nil
}
