package auth

import (
	"time"

	"github.com/polkiloo/ordermart/internal/domain/model"
)

// Claims is the identity carried by a token.
type Claims struct {
	UserID int64
	Role   model.Role
}

// TokenParser validates tokens and extracts claims.
type TokenParser interface {
	ParseToken(token string) (Claims, error)
}

type Strategy interface {
	TokenParser
	IssueToken(claims Claims) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
