// Package token issues and redeems the signed, stateless password-action
// tokens used by the account-invite and password-reset flows.
//
// Tokens are HS256-signed and deliberately carry no expiry: their validity
// window is bounded only by rotation of the signing secret. Replay of the
// invite flow is blocked by the password-already-set business rule, not here.
package token

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/fluxt/fluxt-api/internal/core/domain"
)

// purpose fixes what a token is good for; a token minted for anything else
// must not redeem here.
const purpose = "password"

type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue mints a token binding the subject id to the password purpose.
func (c *Codec) Issue(subjectID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":     subjectID,
		"purpose": purpose,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Redeem verifies the signature and purpose and returns the subject id.
// Every failure mode (malformed encoding, bad signature, wrong algorithm,
// wrong purpose, missing subject) collapses into domain.ErrInvalidToken so
// the caller can never leak why a token was rejected.
func (c *Codec) Redeem(tok string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}

	if p, _ := claims["purpose"].(string); p != purpose {
		return "", domain.ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", domain.ErrInvalidToken
	}
	return sub, nil
}
