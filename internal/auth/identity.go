// internal/auth/identity.go
package auth

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smurfs/mathic-client/internal/models"
)

// IdentityFromToken decodes the bearer token's claims to recover the local
// identity without a network round trip. The client holds no verification
// key, so the claims are read unverified; the server re-checks the token on
// every authenticated call anyway.
func IdentityFromToken(token string) (*models.Identity, error) {
	parser := jwt.NewParser()
	t, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: token decode: %v", models.ErrUnauthorized, err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected token claims", models.ErrUnauthorized)
	}

	id, err := subjectID(claims)
	if err != nil {
		return nil, err
	}

	ident := &models.Identity{ID: id}
	for _, key := range []string{"userName", "username", "name"} {
		if name, ok := claims[key].(string); ok && name != "" {
			ident.UserName = name
			break
		}
	}
	return ident, nil
}

// subjectID extracts the numeric participant id from the "sub" claim, which
// some token issuers encode as a JSON number and others as a string.
func subjectID(claims jwt.MapClaims) (int64, error) {
	switch sub := claims["sub"].(type) {
	case float64:
		return int64(sub), nil
	case string:
		id, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: non-numeric sub claim %q", models.ErrUnauthorized, sub)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("%w: missing sub claim", models.ErrUnauthorized)
	}
}
