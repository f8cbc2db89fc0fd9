package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/docdesk/internal/errs"
)

// Verifier validates a raw Authorization header. The customer and employee
// verifiers share secret and algorithm and differ only in the claim they
// require.
type Verifier struct {
	secret   []byte
	required string
}

// NewCustomerVerifier requires the "id" claim.
func NewCustomerVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), required: "id"}
}

// NewEmployeeVerifier requires the "employee_id" claim.
func NewEmployeeVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), required: "employee_id"}
}

// Verify expects "Bearer <token>". The scheme is checked before the token
// is parsed, so a foreign scheme fails regardless of the token. Every
// failure is errs.Unauthorized.
func (v *Verifier) Verify(header string) (Claims, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return Claims{}, errs.Unauthorized()
	}

	tok, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return Claims{}, errs.Unauthorized()
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errs.Unauthorized()
	}

	c := Claims{
		ID:         str(mc["id"]),
		EmployeeID: str(mc["employee_id"]),
		CompanyID:  str(mc["company_id"]),
		Role:       str(mc["role"]),
	}
	if str(mc[v.required]) == "" {
		return Claims{}, errs.Unauthorized()
	}
	return c, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
