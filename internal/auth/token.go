// Package auth issues and verifies the bearer credentials used by customers
// and employees.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the validity window of every credential.
const TokenTTL = 30 * 24 * time.Hour

// Roles carried by employee credentials.
const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMP"
)

// Claims is the identity decoded from a verified credential. Customer
// credentials fill ID, employee credentials fill the other three.
type Claims struct {
	ID         string `json:"id,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	CompanyID  string `json:"company_id,omitempty"`
	Role       string `json:"role,omitempty"`
}

// Subject is the employee id of an employee credential and the customer id
// otherwise.
func (c Claims) Subject() string {
	if c.EmployeeID != "" {
		return c.EmployeeID
	}
	return c.ID
}

// Signer builds HS256 tokens with the shared secret.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner returns a Signer issuing tokens valid for TokenTTL.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret), ttl: TokenTTL, now: time.Now}
}

// Customer signs {id}.
func (s *Signer) Customer(id string) (string, error) {
	return s.sign(jwt.MapClaims{"id": id})
}

// Employee signs {employee_id, company_id, role}.
func (s *Signer) Employee(employeeID, companyID, role string) (string, error) {
	return s.sign(jwt.MapClaims{
		"employee_id": employeeID,
		"company_id":  companyID,
		"role":        role,
	})
}

func (s *Signer) sign(claims jwt.MapClaims) (string, error) {
	now := s.now().UTC()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.ttl).Unix()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
