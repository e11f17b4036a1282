package domain

import "github.com/golang-jwt/jwt/v5"

// Perfis de acesso da API
const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analyst"
)

func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleAnalyst
}

// Claims são as informações carregadas no token de acesso da API
type Claims struct {
	SubjectName string `json:"sub_name"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}
