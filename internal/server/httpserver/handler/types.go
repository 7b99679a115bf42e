// Package handler provides HTTP request handlers for the estate
// service.
package handler

import "github.com/nainaland/estate-go/internal/core/domain"

// Response is the standard API response envelope for the catalog, blog,
// and contact endpoints. The auth endpoints respond with flat bodies
// (LoginResponse, StatusResponse) instead; failures everywhere are
// `{success, message}`.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login. The session fields
// sit at the top level, not under a data key.
type LoginResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
	User      domain.PublicUser `json:"user"`
	Token     string            `json:"token"`
	ExpiresAt int64             `json:"expiresAt"`
}

// StatusResponse is the body of a status probe. Flat, like LoginResponse.
type StatusResponse struct {
	Success       bool               `json:"success"`
	Authenticated bool               `json:"authenticated"`
	User          *domain.PublicUser `json:"user,omitempty"`
}

// ContactRequest is the request body for POST /api/contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}
