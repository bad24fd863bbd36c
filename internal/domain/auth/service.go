package auth

import (
	"context"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// Me returns the account behind the access token in ctx
	Me(ctx context.Context) (UserResponse, error)
}
