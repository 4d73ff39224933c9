package user

import "context"

// TokenGenerator issues access tokens for authenticated users (e.g., JWT).
type TokenGenerator interface {
	Generate(ctx context.Context, u User) (string, error)
}
