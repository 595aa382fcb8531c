package api

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/limbo/trkr/internal/provider/openfoodfacts"
	"github.com/limbo/trkr/pkg/entity"
)

type JWTServiceI interface {
	GenerateToken(user *entity.User) (string, error)
	ParseToken(tokenString string) (*JWTClaims, error)
}

type JWTClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// SyncerI is the remote replication worker as the handlers see it.
type SyncerI interface {
	SetUser(uid uuid.UUID)
	ClearUser()
	Drain(ctx context.Context) error
	PullAll(ctx context.Context) error
	Pending() int
}

// FoodLookupI is the third-party food database boundary.
type FoodLookupI interface {
	Search(ctx context.Context, query string, page int) ([]openfoodfacts.Food, error)
	Barcode(ctx context.Context, code string) (*openfoodfacts.Food, error)
}
