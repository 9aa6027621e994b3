package repository

import (
	"context"
	"time"

	"photoset/api/internal/model"
)

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByToken(ctx context.Context, token string) (*model.Session, error)
	TouchActivity(ctx context.Context, token string) error
	DeleteByToken(ctx context.Context, token string) error
	CountActiveUsersSince(ctx context.Context, since time.Time) (int64, error)
}
