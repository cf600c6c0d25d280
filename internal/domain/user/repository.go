package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	CountByEmail(ctx context.Context, email, excludeID string) (int64, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, token string) (*Session, error)
	DeleteSession(ctx context.Context, token string) error
}
