package memory

import (
	"context"
	"sync"

	"github.com/geocoder89/portfolio-api/internal/domain/user"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User // keyed by email, so it behaves like a unique index
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[string]user.User),
	}
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}

	r.mu.RLock()
	u, ok := r.items[email]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}

	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[u.Email]; exists {
		return user.User{}, user.ErrEmailTaken
	}

	r.items[u.Email] = u

	return u, nil
}

func (r *UsersRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
