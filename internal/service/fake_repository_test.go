package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-identity/internal/store"
	"github.com/MKhiriev/go-identity/models"
)

// memoryUserRepository is an in-memory store.UserRepository with the same
// visible behaviour as the SQL one: live-first lookups and unique live
// usernames.
type memoryUserRepository struct {
	mu     sync.Mutex
	users  map[string]models.User
	order  []string
	writes int
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]models.User)}
}

func (r *memoryUserRepository) FindByCondition(_ context.Context, cond models.UserCondition) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cond.ID == "" && cond.Username == "" {
		return models.User{}, store.ErrEmptyCondition
	}

	var (
		found models.User
		ok    bool
	)
	// iterate newest first so the first live match wins
	for i := len(r.order) - 1; i >= 0; i-- {
		u := r.users[r.order[i]]
		if cond.ID != "" && u.ID != cond.ID {
			continue
		}
		if cond.Username != "" && u.Username != cond.Username {
			continue
		}
		if cond.LiveOnly && u.Status == models.StatusDeleted {
			continue
		}
		if !ok || (found.Status == models.StatusDeleted && u.Status != models.StatusDeleted) {
			found, ok = u, true
		}
	}
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}

	return found, nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}
	return u, nil
}

func (r *memoryUserRepository) Insert(_ context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.liveUsernameTaken(user.Username, user.ID) {
		return store.ErrUsernameAlreadyExists
	}

	r.users[user.ID] = user
	r.order = append(r.order, user.ID)
	r.writes++
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, id string, update models.UserUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return store.ErrNoUserWasFound
	}

	if update.Username != nil {
		if r.liveUsernameTaken(*update.Username, id) {
			return store.ErrUsernameAlreadyExists
		}
		u.Username = *update.Username
	}
	if update.Password != nil {
		u.Password = *update.Password
	}
	if update.Salt != nil {
		u.Salt = *update.Salt
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.Status != nil {
		u.Status = *update.Status
	}
	u.UpdatedAt = update.UpdatedAt

	r.users[id] = u
	r.writes++
	return nil
}

func (r *memoryUserRepository) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return store.ErrNoUserWasFound
	}

	u.Status = models.StatusDeleted
	r.users[id] = u
	r.writes++
	return nil
}

func (r *memoryUserRepository) liveUsernameTaken(username, exceptID string) bool {
	for _, u := range r.users {
		if u.ID != exceptID && u.Username == username && u.Status != models.StatusDeleted {
			return true
		}
	}
	return false
}

// set overwrites a stored user directly, bypassing the service.
func (r *memoryUserRepository) set(user models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
}
