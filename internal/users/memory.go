package users

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/models"
)

// MemoryUserRepository is an in-memory UserRepository used by unit tests and
// handler tests that do not need a running MongoDB.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	seq   int
	store map[string]*models.AdminUser
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{store: make(map[string]*models.AdminUser)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, u *models.AdminUser) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.store {
		if existing.Email == u.Email {
			return nil, ErrEmailTaken
		}
	}
	r.seq++
	if u.ID == "" {
		u.ID = fmt.Sprintf("user_%d", r.seq)
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	r.store[u.ID] = &cp
	return u, nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.store[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.store {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.AdminUser, 0, len(r.store))
	for _, u := range r.store {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryUserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.update(id, func(u *models.AdminUser) { u.Password = hash })
}

func (r *MemoryUserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.update(id, func(u *models.AdminUser) { u.IsActive = active })
}

func (r *MemoryUserRepository) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.update(id, func(u *models.AdminUser) { u.LastLogin = at })
}

func (r *MemoryUserRepository) update(id string, fn func(*models.AdminUser)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.store[id]
	if !ok {
		return ErrNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now().UTC()
	return nil
}
