package user

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"agrimart-be/internal/store"
)

type storeRepository struct {
	store store.Store
	now   func() time.Time
	mu    sync.Mutex
}

// NewStoreRepository keeps accounts in a key-value store, for deployments
// without postgres.
func NewStoreRepository(st store.Store) Repository {
	return &storeRepository{store: st, now: time.Now}
}

func userKey(id int64) string { return "user:id:" + strconv.FormatInt(id, 10) }

func emailKey(email string) string { return "user:email:" + strings.ToLower(email) }

const seqKey = "user:seq"

func (r *storeRepository) Create(ctx context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.store.Get(ctx, emailKey(u.Email)); err == nil {
		return User{}, ErrEmailExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return User{}, err
	}

	id, err := r.nextID(ctx)
	if err != nil {
		return User{}, err
	}

	now := r.now().UTC()
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	if err := r.put(ctx, u); err != nil {
		return User{}, err
	}
	if err := r.store.Set(ctx, emailKey(u.Email), []byte(strconv.FormatInt(id, 10))); err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *storeRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	raw, err := r.store.Get(ctx, emailKey(email))
	if errors.Is(err, store.ErrNotFound) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}

	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return User{}, err
	}
	return r.FindByID(ctx, id)
}

func (r *storeRepository) FindByID(ctx context.Context, id int64) (User, error) {
	raw, err := r.store.Get(ctx, userKey(id))
	if errors.Is(err, store.ErrNotFound) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}

	var rec userRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return User{}, err
	}
	return rec.toUser(), nil
}

func (r *storeRepository) UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, err := r.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if input.Name != nil {
		u.Name = *input.Name
	}
	if input.Phone != nil {
		u.Phone = *input.Phone
	}
	if input.AvatarURL != nil {
		u.AvatarURL = *input.AvatarURL
	}
	u.UpdatedAt = r.now().UTC()

	return u, r.put(ctx, u)
}

func (r *storeRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.Password = hash
	u.UpdatedAt = r.now().UTC()
	return r.put(ctx, u)
}

func (r *storeRepository) nextID(ctx context.Context) (int64, error) {
	var id int64
	raw, err := r.store.Get(ctx, seqKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return 0, err
	default:
		if id, err = strconv.ParseInt(string(raw), 10, 64); err != nil {
			return 0, err
		}
	}

	id++
	return id, r.store.Set(ctx, seqKey, []byte(strconv.FormatInt(id, 10)))
}

// userRecord is User with the password hash serialized.
type userRecord struct {
	User
	PasswordHash string `json:"passwordHash"`
}

func (r userRecord) toUser() User {
	u := r.User
	u.Password = r.PasswordHash
	return u
}

func (r *storeRepository) put(ctx context.Context, u User) error {
	raw, err := json.Marshal(userRecord{User: u, PasswordHash: u.Password})
	if err != nil {
		return err
	}
	return r.store.Set(ctx, userKey(u.ID), raw)
}
