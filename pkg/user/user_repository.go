package user

import (
	"EatBefore/entities"
	"EatBefore/pkg/kv"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	NameKey    = "userName"
	EmailKey   = "userEmail"
	TokenKey   = "userToken"
	AccountKey = "userAccount"
)

type (
	UserRepository interface {
		GetAccount(ctx context.Context) (*entities.Account, error)
		SaveAccount(ctx context.Context, account *entities.Account) error
		GetValue(ctx context.Context, key string) (string, error)
		SetValue(ctx context.Context, key, value string) error
		DeleteValue(ctx context.Context, key string) error
	}

	userRepository struct {
		store kv.Store
	}
)

func NewUserRepository(store kv.Store) UserRepository {
	return &userRepository{store: store}
}

// GetAccount returns nil without error when no account was ever created.
func (r *userRepository) GetAccount(ctx context.Context) (*entities.Account, error) {
	raw, err := r.store.Get(ctx, AccountKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var account entities.Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("failed to decode local account: %w", err)
	}
	return &account, nil
}

func (r *userRepository) SaveAccount(ctx context.Context, account *entities.Account) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, AccountKey, raw)
}

// GetValue returns "" for a key that was never set.
func (r *userRepository) GetValue(ctx context.Context, key string) (string, error) {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(raw), nil
}

func (r *userRepository) SetValue(ctx context.Context, key, value string) error {
	return r.store.Set(ctx, key, []byte(value))
}

func (r *userRepository) DeleteValue(ctx context.Context, key string) error {
	return r.store.Delete(ctx, key)
}
