package storage

import (
	"context"
	"errors"

	"collectibles/internal/model"
)

// SQLStore adapts a model.Repository (sqlite, mysql, postgres) to Store.
type SQLStore struct {
	repo model.Repository
}

func NewSQLStore(repo model.Repository) *SQLStore {
	return &SQLStore{repo: repo}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	row, err := s.repo.GetState(ctx, key)
	if errors.Is(err, model.ErrStateNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(row.Value), true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	return s.repo.PutState(ctx, key, string(value))
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	return s.repo.DeleteState(ctx, key)
}

// Keys lists stored keys with the given prefix.
func (s *SQLStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	return s.repo.ListStateKeys(ctx, prefix)
}

func (s *SQLStore) Close() error {
	return s.repo.Close()
}
