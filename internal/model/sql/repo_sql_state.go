package sql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"collectibles/internal/entity/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned by GetState for a missing key.
var ErrNotFound = errors.New("state not found")

// GetState loads one state row by key.
func (r *GormRepository) GetState(ctx context.Context, key string) (*db.ClientState, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var row db.ClientState
	err := r.db.WithContext(ctx).Where("state_key = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// PutState inserts or replaces a state row.
func (r *GormRepository) PutState(ctx context.Context, key, value string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("invalid key")
	}
	row := db.ClientState{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"state_value", "updated_at"}),
	}).Create(&row).Error
}

// DeleteState removes a state row. Missing keys are not an error.
func (r *GormRepository) DeleteState(ctx context.Context, key string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	return r.db.WithContext(ctx).Where("state_key = ?", key).Delete(&db.ClientState{}).Error
}

// ListStateKeys returns keys starting with prefix.
func (r *GormRepository) ListStateKeys(ctx context.Context, prefix string) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var keys []string
	query := r.db.WithContext(ctx).Model(&db.ClientState{})
	if prefix != "" {
		query = query.Where("state_key LIKE ? ESCAPE '!'", escapeLike(prefix)+"%")
	}
	if err := query.Order("state_key").Pluck("state_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return replacer.Replace(value)
}
