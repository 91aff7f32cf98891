package store

import (
	"context"

	"gorm.io/gorm"

	"expo-registry-backend/internal/model"
)

// Store defines the interface for all database operations.
//
// Each mutating operation runs in a single transaction: every check happens
// before the first write, and a failed check leaves storage untouched.
type Store interface {
	Ping(ctx context.Context) error

	CreateExhibitor(ctx context.Context, in ExhibitorInput) (*model.Exhibitor, error)
	ListExhibitors(ctx context.Context) ([]model.Exhibitor, error)
	GetExhibitor(ctx context.Context, id int64) (*model.Exhibitor, error)
	UpdateExhibitor(ctx context.Context, id int64, in ExhibitorInput) (*model.Exhibitor, error)
	DeleteExhibitor(ctx context.Context, id int64) error

	CreatePrototype(ctx context.Context, in PrototypeInput) (*model.Prototype, error)
	ListPrototypes(ctx context.Context) ([]model.Prototype, error)
	GetPrototype(ctx context.Context, id int64) (*model.Prototype, error)
	ListPrototypesByExhibitor(ctx context.Context, exhibitorID int64) ([]model.Prototype, error)
	UpdatePrototype(ctx context.Context, id int64, in PrototypeInput) (*model.Prototype, error)
	DeletePrototype(ctx context.Context, id int64) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Ping checks that the database is reachable.
func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return internalErr("get sql.DB", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return internalErr("ping database", err)
	}
	return nil
}

// exists reports whether any row of m's table matches the condition.
func exists(tx *gorm.DB, m any, query string, args ...any) (bool, error) {
	var count int64
	if err := tx.Model(m).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
