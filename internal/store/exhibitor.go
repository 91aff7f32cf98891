package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"expo-registry-backend/internal/model"
)

// CreateExhibitor validates the input, rejects an email that is already
// registered and inserts the new exhibitor.
func (s *gormStore) CreateExhibitor(ctx context.Context, in ExhibitorInput) (*model.Exhibitor, error) {
	in = in.normalized()
	if err := checkInput(in); err != nil {
		return nil, err
	}

	exhibitor := model.Exhibitor{
		Name:        in.Name,
		Email:       in.Email,
		Institution: in.Institution,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(tx, &model.Exhibitor{}, "email = ?", in.Email)
		if err != nil {
			return internalErr("check exhibitor email", err)
		}
		if taken {
			return ErrEmailTaken
		}

		// The unique index still guards against a concurrent insert of the same email.
		if err := tx.Create(&exhibitor).Error; err != nil {
			return translateWrite(err, "create exhibitor", ErrEmailTaken, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &exhibitor, nil
}

// ListExhibitors returns every exhibitor ordered by id.
func (s *gormStore) ListExhibitors(ctx context.Context) ([]model.Exhibitor, error) {
	exhibitors := make([]model.Exhibitor, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&exhibitors).Error; err != nil {
		return nil, internalErr("list exhibitors", err)
	}
	return exhibitors, nil
}

// GetExhibitor returns the exhibitor with the given id.
func (s *gormStore) GetExhibitor(ctx context.Context, id int64) (*model.Exhibitor, error) {
	return findExhibitor(s.db.WithContext(ctx), id)
}

// UpdateExhibitor replaces name, email and institution of an existing
// exhibitor. The email may stay the same but must not belong to another one.
func (s *gormStore) UpdateExhibitor(ctx context.Context, id int64, in ExhibitorInput) (*model.Exhibitor, error) {
	in = in.normalized()

	var updated *model.Exhibitor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findExhibitor(tx, id)
		if err != nil {
			return err
		}
		if err := checkInput(in); err != nil {
			return err
		}

		taken, err := exists(tx, &model.Exhibitor{}, "email = ? AND id <> ?", in.Email, id)
		if err != nil {
			return internalErr("check exhibitor email", err)
		}
		if taken {
			return ErrEmailTaken
		}

		current.Name = in.Name
		current.Email = in.Email
		current.Institution = in.Institution
		if err := tx.Save(current).Error; err != nil {
			return translateWrite(err, "update exhibitor", ErrEmailTaken, nil)
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteExhibitor removes the exhibitor together with all of its prototypes.
func (s *gormStore) DeleteExhibitor(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findExhibitor(tx, id); err != nil {
			return err
		}

		// Children first, so the delete does not depend on the driver
		// honouring ON DELETE CASCADE.
		if err := tx.Where("exhibitor_id = ?", id).Delete(&model.Prototype{}).Error; err != nil {
			return internalErr("delete exhibitor prototypes", err)
		}
		if err := tx.Delete(&model.Exhibitor{}, id).Error; err != nil {
			return internalErr("delete exhibitor", err)
		}
		return nil
	})
}

func findExhibitor(tx *gorm.DB, id int64) (*model.Exhibitor, error) {
	var exhibitor model.Exhibitor
	if err := tx.First(&exhibitor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExhibitorNotFound
		}
		return nil, internalErr("get exhibitor", err)
	}
	return &exhibitor, nil
}
