package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"expo-registry-backend/internal/model"
)

// CreatePrototype validates the input, checks that the owning exhibitor
// exists and that it has no prototype with the same title, then inserts.
func (s *gormStore) CreatePrototype(ctx context.Context, in PrototypeInput) (*model.Prototype, error) {
	in = in.normalized()
	if err := checkInput(in); err != nil {
		return nil, err
	}

	prototype := model.Prototype{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		ExhibitorID: in.ExhibitorID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findExhibitor(tx, in.ExhibitorID); err != nil {
			return err
		}

		dup, err := exists(tx, &model.Prototype{}, "title = ? AND exhibitor_id = ?", in.Title, in.ExhibitorID)
		if err != nil {
			return internalErr("check prototype title", err)
		}
		if dup {
			return ErrDuplicateTitle
		}

		if err := tx.Create(&prototype).Error; err != nil {
			return translateWrite(err, "create prototype", ErrDuplicateTitle, ErrExhibitorNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &prototype, nil
}

// ListPrototypes returns every prototype ordered by id.
func (s *gormStore) ListPrototypes(ctx context.Context) ([]model.Prototype, error) {
	prototypes := make([]model.Prototype, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&prototypes).Error; err != nil {
		return nil, internalErr("list prototypes", err)
	}
	return prototypes, nil
}

// GetPrototype returns the prototype with the given id.
func (s *gormStore) GetPrototype(ctx context.Context, id int64) (*model.Prototype, error) {
	return findPrototype(s.db.WithContext(ctx), id)
}

// ListPrototypesByExhibitor returns the prototypes owned by an existing exhibitor.
func (s *gormStore) ListPrototypesByExhibitor(ctx context.Context, exhibitorID int64) ([]model.Prototype, error) {
	prototypes := make([]model.Prototype, 0)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findExhibitor(tx, exhibitorID); err != nil {
			return err
		}
		if err := tx.Where("exhibitor_id = ?", exhibitorID).Order("id").Find(&prototypes).Error; err != nil {
			return internalErr("list exhibitor prototypes", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prototypes, nil
}

// UpdatePrototype overwrites every field of an existing prototype. The
// prototype may move to another exhibitor, which must exist and must not
// already own a different prototype with the same title.
func (s *gormStore) UpdatePrototype(ctx context.Context, id int64, in PrototypeInput) (*model.Prototype, error) {
	in = in.normalized()

	var updated *model.Prototype
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findPrototype(tx, id)
		if err != nil {
			return err
		}
		if err := checkInput(in); err != nil {
			return err
		}
		if _, err := findExhibitor(tx, in.ExhibitorID); err != nil {
			return err
		}

		dup, err := exists(tx, &model.Prototype{},
			"title = ? AND exhibitor_id = ? AND id <> ?", in.Title, in.ExhibitorID, id)
		if err != nil {
			return internalErr("check prototype title", err)
		}
		if dup {
			return ErrDuplicateTitle
		}

		current.Title = in.Title
		current.Description = in.Description
		current.Category = in.Category
		current.ExhibitorID = in.ExhibitorID
		if err := tx.Save(current).Error; err != nil {
			return translateWrite(err, "update prototype", ErrDuplicateTitle, ErrExhibitorNotFound)
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeletePrototype removes a single prototype.
func (s *gormStore) DeletePrototype(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findPrototype(tx, id); err != nil {
			return err
		}
		if err := tx.Delete(&model.Prototype{}, id).Error; err != nil {
			return internalErr("delete prototype", err)
		}
		return nil
	})
}

func findPrototype(tx *gorm.DB, id int64) (*model.Prototype, error) {
	var prototype model.Prototype
	if err := tx.First(&prototype, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPrototypeNotFound
		}
		return nil, internalErr("get prototype", err)
	}
	return &prototype, nil
}
