package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"text-summary/models"
)

type TextSummaryRepository struct {
	db *gorm.DB
}

func NewTextSummaryRepository(db *gorm.DB) *TextSummaryRepository {
	return &TextSummaryRepository{db: db}
}

func (r *TextSummaryRepository) Create(ctx context.Context, m *models.TextSummary) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// FindByID returns the record or gorm.ErrRecordNotFound.
func (r *TextSummaryRepository) FindByID(ctx context.Context, id int64) (*models.TextSummary, error) {
	var m models.TextSummary
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *TextSummaryRepository) List(ctx context.Context) ([]models.TextSummary, error) {
	var items []models.TextSummary
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TextSummaryRepository) Update(ctx context.Context, m *models.TextSummary) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *TextSummaryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.TextSummary{}, id).Error
}

// UpdateSummary overwrites the summary column of an existing record
// inside a scoped transaction. A missing id is a no-op, not an error:
// the generator must never create records, and a generation racing a
// delete stays idempotent. Returns whether a row was written.
func (r *TextSummaryRepository) UpdateSummary(ctx context.Context, id int64, summary string) (bool, error) {
	updated := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.TextSummary
		if err := tx.First(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		m.Summary = summary
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		updated = true
		return nil
	})
	return updated, err
}
