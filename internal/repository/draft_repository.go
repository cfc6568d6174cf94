package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"dayplan-tracker/internal/model"
	"dayplan-tracker/internal/planner"
)

// DraftRepository stores advisory client autosaves of unsubmitted
// plans. Drafts are a lower-authority store kept apart from plans:
// nothing here ever changes a Plan, and a saved draft is never treated
// as a submission.
type DraftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

// Save upserts the autosave payload for one owner and date.
func (r *DraftRepository) Save(ctx context.Context, ownerID uint, date, payload string, savedAt time.Time) error {
	var draft model.Draft
	db := r.db.WithContext(ctx)
	err := db.Where("owner_id = ? AND date = ?", ownerID, date).First(&draft).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"payload":  payload,
			"saved_at": savedAt,
		}
		if err := db.Model(&draft).Updates(updates).Error; err != nil {
			return fmt.Errorf("update draft: %w", err)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		draft = model.Draft{
			OwnerID: ownerID,
			Date:    date,
			Payload: payload,
			SavedAt: savedAt,
		}
		if err := db.Create(&draft).Error; err != nil {
			return fmt.Errorf("create draft: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("find draft: %w", err)
	}
}

func (r *DraftRepository) Load(ctx context.Context, ownerID uint, date string) (*model.Draft, error) {
	var draft model.Draft
	err := r.db.WithContext(ctx).Where("owner_id = ? AND date = ?", ownerID, date).First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, planner.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	return &draft, nil
}

// Delete removes the autosave; missing rows are not an error, so the
// submit path can always clear unconditionally.
func (r *DraftRepository) Delete(ctx context.Context, ownerID uint, date string) error {
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND date = ?", ownerID, date).
		Delete(&model.Draft{}).Error; err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
