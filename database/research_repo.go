package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/rpupo63/research-lab-backend/models"
)

type ResearchRepo struct {
	crud[models.Research, *models.Research]
}

func NewResearchRepo(db *gorm.DB) *ResearchRepo {
	return &ResearchRepo{newCrud[models.Research](db, "research")}
}

// FindByIDs returns the research rows among ids that still exist, newest first.
func (r *ResearchRepo) FindByIDs(ctx context.Context, ids []uint) ([]models.Research, error) {
	research := make([]models.Research, 0, len(ids))
	if len(ids) == 0 {
		return research, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at DESC").
		Order("id DESC").
		Find(&research).Error
	return research, err
}
