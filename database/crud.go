package database

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rpupo63/research-lab-backend/errs"
	"github.com/rpupo63/research-lab-backend/models"
)

// record constrains P to be a pointer to an entity type T.
type record[T any] interface {
	*T
	models.Record
}

// crud holds the operations every entity repository shares. Each call is a
// single autocommit statement; concurrent updates are last-write-wins.
type crud[T any, P record[T]] struct {
	db     *gorm.DB
	entity string
	now    func() time.Time
}

func newCrud[T any, P record[T]](db *gorm.DB, entity string) crud[T, P] {
	return crud[T, P]{db: db, entity: entity, now: time.Now}
}

// FindAll returns every row, newest first. It never returns a nil slice.
func (r crud[T, P]) FindAll(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

// FindByID returns the row with the given id, or gorm.ErrRecordNotFound.
func (r crud[T, P]) FindByID(ctx context.Context, id uint) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Add inserts a new row; the datastore assigns the id.
func (r crud[T, P]) Add(ctx context.Context, row *T) error {
	p := P(row)
	p.Normalize()
	base := p.Base()
	base.ID = 0
	base.StampCreated(r.now())
	return r.db.WithContext(ctx).Create(row).Error
}

// Update writes every column of an existing row except id and created_at.
func (r crud[T, P]) Update(ctx context.Context, row *T) error {
	p := P(row)
	p.Normalize()
	base := p.Base()
	if base.ID == 0 {
		return errs.NewMissingRequiredFieldError("id")
	}
	base.StampUpdated(r.now())

	result := r.db.WithContext(ctx).
		Model(row).
		Select("*").
		Omit("id", "created_at").
		Updates(row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound(r.entity)
	}
	return nil
}

// Delete removes a row by id. References held elsewhere are left untouched.
func (r crud[T, P]) Delete(ctx context.Context, id uint) error {
	var row T
	result := r.db.WithContext(ctx).Delete(&row, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound(r.entity)
	}
	return nil
}
