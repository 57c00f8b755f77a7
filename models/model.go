package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/rpupo63/research-lab-backend/errs"
)

// Model carries the columns every entity shares.
type Model struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt Timestamp `json:"createdAt" gorm:"not null;index"`
	UpdatedAt Timestamp `json:"updatedAt" gorm:"not null"`
}

// Base exposes the shared columns of any entity embedding Model.
func (m *Model) Base() *Model {
	return m
}

// StampCreated assigns the timestamps of a new row.
func (m *Model) StampCreated(now time.Time) {
	now = now.UTC().Truncate(time.Millisecond)
	m.CreatedAt = Timestamp(now)
	m.UpdatedAt = Timestamp(now)
}

// StampUpdated moves UpdatedAt forward by at least one millisecond, the
// resolution timestamps are rendered at.
func (m *Model) StampUpdated(now time.Time) {
	now = now.UTC().Truncate(time.Millisecond)
	previous := m.UpdatedAt.Time().Truncate(time.Millisecond)
	if !now.After(previous) {
		now = previous.Add(time.Millisecond)
	}
	m.UpdatedAt = Timestamp(now)
}

// Record is implemented by the four persisted entity types.
type Record interface {
	Base() *Model
	Normalize()
}

// ParseID parses a positive entity id.
func ParseID(raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, errs.NewInvalidIDError(raw)
	}
	return uint(id), nil
}
