package models

import (
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Research is a research write-up with its authors and body sections.
type Research struct {
	Model
	Title               string                                  `json:"title" gorm:"type:text;not null" validate:"required"`
	Category            string                                  `json:"category" gorm:"type:text;not null;default:''"`
	Year                string                                  `json:"year" gorm:"type:varchar(4);not null;default:''" validate:"max=4"`
	Tags                string                                  `json:"tags" gorm:"type:text;not null;default:''"`
	TitleImage          string                                  `json:"titleImage" gorm:"column:title_image;type:text;not null;default:''"`
	Authors             datatypes.JSONSlice[Author]             `json:"authors" gorm:"column:authors;not null" validate:"dive"`
	ContentSections     datatypes.JSONSlice[ContentSection]     `json:"contentSections" gorm:"column:content_sections;not null" validate:"dive"`
	RelatedPublications datatypes.JSONSlice[RelatedPublication] `json:"relatedPublications" gorm:"column:related_publications;not null" validate:"dive"`
}

func (Research) TableName() string {
	return "research"
}

// Normalize trims the title and replaces absent lists with empty ones.
func (r *Research) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Year = strings.TrimSpace(r.Year)
	if r.Authors == nil {
		r.Authors = datatypes.JSONSlice[Author]{}
	}
	if r.ContentSections == nil {
		r.ContentSections = datatypes.JSONSlice[ContentSection]{}
	}
	if r.RelatedPublications == nil {
		r.RelatedPublications = datatypes.JSONSlice[RelatedPublication]{}
	}
}

func (r *Research) BeforeSave(tx *gorm.DB) error {
	r.Normalize()
	return nil
}

func (r *Research) AfterFind(tx *gorm.DB) error {
	r.Normalize()
	return nil
}
