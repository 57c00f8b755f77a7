package models

import (
	"strings"

	"gorm.io/gorm"
)

// Publication is a paper, chapter or preprint. Type is free text
// (Journal, Conference, Book Chapter, Review, Preprint in practice).
type Publication struct {
	Model
	Title       string `json:"title" gorm:"type:text;not null;default:''"`
	Authors     string `json:"authors" gorm:"type:text;not null;default:''"`
	Year        string `json:"year" gorm:"type:text;not null;default:''"`
	Type        string `json:"type" gorm:"column:type;type:text;not null;default:''"`
	Journal     string `json:"journal" gorm:"type:text;not null;default:''"`
	DOI         string `json:"doi" gorm:"column:doi;type:text;not null;default:''"`
	Description string `json:"description" gorm:"type:text;not null;default:''"`
	Link        string `json:"link" gorm:"type:text;not null;default:''"`
	PdfURL      string `json:"pdfUrl" gorm:"column:pdf_url;type:text;not null;default:''"`
	ImageURL    string `json:"imageUrl" gorm:"column:image_url;type:text;not null;default:''"`
	Tags        string `json:"tags" gorm:"type:text;not null;default:''"`
}

func (p *Publication) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.DOI = strings.TrimSpace(p.DOI)
}

func (p *Publication) BeforeSave(tx *gorm.DB) error {
	p.Normalize()
	return nil
}
