package models

import (
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project represents a lab project. AttachedResearchIDs are advisory
// references; nothing in the datastore keeps them in sync with Research rows.
type Project struct {
	Model
	Title               string                          `json:"title" gorm:"type:text;not null" validate:"required"`
	Description         string                          `json:"description" gorm:"type:text;not null" validate:"required"`
	Status              string                          `json:"status" gorm:"type:text;not null" validate:"required"`
	ImageURL            string                          `json:"imageUrl" gorm:"column:image_url;type:text;not null;default:''"`
	Link                string                          `json:"link" gorm:"type:text;not null;default:''"`
	Tags                string                          `json:"tags" gorm:"type:text;not null;default:''"`
	TeamMembers         datatypes.JSONSlice[TeamMember] `json:"teamMembers" gorm:"column:team_members;not null" validate:"dive"`
	ProjectObjectives   datatypes.JSONSlice[string]     `json:"projectObjectives" gorm:"column:project_objectives;not null"`
	AttachedResearchIDs datatypes.JSONSlice[RefID]      `json:"attachedResearchIds" gorm:"column:attached_research_ids;not null"`
}

func (p *Project) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Status = strings.TrimSpace(p.Status)
	if p.TeamMembers == nil {
		p.TeamMembers = datatypes.JSONSlice[TeamMember]{}
	}
	if p.ProjectObjectives == nil {
		p.ProjectObjectives = datatypes.JSONSlice[string]{}
	}
	if p.AttachedResearchIDs == nil {
		p.AttachedResearchIDs = datatypes.JSONSlice[RefID]{}
	}
}

// ResolveResearch splits the attached ids into the research rows that exist
// and the ids that no longer resolve.
func (p *Project) ResolveResearch(research []Research) (attached []Research, dangling []uint) {
	byID := make(map[uint]Research, len(research))
	for _, r := range research {
		byID[r.ID] = r
	}
	for _, ref := range p.AttachedResearchIDs {
		if r, ok := byID[uint(ref)]; ok {
			attached = append(attached, r)
		} else {
			dangling = append(dangling, uint(ref))
		}
	}
	return attached, dangling
}

func (p *Project) BeforeSave(tx *gorm.DB) error {
	p.Normalize()
	return nil
}

func (p *Project) AfterFind(tx *gorm.DB) error {
	p.Normalize()
	return nil
}
