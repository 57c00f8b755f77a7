package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Author is a research author in display order.
type Author struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image,omitempty"`
}

// ContentSection is one named part of a research write-up. Content is HTML.
type ContentSection struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

// RelatedPublication is a loose reference kept as JSON, not a foreign key.
type RelatedPublication struct {
	ID      *RefID `json:"id,omitempty"`
	Title   string `json:"title"`
	Authors string `json:"authors,omitempty"`
	Link    string `json:"link,omitempty"`
	DOI     string `json:"doi,omitempty"`
}

// TeamMember is a person working on a project.
type TeamMember struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role"`
}

// RefID references another entity by id. It accepts 7 or "7" and always
// renders as a number.
type RefID uint

func (id *RefID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}

	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil || value == 0 {
		return fmt.Errorf("reference %s is not a positive integer id", data)
	}
	*id = RefID(value)
	return nil
}

// RefIDs converts plain ids into references.
func RefIDs(ids ...uint) []RefID {
	refs := make([]RefID, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, RefID(id))
	}
	return refs
}
