package models

import (
	"strings"
	"time"
)

// SectionKind discriminates how a section's contents are navigated.
type SectionKind string

const (
	// SectionKindFlat renders all active contents as a single ordered list.
	SectionKindFlat SectionKind = "flat"
	// SectionKindStudyMaterial routes visitors through the class/category pickers.
	SectionKindStudyMaterial SectionKind = "study_material"
)

// DeriveSectionKind classifies a section from its title. The legacy portal
// branched on a "study material" substring match at render time; the kind is
// now derived once on write and stored.
func DeriveSectionKind(title string) SectionKind {
	if strings.Contains(strings.ToLower(title), "study material") {
		return SectionKindStudyMaterial
	}
	return SectionKindFlat
}

// Section is a top-level content category shown on the home dashboard.
type Section struct {
	ID           string      `db:"id" json:"id"`
	Title        string      `db:"title" json:"title"`
	Description  string      `db:"description" json:"description"`
	Icon         string      `db:"icon" json:"icon"`
	Kind         SectionKind `db:"kind" json:"kind"`
	DisplayOrder int         `db:"display_order" json:"display_order"`
	IsActive     bool        `db:"is_active" json:"is_active"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}
