package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ContentType selects which ContentData field carries the payload.
type ContentType string

const (
	ContentTypeText ContentType = "text"
	ContentTypeLink ContentType = "link"
)

// Classification dimensions are closed enumerations. Values outside these sets
// never surface in navigation, whatever the stored rows contain.
var (
	Categories = []string{"IIT", "NEET", "CBSE", "NTSE", "Foundation", "Class 8 to 12"}
	Classes    = []string{"8", "9", "10", "11", "12"}
	Subjects   = []string{"Math", "Physics", "Chemistry", "Biology", "English", "Hindi", "Social Studies"}
)

// CategoryClassRange is the one category whose items are additionally keyed by class.
const CategoryClassRange = "Class 8 to 12"

// IsKnownCategory reports membership in the category enumeration.
func IsKnownCategory(v string) bool { return contains(Categories, v) }

// IsKnownClass reports membership in the class enumeration.
func IsKnownClass(v string) bool { return contains(Classes, v) }

// IsKnownSubject reports membership in the subject enumeration.
func IsKnownSubject(v string) bool { return contains(Subjects, v) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// ContentData is the jsonb payload attached to a content item. Classification
// fields are present only on study-material items; text/url mirror the
// content type.
type ContentData struct {
	Category string `json:"category,omitempty"`
	Class    string `json:"class,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Text     string `json:"text,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Value implements driver.Valuer for jsonb columns.
func (d ContentData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for jsonb columns. Malformed payloads scan to the
// zero value rather than failing the row.
func (d *ContentData) Scan(src interface{}) error {
	if src == nil {
		*d = ContentData{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported content_data type %T", src)
	}
	if len(raw) == 0 {
		*d = ContentData{}
		return nil
	}
	if err := json.Unmarshal(raw, d); err != nil {
		*d = ContentData{}
	}
	return nil
}

// ContentItem is a single piece of curated content belonging to a section.
type ContentItem struct {
	ID           string      `db:"id" json:"id"`
	SectionID    string      `db:"section_id" json:"section_id"`
	Title        string      `db:"title" json:"title"`
	Description  string      `db:"description" json:"description"`
	ContentType  ContentType `db:"content_type" json:"content_type"`
	ContentData  ContentData `db:"content_data" json:"content_data"`
	DisplayOrder int         `db:"display_order" json:"display_order"`
	IsActive     bool        `db:"is_active" json:"is_active"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}
