// AngelaMos | 2026
// entity.go

package catalog

import (
	"database/sql"
	"strings"
)

const (
	MinLevel = 1
	MaxLevel = 5
)

type Product struct {
	ID         string
	OriginName string
	Story      Story
	// Taste is nil when no metadata row exists for the product.
	Taste *TasteMetadata
}

type TasteMetadata struct {
	Acidity      int
	Body         int
	TastingNotes []string
}

// Story is the origin narrative shown on a product's story page.
type Story struct {
	Region    string
	Farmer    string
	Process   string
	Harvest   string
	Altitude  string
	ImageURL  string
	Narrative string
}

func (s Story) IsEmpty() bool {
	return s.Narrative == "" && s.Region == ""
}

// productRow is the flattened LEFT JOIN of products and their taste
// metadata.
type productRow struct {
	ID           string         `db:"id"`
	OriginName   string         `db:"origin_name"`
	Region       string         `db:"region"`
	Farmer       string         `db:"farmer"`
	Process      string         `db:"process"`
	Harvest      string         `db:"harvest"`
	Altitude     string         `db:"altitude"`
	ImageURL     string         `db:"image_url"`
	Narrative    string         `db:"story"`
	Acidity      sql.NullInt32  `db:"acidity"`
	Body         sql.NullInt32  `db:"body"`
	TastingNotes sql.NullString `db:"tasting_notes"`
}

func (r productRow) toProduct() Product {
	p := Product{
		ID:         r.ID,
		OriginName: r.OriginName,
		Story: Story{
			Region:    r.Region,
			Farmer:    r.Farmer,
			Process:   r.Process,
			Harvest:   r.Harvest,
			Altitude:  r.Altitude,
			ImageURL:  r.ImageURL,
			Narrative: r.Narrative,
		},
	}

	if r.Acidity.Valid && r.Body.Valid {
		p.Taste = &TasteMetadata{
			Acidity:      int(r.Acidity.Int32),
			Body:         int(r.Body.Int32),
			TastingNotes: ParseTastingNotes(r.TastingNotes.String),
		}
	}

	return p
}

// ParseTastingNotes splits the stored comma separated notes, keeping order
// and dropping blanks.
func ParseTastingNotes(raw string) []string {
	parts := strings.Split(raw, ",")
	notes := make([]string, 0, len(parts))
	for _, part := range parts {
		if note := strings.TrimSpace(part); note != "" {
			notes = append(notes, note)
		}
	}
	return notes
}

// LevelPercent renders a 1..5 taste level as the width of a story page bar.
func LevelPercent(level int) int {
	if level <= 0 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return level * 100 / MaxLevel
}
