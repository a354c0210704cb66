// AngelaMos | 2026
// dto.go

package taste

import (
	"strings"
	"time"
)

// ProfileRequest is the quiz payload, used both for calibration and for
// merging a guest's answers after login.
type ProfileRequest struct {
	Acidity int    `json:"acidity" validate:"required,min=1,max=5"`
	Body    int    `json:"body"    validate:"required,min=1,max=5"`
	Roast   string `json:"roast"   validate:"required,oneof=Light Medium Dark"`
	Notes   string `json:"notes"   validate:"max=1000"`
}

// Normalize canonicalizes the roast so validation is case-insensitive.
func (r *ProfileRequest) Normalize() {
	if roast, err := ParseRoast(r.Roast); err == nil {
		r.Roast = string(roast)
	}
	r.Notes = strings.TrimSpace(r.Notes)
}

func (r ProfileRequest) ToProfile(userID string) Profile {
	roast, _ := ParseRoast(r.Roast)
	return Profile{
		UserID:  userID,
		Acidity: r.Acidity,
		Body:    r.Body,
		Roast:   roast,
		Notes:   r.Notes,
	}
}

type ProfileResponse struct {
	Acidity   int       `json:"acidity"`
	Body      int       `json:"body"`
	Roast     string    `json:"roast"`
	Notes     string    `json:"notes"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MergeResponse struct {
	Profile ProfileResponse `json:"profile"`
	Created bool            `json:"created"`
}

func ToProfileResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		Acidity:   p.Acidity,
		Body:      p.Body,
		Roast:     string(p.Roast),
		Notes:     p.Notes,
		UpdatedAt: p.UpdatedAt,
	}
}
