// AngelaMos | 2026
// entity.go

package taste

import (
	"fmt"
	"strings"
	"time"

	"github.com/beanvoyage/storefront/internal/core"
)

type Roast string

const (
	RoastLight  Roast = "Light"
	RoastMedium Roast = "Medium"
	RoastDark   Roast = "Dark"
)

var roasts = []Roast{RoastLight, RoastMedium, RoastDark}

// ParseRoast accepts any casing and surrounding whitespace and returns the
// canonical form.
func ParseRoast(s string) (Roast, error) {
	s = strings.TrimSpace(s)
	for _, r := range roasts {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("roast %q: %w", s, core.ErrInvalidInput)
}

// Profile is a customer's stated preference. Acidity and Body are on the
// same 1..5 scale as product taste metadata.
type Profile struct {
	UserID    string    `db:"user_id"`
	Acidity   int       `db:"acidity"`
	Body      int       `db:"body"`
	Roast     Roast     `db:"roast"`
	Notes     string    `db:"notes"`
	UpdatedAt time.Time `db:"updated_at"`
}
