// AngelaMos | 2026
// entity.go

package user

import (
	"strings"
	"time"
)

// Customer is the storefront's record of an account that lives in the
// external identity store. ID is the identity subject.
type Customer struct {
	ID              string    `db:"id"`
	Email           string    `db:"email"`
	Name            string    `db:"name"`
	ShippingAddress string    `db:"shipping_address"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (c *Customer) HasShippingAddress() bool {
	return strings.TrimSpace(c.ShippingAddress) != ""
}

// DisplayName falls back to the mailbox part of the email the way the
// dashboard greets customers who never set a name.
func (c *Customer) DisplayName() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(c.Email, "@")
	return local
}
