package domain

import "time"

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SellerProfile is the public storefront of a seller.
type SellerProfile struct {
	SellerID  string    `json:"sellerId"`
	ShopName  string    `json:"shopName"`
	Bio       string    `json:"bio,omitempty"`
	Location  string    `json:"location,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}
