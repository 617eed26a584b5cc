package constant

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Action identifies a mutation kind for authorization decisions.
type Action int

const (
	ActionCreateShop Action = iota + 1
	ActionUpdateShop
	ActionDeleteShop
	ActionCreateProduct
	ActionUpdateProduct
	ActionDeleteProduct
	ActionFollowShop
	ActionUnfollowShop
)

const (
	// DefaultPhoto is stored when no image was uploaded for a shop or product.
	DefaultPhoto = "nopic.png"

	DefaultCategory   = "other"
	DefaultGender     = "unisex"
	DefaultHandedness = "RH/LH"

	// VATRate multiplies the stored price into the tax-inclusive price.
	// The tax-inclusive value is derived on read and never persisted.
	VATRate = 1.07
)
