package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the account row. PasswordHash is empty for google-linked accounts.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid"`
	Email        string     `bun:"email,notnull,unique"`
	FullName     string     `bun:"full_name,notnull"`
	Contact      string     `bun:"contact,notnull"`
	Avatar       string     `bun:"avatar,notnull"`
	PasswordHash string     `bun:"password_hash,notnull"`
	IsActive     bool       `bun:"is_active,notnull"`
	IsVerified   bool       `bun:"is_verified,notnull"`
	IsGoogleUser bool       `bun:"is_google_user,notnull"`
	IsStaff      bool       `bun:"is_staff,notnull"`
	LastLoginAt  *time.Time `bun:"last_login_at"`
	CreatedAt    time.Time  `bun:"created_at,notnull"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull"`
}

// OutstandingToken records every refresh token minted while rotation is on.
type OutstandingToken struct {
	bun.BaseModel `bun:"table:outstanding_tokens,alias:ot"`

	JTI       string    `bun:"jti,pk"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:uuid"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

// BlacklistedToken marks a refresh token jti as spent.
type BlacklistedToken struct {
	bun.BaseModel `bun:"table:blacklisted_tokens,alias:bt"`

	JTI           string    `bun:"jti,pk"`
	UserID        uuid.UUID `bun:"user_id,notnull,type:uuid"`
	ExpiresAt     time.Time `bun:"expires_at,notnull"`
	BlacklistedAt time.Time `bun:"blacklisted_at,notnull"`
}

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:category"`

	ID            uuid.UUID      `bun:"id,pk,type:uuid"`
	Name          string         `bun:"name,notnull,unique"`
	Slug          string         `bun:"slug,notnull,unique"`
	Description   string         `bun:"description,notnull"`
	Image         string         `bun:"image,notnull"`
	IsActive      bool           `bun:"is_active,notnull"`
	CreatedAt     time.Time      `bun:"created_at,notnull"`
	UpdatedAt     time.Time      `bun:"updated_at,notnull"`
	Subcategories []*SubCategory `bun:"rel:has-many,join:id=category_id"`
}

type SubCategory struct {
	bun.BaseModel `bun:"table:subcategories,alias:sc"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	CategoryID  uuid.UUID `bun:"category_id,notnull,type:uuid,unique:subcategory_name,unique:subcategory_slug"`
	Name        string    `bun:"name,notnull,unique:subcategory_name"`
	Slug        string    `bun:"slug,notnull,unique:subcategory_slug"`
	Description string    `bun:"description,notnull"`
	Image       string    `bun:"image,notnull"`
	IsActive    bool      `bun:"is_active,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

// Product prices are stored in minor units (paisa).
type Product struct {
	bun.BaseModel `bun:"table:products,alias:product"`

	ID                uuid.UUID       `bun:"id,pk,type:uuid"`
	CategoryID        uuid.UUID       `bun:"category_id,notnull,type:uuid"`
	Category          *Category       `bun:"rel:belongs-to,join:category_id=id"`
	Name              string          `bun:"name,notnull"`
	Slug              string          `bun:"slug,notnull,unique"`
	Description       string          `bun:"description,notnull"`
	Preview           string          `bun:"preview,notnull"`
	UnitPrice         int64           `bun:"unit_price,notnull"`
	Stock             int             `bun:"stock,notnull"`
	Rating            float64         `bun:"rating,notnull"`
	IsFeatured        bool            `bun:"is_featured,notnull"`
	IsFlashSale       bool            `bun:"is_flash_sale,notnull"`
	IsProductOfTheDay bool            `bun:"is_product_of_the_day,notnull"`
	IsBestSeller      bool            `bun:"is_best_seller,notnull"`
	IsAttractiveOffer bool            `bun:"is_attractive_offer,notnull"`
	IsActive          bool            `bun:"is_active,notnull"`
	CreatedAt         time.Time       `bun:"created_at,notnull"`
	UpdatedAt         time.Time       `bun:"updated_at,notnull"`
	Images            []*ProductImage `bun:"rel:has-many,join:id=product_id"`
}

type ProductImage struct {
	bun.BaseModel `bun:"table:product_images,alias:pi"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	ProductID uuid.UUID `bun:"product_id,notnull,type:uuid"`
	URL       string    `bun:"url,notnull"`
	AltText   string    `bun:"alt_text,notnull"`
}

type Cart struct {
	bun.BaseModel `bun:"table:carts,alias:cart"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	UserID    uuid.UUID `bun:"user_id,notnull,unique,type:uuid"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

type CartItem struct {
	bun.BaseModel `bun:"table:cart_items,alias:ci"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	CartID    uuid.UUID `bun:"cart_id,notnull,type:uuid,unique:cart_product"`
	ProductID uuid.UUID `bun:"product_id,notnull,type:uuid,unique:cart_product"`
	Product   *Product  `bun:"rel:belongs-to,join:product_id=id"`
	UnitPrice int64     `bun:"unit_price,notnull"`
	Quantity  int       `bun:"quantity,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

type Region struct {
	bun.BaseModel `bun:"table:regions,alias:region"`

	ID   string `bun:"id,pk"`
	Name string `bun:"name,notnull,unique"`
}

type City struct {
	bun.BaseModel `bun:"table:cities,alias:city"`

	ID       string `bun:"id,pk"`
	Name     string `bun:"name,notnull,unique:city_region"`
	RegionID string `bun:"region_id,notnull,unique:city_region"`
}

type Area struct {
	bun.BaseModel `bun:"table:areas,alias:area"`

	ID     string `bun:"id,pk"`
	Name   string `bun:"name,notnull,unique:area_city"`
	CityID string `bun:"city_id,notnull,unique:area_city"`
}

// Models lists every table model in creation order.
func Models() []any {
	return []any{
		(*User)(nil),
		(*OutstandingToken)(nil),
		(*BlacklistedToken)(nil),
		(*Category)(nil),
		(*SubCategory)(nil),
		(*Product)(nil),
		(*ProductImage)(nil),
		(*Cart)(nil),
		(*CartItem)(nil),
		(*Region)(nil),
		(*City)(nil),
		(*Area)(nil),
	}
}
