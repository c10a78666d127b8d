package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/catalog"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/database"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/user"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("product not found in cart")
)

// AddRequest is the body of POST /cart/add.
type AddRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

func (r AddRequest) Validate() error {
	return user.AsValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Product, validation.Required, is.UUID),
		validation.Field(&r.Quantity, validation.By(positiveQuantity)),
	))
}

func positiveQuantity(value any) error {
	if q, _ := value.(int); q <= 0 {
		return errors.New("Quantity must be greater than zero.")
	}
	return nil
}

// RemoveRequest is the body of POST /cart/remove.
type RemoveRequest struct {
	ProductID string `json:"product_id"`
}

func (r RemoveRequest) Validate() error {
	return user.AsValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required, is.UUID),
	))
}

// AddedItem is the cart line after an add.
type AddedItem struct {
	Detail     string        `json:"detail"`
	CartItemID uuid.UUID     `json:"cart_item_id"`
	Product    uuid.UUID     `json:"product"`
	Quantity   int           `json:"quantity"`
	UnitPrice  catalog.Money `json:"unit_price"`
	Subtotal   catalog.Money `json:"subtotal"`
}

type ProductCategory struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type ItemProduct struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	UnitPrice   catalog.Money    `json:"unit_price"`
	Stock       int              `json:"stock"`
	Preview     *string          `json:"preview"`
	Category    *ProductCategory `json:"category"`
}

type Item struct {
	ID        uuid.UUID     `json:"id"`
	Product   ItemProduct   `json:"product"`
	UnitPrice catalog.Money `json:"unit_price"`
	Quantity  int           `json:"quantity"`
	Subtotal  catalog.Money `json:"subtotal"`
}

// Contents is a user's cart with its total.
type Contents struct {
	Items []Item        `json:"items"`
	Total catalog.Money `json:"total"`
}

// Service manages per-user carts.
type Service struct {
	db bun.IDB
}

func NewService(db bun.IDB) *Service {
	return &Service{db: db}
}

// Add puts quantity units of a product into the user's cart. An existing
// line is incremented and its unit price refreshed.
func (s *Service) Add(ctx context.Context, userID uuid.UUID, req AddRequest) (*AddedItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	productID := uuid.MustParse(req.Product)

	var (
		result *AddedItem
		err    error
	)
	// a concurrent first add for the same line loses on the unique index; retry as an update
	for attempt := 0; attempt < 2; attempt++ {
		result, err = s.add(ctx, userID, productID, req.Quantity)
		if err == nil || !database.IsUniqueViolation(err) {
			break
		}
	}
	return result, err
}

func (s *Service) add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*AddedItem, error) {
	var result *AddedItem
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		product := new(database.Product)
		err := database.ForUpdate(tx, tx.NewSelect().
			Model(product).
			Where("id = ?", productID).
			Where("is_active = ?", true)).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return user.FieldError("product", "Product does not exist.")
			}
			return fmt.Errorf("failed to get product: %w", err)
		}
		if quantity > product.Stock {
			return user.FieldError("quantity", "Requested quantity exceeds available stock.")
		}

		c, err := getOrCreateCart(ctx, tx, userID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		item := new(database.CartItem)
		err = database.ForUpdate(tx, tx.NewSelect().
			Model(item).
			Where("cart_id = ?", c.ID).
			Where("product_id = ?", productID)).
			Scan(ctx)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			item = &database.CartItem{
				ID:        uuid.New(),
				CartID:    c.ID,
				ProductID: productID,
				UnitPrice: product.UnitPrice,
				Quantity:  quantity,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if _, err := tx.NewInsert().Model(item).Exec(ctx); err != nil {
				return err
			}
		case err != nil:
			return fmt.Errorf("failed to get cart item: %w", err)
		default:
			item.Quantity += quantity
			item.UnitPrice = product.UnitPrice
			item.UpdatedAt = now
			_, err := tx.NewUpdate().
				Model(item).
				Column("quantity", "unit_price", "updated_at").
				WherePK().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to update cart item: %w", err)
			}
		}

		unit := catalog.Money(item.UnitPrice)
		result = &AddedItem{
			Detail:     "Product added to cart successfully",
			CartItemID: item.ID,
			Product:    productID,
			Quantity:   item.Quantity,
			UnitPrice:  unit,
			Subtotal:   unit.Times(item.Quantity),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func getOrCreateCart(ctx context.Context, tx bun.Tx, userID uuid.UUID) (*database.Cart, error) {
	now := time.Now().UTC()
	_, err := tx.NewInsert().
		Model(&database.Cart{ID: uuid.New(), UserID: userID, CreatedAt: now, UpdatedAt: now}).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	c := new(database.Cart)
	if err := tx.NewSelect().Model(c).Where("user_id = ?", userID).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return c, nil
}

func (s *Service) findCart(ctx context.Context, userID uuid.UUID) (*database.Cart, error) {
	c := new(database.Cart)
	err := s.db.NewSelect().Model(c).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return c, nil
}

// Remove deletes the line for productID from the user's cart.
func (s *Service) Remove(ctx context.Context, userID uuid.UUID, req RemoveRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	c, err := s.findCart(ctx, userID)
	if err != nil {
		return err
	}

	res, err := s.db.NewDelete().
		Model((*database.CartItem)(nil)).
		Where("cart_id = ?", c.ID).
		Where("product_id = ?", uuid.MustParse(req.ProductID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// List returns the user's cart lines with products. A user without a cart has an empty one.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (*Contents, error) {
	out := &Contents{Items: []Item{}}

	c, err := s.findCart(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []*database.CartItem
	err = s.db.NewSelect().
		Model(&rows).
		Relation("Product").
		Relation("Product.Category").
		Where("ci.cart_id = ?", c.ID).
		Order("ci.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	for _, row := range rows {
		item := mapItem(row)
		out.Items = append(out.Items, item)
		out.Total += item.Subtotal
	}
	return out, nil
}

func mapItem(row *database.CartItem) Item {
	unit := catalog.Money(row.UnitPrice)
	item := Item{
		ID:        row.ID,
		UnitPrice: unit,
		Quantity:  row.Quantity,
		Subtotal:  unit.Times(row.Quantity),
	}
	if p := row.Product; p != nil {
		item.Product = ItemProduct{
			ID:          p.ID,
			Name:        p.Name,
			Slug:        p.Slug,
			Description: p.Description,
			UnitPrice:   catalog.Money(p.UnitPrice),
			Stock:       p.Stock,
		}
		if p.Preview != "" {
			preview := p.Preview
			item.Product.Preview = &preview
		}
		if p.Category != nil {
			item.Product.Category = &ProductCategory{ID: p.Category.ID, Name: p.Category.Name, Slug: p.Category.Slug}
		}
	}
	return item
}
