package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/database"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	ErrNotFound         = errors.New("not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrInvalidPromotion = errors.New("invalid promotion")
	ErrPageOutOfRange   = errors.New("page out of range")
)

// Repository reads and writes the catalog.
type Repository struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) *Repository {
	return &Repository{db: db}
}

func activeSubcategories(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where("sc.is_active = ?", true).Order("sc.name ASC")
}

func productImages(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("pi.url ASC")
}

// ListCategories returns active categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	var rows []*database.Category
	err := r.db.NewSelect().
		Model(&rows).
		Relation("Subcategories", activeSubcategories).
		Where("category.is_active = ?", true).
		Order("category.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	out := make([]Category, 0, len(rows))
	for _, c := range rows {
		out = append(out, mapCategory(c))
	}
	return out, nil
}

// GetCategory returns an active category by slug.
func (r *Repository) GetCategory(ctx context.Context, slug string) (*Category, error) {
	row := new(database.Category)
	err := r.db.NewSelect().
		Model(row).
		Relation("Subcategories", activeSubcategories).
		Where("category.slug = ?", slug).
		Where("category.is_active = ?", true).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	c := mapCategory(row)
	return &c, nil
}

func (r *Repository) productQuery(rows *[]*database.Product) *bun.SelectQuery {
	return r.db.NewSelect().
		Model(rows).
		Relation("Category").
		Relation("Images", productImages).
		Where("product.is_active = ?", true)
}

// normalizePage clamps page to >= 1 and pageSize to 1..MaxPageSize.
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// ListProducts filters active products by category slug and a search term
// over name and description.
func (r *Repository) ListProducts(ctx context.Context, f ProductFilter) (*ProductPage, error) {
	page, pageSize := normalizePage(f.Page, f.PageSize)
	// offsets stay within 32 bits on every backend
	if page-1 > math.MaxInt32/pageSize {
		return nil, ErrPageOutOfRange
	}

	var rows []*database.Product
	q := r.productQuery(&rows)

	if f.CategorySlug != "" {
		q = q.Where("category.slug = ?", f.CategorySlug)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("LOWER(product.name) LIKE ?", pattern).
				WhereOr("LOWER(product.description) LIKE ?", pattern)
		})
	}

	count, err := q.
		Order("product.name ASC", "product.id ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		ScanAndCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	results := make([]Product, 0, len(rows))
	for _, p := range rows {
		results = append(results, MapProduct(p))
	}

	return &ProductPage{
		Count:    count,
		Page:     page,
		PageSize: pageSize,
		Results:  results,
	}, nil
}

// GetProduct returns an active product by slug.
func (r *Repository) GetProduct(ctx context.Context, slug string) (*Product, error) {
	var rows []*database.Product
	err := r.productQuery(&rows).
		Where("product.slug = ?", slug).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	p := MapProduct(rows[0])
	return &p, nil
}

// ListPromoted returns the active products carrying a promotional flag.
func (r *Repository) ListPromoted(ctx context.Context, promo Promotion) ([]Product, error) {
	if !promo.valid() {
		return nil, ErrInvalidPromotion
	}

	var rows []*database.Product
	err := r.productQuery(&rows).
		Where("product.? = ?", bun.Ident(string(promo)), true).
		Order("product.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list promoted products: %w", err)
	}

	out := make([]Product, 0, len(rows))
	for _, p := range rows {
		out = append(out, MapProduct(p))
	}
	return out, nil
}

// NewCategory is operator input for a category.
type NewCategory struct {
	Name        string
	Description string
	Image       string
}

func (c NewCategory) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 50)),
	)
}

// CreateCategory title-cases the name and assigns a unique slug.
func (r *Repository) CreateCategory(ctx context.Context, in NewCategory) (*Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	name := TitleName(in.Name)
	exists, err := r.db.NewSelect().Model((*database.Category)(nil)).Where("name = ?", name).Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if exists {
		return nil, ErrCategoryExists
	}

	slug, err := uniqueSlug(ctx, name, 50, func(ctx context.Context, s string) (bool, error) {
		return r.db.NewSelect().Model((*database.Category)(nil)).Where("slug = ?", s).Exists(ctx)
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := &database.Category{
		ID:          uuid.New(),
		Name:        name,
		Slug:        slug,
		Description: in.Description,
		Image:       in.Image,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	c := mapCategory(row)
	return &c, nil
}

// CreateSubcategory adds a subcategory whose slug is unique within its category.
func (r *Repository) CreateSubcategory(ctx context.Context, categorySlug string, in NewCategory) (*Subcategory, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	parent := new(database.Category)
	if err := r.db.NewSelect().Model(parent).Where("slug = ?", categorySlug).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	name := TitleName(in.Name)
	slug, err := uniqueSlug(ctx, name, 50, func(ctx context.Context, s string) (bool, error) {
		return r.db.NewSelect().
			Model((*database.SubCategory)(nil)).
			Where("category_id = ?", parent.ID).
			Where("slug = ?", s).
			Exists(ctx)
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := &database.SubCategory{
		ID:          uuid.New(),
		CategoryID:  parent.ID,
		Name:        name,
		Slug:        slug,
		Description: in.Description,
		Image:       in.Image,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create subcategory: %w", err)
	}

	return &Subcategory{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		Image:       optional(row.Image),
	}, nil
}

// NewProduct is operator input for a product.
type NewProduct struct {
	CategorySlug string
	Name         string
	Description  string
	UnitPrice    Money
	Stock        int
	Images       []string
}

func (p NewProduct) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.CategorySlug, validation.Required),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.UnitPrice, validation.Min(Money(0))),
		validation.Field(&p.Stock, validation.Min(0)),
	)
}

// CreateProduct inserts an active product and its images in one transaction.
func (r *Repository) CreateProduct(ctx context.Context, in NewProduct) (*Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var created *database.Product
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		parent := new(database.Category)
		if err := tx.NewSelect().Model(parent).Where("slug = ?", in.CategorySlug).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get category: %w", err)
		}

		slug, err := uniqueSlug(ctx, in.Name, 255, func(ctx context.Context, s string) (bool, error) {
			return tx.NewSelect().Model((*database.Product)(nil)).Where("slug = ?", s).Exists(ctx)
		})
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		created = &database.Product{
			ID:          uuid.New(),
			CategoryID:  parent.ID,
			Category:    parent,
			Name:        strings.TrimSpace(in.Name),
			Slug:        slug,
			Description: in.Description,
			UnitPrice:   int64(in.UnitPrice),
			Stock:       in.Stock,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := tx.NewInsert().Model(created).Exec(ctx); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		for _, url := range in.Images {
			img := &database.ProductImage{
				ID:        uuid.New(),
				ProductID: created.ID,
				URL:       url,
				AltText:   created.Name + " image",
			}
			if _, err := tx.NewInsert().Model(img).Exec(ctx); err != nil {
				return fmt.Errorf("failed to add product image: %w", err)
			}
			created.Images = append(created.Images, img)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p := MapProduct(created)
	return &p, nil
}

// flagOdds are the chances of each promotional flag in SeedPromotionFlags.
var flagOdds = []struct {
	promo Promotion
	odds  float64
}{
	{FlashSale, 0.10},
	{ProductOfTheDay, 0.05},
	{BestSeller, 0.15},
	{AttractiveOffer, 0.20},
}

const featuredOdds = 0.30

// SeedPromotionFlags assigns random promotional flags to every product so
// that each one carries at least one. It returns the number of products updated.
func (r *Repository) SeedPromotionFlags(ctx context.Context, rng *rand.Rand) (int, error) {
	var updated int
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var ids []uuid.UUID
		if err := tx.NewSelect().Model((*database.Product)(nil)).Column("id").Scan(ctx, &ids); err != nil {
			return fmt.Errorf("failed to list products: %w", err)
		}

		for _, id := range ids {
			featured := rng.Float64() < featuredOdds
			flags := make(map[Promotion]bool, len(flagOdds))
			hasFlag := featured
			for _, f := range flagOdds {
				flags[f.promo] = rng.Float64() < f.odds
				hasFlag = hasFlag || flags[f.promo]
			}
			if !hasFlag {
				flags[flagOdds[rng.IntN(len(flagOdds))].promo] = true
			}

			_, err := tx.NewUpdate().
				Model((*database.Product)(nil)).
				Set("is_featured = ?", featured).
				Set("is_flash_sale = ?", flags[FlashSale]).
				Set("is_product_of_the_day = ?", flags[ProductOfTheDay]).
				Set("is_best_seller = ?", flags[BestSeller]).
				Set("is_attractive_offer = ?", flags[AttractiveOffer]).
				Set("updated_at = ?", time.Now().UTC()).
				Where("id = ?", id).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to update product flags: %w", err)
			}
			updated++
		}
		return nil
	})
	return updated, err
}
