package catalog

import (
	"github.com/google/uuid"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/database"
)

// Subcategory is the nested view inside a category.
type Subcategory struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Image       *string   `json:"image"`
}

// Category is the list and detail view of a category.
type Category struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Description   string        `json:"description"`
	Image         *string       `json:"image"`
	Subcategories []Subcategory `json:"subcategories"`
}

// CategoryRef is the category embedded in product views.
type CategoryRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Image *string   `json:"image"`
}

type Image struct {
	Image *string `json:"image"`
}

type Product struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	UnitPrice   Money        `json:"unit_price"`
	Stock       int          `json:"stock"`
	IsFeatured  bool         `json:"is_featured"`
	Rating      float64      `json:"rating"`
	Category    *CategoryRef `json:"category"`
	Images      []Image      `json:"images"`
}

// ProductPage is one page of the product listing.
type ProductPage struct {
	Count    int       `json:"count"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Results  []Product `json:"results"`
}

// ProductFilter narrows the product listing.
type ProductFilter struct {
	CategorySlug string
	Search       string
	Page         int
	PageSize     int
}

// Promotion selects one of the promotional product lists.
type Promotion string

const (
	FlashSale       Promotion = "is_flash_sale"
	ProductOfTheDay Promotion = "is_product_of_the_day"
	BestSeller      Promotion = "is_best_seller"
	AttractiveOffer Promotion = "is_attractive_offer"
)

func (p Promotion) valid() bool {
	switch p {
	case FlashSale, ProductOfTheDay, BestSeller, AttractiveOffer:
		return true
	}
	return false
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func mapCategory(c *database.Category) Category {
	out := Category{
		ID:            c.ID,
		Name:          c.Name,
		Slug:          c.Slug,
		Description:   c.Description,
		Image:         optional(c.Image),
		Subcategories: make([]Subcategory, 0, len(c.Subcategories)),
	}
	for _, sc := range c.Subcategories {
		out.Subcategories = append(out.Subcategories, Subcategory{
			ID:          sc.ID,
			Name:        sc.Name,
			Slug:        sc.Slug,
			Description: sc.Description,
			Image:       optional(sc.Image),
		})
	}
	return out
}

// MapProduct converts a stored product with its relations into the API view.
func MapProduct(p *database.Product) Product {
	out := Product{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		UnitPrice:   Money(p.UnitPrice),
		Stock:       p.Stock,
		IsFeatured:  p.IsFeatured,
		Rating:      p.Rating,
		Images:      make([]Image, 0, len(p.Images)),
	}
	if p.Category != nil {
		out.Category = &CategoryRef{
			ID:    p.Category.ID,
			Name:  p.Category.Name,
			Slug:  p.Category.Slug,
			Image: optional(p.Category.Image),
		}
	}
	for _, img := range p.Images {
		out.Images = append(out.Images, Image{Image: optional(img.URL)})
	}
	return out
}
