package location

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/uptrace/bun"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/database"
)

const maxSequence = 9999

const (
	regionPrefix = "R"
	cityPrefix   = "C"
	areaPrefix   = "A"
)

var (
	ErrIDSpaceExhausted = errors.New("location id space exhausted")
	ErrNotFound         = errors.New("location not found")
	ErrExists           = errors.New("location already exists")
)

// Place is the public view of a region, city or area.
type Place struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Repository struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) *Repository {
	return &Repository{db: db}
}

func validName(name string) error {
	return validation.Validate(name, validation.Required, validation.Length(1, 100))
}

// formatID renders the n-th id for prefix, e.g. R0001.
func formatID(prefix string, n int) (string, error) {
	if n < 1 || n > maxSequence {
		return "", ErrIDSpaceExhausted
	}
	return fmt.Sprintf("%s%04d", prefix, n), nil
}

// nextID returns the id following the highest one in model's table. It must run
// inside tx so the locked row serializes concurrent creators.
func nextID(ctx context.Context, tx bun.Tx, model any, prefix string) (string, error) {
	var last string
	q := tx.NewSelect().Model(model).Column("id").Order("id DESC").Limit(1)
	err := database.ForUpdate(tx, q).Scan(ctx, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return formatID(prefix, 1)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read last id: %w", err)
	}

	n, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
	if err != nil {
		return "", fmt.Errorf("malformed location id %q: %w", last, err)
	}
	return formatID(prefix, n+1)
}

func (r *Repository) create(ctx context.Context, row any, prefix string, assign func(id string), parent func(ctx context.Context, tx bun.Tx) error) (string, error) {
	var id string
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if parent != nil {
			if err := parent(ctx, tx); err != nil {
				return err
			}
		}

		next, err := nextID(ctx, tx, row, prefix)
		if err != nil {
			return err
		}
		assign(next)

		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			if database.IsUniqueViolation(err) {
				return ErrExists
			}
			return fmt.Errorf("failed to insert location: %w", err)
		}
		id = next
		return nil
	})
	return id, err
}

func parentExists(model any, id string) func(ctx context.Context, tx bun.Tx) error {
	return func(ctx context.Context, tx bun.Tx) error {
		ok, err := tx.NewSelect().Model(model).Where("id = ?", id).Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check parent: %w", err)
		}
		if !ok {
			return ErrNotFound
		}
		return nil
	}
}

func (r *Repository) CreateRegion(ctx context.Context, name string) (*Place, error) {
	name = strings.TrimSpace(name)
	if err := validName(name); err != nil {
		return nil, err
	}

	row := &database.Region{Name: name}
	id, err := r.create(ctx, row, regionPrefix, func(id string) { row.ID = id }, nil)
	if err != nil {
		return nil, err
	}
	return &Place{ID: id, Name: name}, nil
}

func (r *Repository) CreateCity(ctx context.Context, regionID, name string) (*Place, error) {
	name = strings.TrimSpace(name)
	if err := validName(name); err != nil {
		return nil, err
	}

	row := &database.City{Name: name, RegionID: regionID}
	id, err := r.create(ctx, row, cityPrefix, func(id string) { row.ID = id },
		parentExists((*database.Region)(nil), regionID))
	if err != nil {
		return nil, err
	}
	return &Place{ID: id, Name: name}, nil
}

func (r *Repository) CreateArea(ctx context.Context, cityID, name string) (*Place, error) {
	name = strings.TrimSpace(name)
	if err := validName(name); err != nil {
		return nil, err
	}

	row := &database.Area{Name: name, CityID: cityID}
	id, err := r.create(ctx, row, areaPrefix, func(id string) { row.ID = id },
		parentExists((*database.City)(nil), cityID))
	if err != nil {
		return nil, err
	}
	return &Place{ID: id, Name: name}, nil
}

func (r *Repository) list(ctx context.Context, model any, where string, arg string) ([]Place, error) {
	out := []Place{}
	q := r.db.NewSelect().Model(model).Column("id", "name").Order("id ASC")
	if where != "" {
		q = q.Where(where, arg)
	}
	if err := q.Scan(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return out, nil
}

func (r *Repository) ListRegions(ctx context.Context) ([]Place, error) {
	return r.list(ctx, (*database.Region)(nil), "", "")
}

// ListCities returns the cities of regionID. An unknown region has none.
func (r *Repository) ListCities(ctx context.Context, regionID string) ([]Place, error) {
	return r.list(ctx, (*database.City)(nil), "region_id = ?", regionID)
}

func (r *Repository) ListAreas(ctx context.Context, cityID string) ([]Place, error) {
	return r.list(ctx, (*database.Area)(nil), "city_id = ?", cityID)
}
