package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/auth"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/catalog"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/database"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/database/dbtest"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/httputil"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/user"
)

func newProduct(t *testing.T, db *bun.DB, name string, price catalog.Money, stock int) *catalog.Product {
	t.Helper()
	ctx := context.Background()
	repo := catalog.NewRepository(db)

	category, err := repo.GetCategory(ctx, "skin-care")
	if err != nil {
		category, err = repo.CreateCategory(ctx, catalog.NewCategory{Name: "skin care"})
		require.NoError(t, err)
	}

	p, err := repo.CreateProduct(ctx, catalog.NewProduct{
		CategorySlug: category.Slug,
		Name:         name,
		UnitPrice:    price,
		Stock:        stock,
	})
	require.NoError(t, err)
	return p
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *user.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestAdd_CreatesLine(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db)
	p := newProduct(t, db, "Face Wash", 1250, 10)
	userID := uuid.New()

	added, err := svc.Add(context.Background(), userID, AddRequest{Product: p.ID.String(), Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, p.ID, added.Product)
	assert.Equal(t, 2, added.Quantity)
	assert.Equal(t, catalog.Money(1250), added.UnitPrice)
	assert.Equal(t, catalog.Money(2500), added.Subtotal)
}

func TestAdd_IncrementsAndRefreshesPrice(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db)
	ctx := context.Background()
	p := newProduct(t, db, "Face Wash", 1000, 10)
	userID := uuid.New()

	first, err := svc.Add(ctx, userID, AddRequest{Product: p.ID.String(), Quantity: 1})
	require.NoError(t, err)

	_, err = db.NewUpdate().Model((*database.Product)(nil)).Set("unit_price = ?", 900).Where("id = ?", p.ID).Exec(ctx)
	require.NoError(t, err)

	second, err := svc.Add(ctx, userID, AddRequest{Product: p.ID.String(), Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, first.CartItemID, second.CartItemID)
	assert.Equal(t, 4, second.Quantity)
	assert.Equal(t, catalog.Money(900), second.UnitPrice)
	assert.Equal(t, catalog.Money(3600), second.Subtotal)

	count, err := db.NewSelect().Model((*database.CartItem)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAdd_Validation(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db)
	ctx := context.Background()
	p := newProduct(t, db, "Face Wash", 1000, 3)
	userID := uuid.New()

	_, err := svc.Add(ctx, userID, AddRequest{Product: p.ID.String(), Quantity: 0})
	assert.Equal(t, []string{"Quantity must be greater than zero."}, fieldErrors(t, err)["quantity"])

	_, err = svc.Add(ctx, userID, AddRequest{Product: p.ID.String(), Quantity: 4})
	assert.Equal(t, []string{"Requested quantity exceeds available stock."}, fieldErrors(t, err)["quantity"])

	_, err = svc.Add(ctx, userID, AddRequest{Product: uuid.NewString(), Quantity: 1})
	assert.Equal(t, []string{"Product does not exist."}, fieldErrors(t, err)["product"])

	_, err = svc.Add(ctx, userID, AddRequest{Product: "not-a-uuid", Quantity: 1})
	assert.Contains(t, fieldErrors(t, err), "product")

	contents, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, contents.Items)
}

func TestRemove(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db)
	ctx := context.Background()
	p := newProduct(t, db, "Face Wash", 1000, 3)
	userID := uuid.New()

	err := svc.Remove(ctx, userID, RemoveRequest{ProductID: p.ID.String()})
	assert.ErrorIs(t, err, ErrCartNotFound)

	_, err = svc.Add(ctx, userID, AddRequest{Product: p.ID.String(), Quantity: 1})
	require.NoError(t, err)

	err = svc.Remove(ctx, userID, RemoveRequest{ProductID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrItemNotFound)

	require.NoError(t, svc.Remove(ctx, userID, RemoveRequest{ProductID: p.ID.String()}))

	err = svc.Remove(ctx, userID, RemoveRequest{ProductID: p.ID.String()})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestList_TotalsAndIsolation(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db)
	ctx := context.Background()
	wash := newProduct(t, db, "Face Wash", 1250, 10)
	serum := newProduct(t, db, "Night Serum", 4000, 10)
	alice, bob := uuid.New(), uuid.New()

	_, err := svc.Add(ctx, alice, AddRequest{Product: wash.ID.String(), Quantity: 2})
	require.NoError(t, err)
	_, err = svc.Add(ctx, alice, AddRequest{Product: serum.ID.String(), Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Add(ctx, bob, AddRequest{Product: serum.ID.String(), Quantity: 5})
	require.NoError(t, err)

	contents, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, contents.Items, 2)
	assert.Equal(t, catalog.Money(6500), contents.Total)

	first := contents.Items[0]
	assert.Equal(t, "Face Wash", first.Product.Name)
	require.NotNil(t, first.Product.Category)
	assert.Equal(t, "skin-care", first.Product.Category.Slug)
	assert.Nil(t, first.Product.Preview)

	contents, err = svc.List(ctx, bob)
	require.NoError(t, err)
	require.Len(t, contents.Items, 1)
	assert.Equal(t, catalog.Money(20000), contents.Total)
}

func newTestRouter(svc *Service, userID *uuid.UUID) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID != nil {
				req = req.WithContext(auth.WithUserID(req.Context(), *userID))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/cart", h.List)
	r.Post("/cart/add", h.Add)
	r.Post("/cart/remove", h.Remove)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Flow(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db)
	p := newProduct(t, db, "Face Wash", 1250, 10)
	userID := uuid.New()
	router := newTestRouter(svc, &userID)

	rec := doJSON(t, router, http.MethodPost, "/cart/add", map[string]any{"product": p.ID.String(), "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var added map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&added))
	assert.Equal(t, "Product added to cart successfully", added["detail"])
	assert.Equal(t, "25.00", added["subtotal"])

	rec = doJSON(t, router, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var contents map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&contents))
	assert.Equal(t, "25.00", contents["total"])
	assert.Len(t, contents["items"], 1)

	rec = doJSON(t, router, http.MethodPost, "/cart/remove", map[string]any{"product_id": uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/cart/remove", map[string]any{"product_id": p.ID.String()})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Product removed from cart successfully.")
}

func TestHandler_Errors(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db)
	userID := uuid.New()
	router := newTestRouter(svc, &userID)

	rec := doJSON(t, router, http.MethodPost, "/cart/add", map[string]any{"product": uuid.NewString(), "quantity": 0})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, httputil.CodeValidation, body.Code)
	assert.Contains(t, body.Errors, "quantity")

	rec = doJSON(t, router, http.MethodPost, "/cart/remove", map[string]any{"product_id": uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cart not found.")

	anonymous := newTestRouter(svc, nil)
	rec = doJSON(t, anonymous, http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
