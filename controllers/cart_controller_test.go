package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jewels-backend/middleware"
	"jewels-backend/models"
	"jewels-backend/repository"
	"jewels-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memProductRepo struct {
	products map[primitive.ObjectID]*models.Product
}

func (m *memProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memProductRepo) FindAll(ctx context.Context) ([]models.Product, error) { return nil, nil }
func (m *memProductRepo) Insert(ctx context.Context, p *models.Product) error   { return nil }
func (m *memProductRepo) Update(ctx context.Context, id primitive.ObjectID, u bson.M) (int64, error) {
	return 0, nil
}
func (m *memProductRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return 0, nil
}

type memCartRepo struct {
	items map[[2]primitive.ObjectID]*models.CartItem
}

func (m *memCartRepo) FindByUserAndProduct(ctx context.Context, uid, pid primitive.ObjectID) (*models.CartItem, error) {
	if item, ok := m.items[[2]primitive.ObjectID{uid, pid}]; ok {
		return item, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memCartRepo) IncrementQuantity(ctx context.Context, uid, pid primitive.ObjectID, qty, maxQuantity int) (bool, error) {
	item, ok := m.items[[2]primitive.ObjectID{uid, pid}]
	if !ok || item.Quantity+qty > maxQuantity {
		return false, nil
	}
	item.Quantity += qty
	return true, nil
}

func (m *memCartRepo) Insert(ctx context.Context, item *models.CartItem) error {
	k := [2]primitive.ObjectID{item.UserID, item.ProductID}
	if _, ok := m.items[k]; ok {
		return repository.ErrDuplicate
	}
	item.ID = primitive.NewObjectID()
	m.items[k] = item
	return nil
}

func (m *memCartRepo) SetQuantity(ctx context.Context, uid, pid primitive.ObjectID, qty int) (int64, error) {
	if item, ok := m.items[[2]primitive.ObjectID{uid, pid}]; ok {
		item.Quantity = qty
		return 1, nil
	}
	return 0, nil
}

func (m *memCartRepo) Delete(ctx context.Context, uid, pid primitive.ObjectID) error {
	delete(m.items, [2]primitive.ObjectID{uid, pid})
	return nil
}

func (m *memCartRepo) FindLinesByUser(ctx context.Context, uid primitive.ObjectID) ([]models.CartLine, error) {
	var lines []models.CartLine
	for k, item := range m.items {
		if k[0] == uid {
			lines = append(lines, models.CartLine{ID: item.ID, ProductID: item.ProductID, Quantity: item.Quantity})
		}
	}
	return lines, nil
}

type noopBlacklist struct{}

func (noopBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error { return nil }
func (noopBlacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	return false, nil
}

func newCartTestRouter(t *testing.T) (*gin.Engine, string, *models.Product) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	product := &models.Product{ID: primitive.NewObjectID(), Name: "Gold Ring", Stock: 5}
	cartRepo := &memCartRepo{items: make(map[[2]primitive.ObjectID]*models.CartItem)}
	productRepo := &memProductRepo{products: map[primitive.ObjectID]*models.Product{product.ID: product}}

	cartService := services.NewCartService(cartRepo, productRepo)
	controller := NewCartController(cartService)

	tokens := services.NewTokenService("test-secret", time.Hour)
	token, err := tokens.Generate(&models.User{ID: primitive.NewObjectID(), Email: "u@e.c", Role: models.RoleUser})
	require.NoError(t, err)

	r := gin.New()
	auth := middleware.RequireAuth(tokens, noopBlacklist{})
	r.GET("/api/cart", auth, controller.GetCart)
	r.POST("/api/cart/add", auth, controller.AddToCart)
	r.PUT("/api/cart/update/:productId", auth, controller.UpdateCartItem)
	r.DELETE("/api/cart/remove/:productId", auth, controller.RemoveFromCart)
	return r, token, product
}

func doJSON(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCartRoutesRequireAuth(t *testing.T) {
	r, _, product := newCartTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/cart/add", "", `{"product_id":"`+product.ID.Hex()+`","quantity":1}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddToCartEndpoint(t *testing.T) {
	r, token, product := newCartTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/cart/add", token, `{"product_id":"`+product.ID.Hex()+`","quantity":2}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Item added to cart")

	w = doJSON(r, http.MethodGet, "/api/cart", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":2`)
}

func TestAddToCartEndpointOverStock(t *testing.T) {
	r, token, product := newCartTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/cart/add", token, `{"product_id":"`+product.ID.Hex()+`","quantity":9}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Requested quantity exceeds available stock")
}

func TestAddToCartEndpointBadBody(t *testing.T) {
	r, token, _ := newCartTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/cart/add", token, `{"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAndRemoveCartEndpoints(t *testing.T) {
	r, token, product := newCartTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/cart/add", token, `{"product_id":"`+product.ID.Hex()+`","quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPut, "/api/cart/update/"+product.ID.Hex(), token, `{"quantity":4}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/cart/remove/"+product.ID.Hex(), token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Removing again is still a success.
	w = doJSON(r, http.MethodDelete, "/api/cart/remove/"+product.ID.Hex(), token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/cart", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}
