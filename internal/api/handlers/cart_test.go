package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"perfume-store/internal/cart"
	"perfume-store/internal/catalog"
	"perfume-store/internal/collections"
	"perfume-store/internal/models"
)

// Мок CartService
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Cart(ctx context.Context, sessionID string) (models.CartView, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(models.CartView), args.Error(1)
}

func (m *MockCartService) AddToCart(ctx context.Context, sessionID string, productID int64) (*models.CartResponse, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartResponse), args.Error(1)
}

func (m *MockCartService) SetCartQuantity(ctx context.Context, sessionID string, productID int64, qty int) (*models.CartResponse, error) {
	args := m.Called(ctx, sessionID, productID, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartResponse), args.Error(1)
}

func (m *MockCartService) RemoveFromCart(ctx context.Context, sessionID string, productID int64) (*models.CartResponse, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartResponse), args.Error(1)
}

func (m *MockCartService) ClearCart(ctx context.Context, sessionID string) (*models.CartResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartResponse), args.Error(1)
}

// Мок CollectionsService
type MockCollectionsService struct {
	mock.Mock
}

func (m *MockCollectionsService) Wishlist(ctx context.Context, sessionID string) ([]models.Product, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockCollectionsService) ToggleWishlist(ctx context.Context, sessionID string, productID int64) (*models.ToggleResponse, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ToggleResponse), args.Error(1)
}

func (m *MockCollectionsService) Comparison(ctx context.Context, sessionID string) (*models.ComparisonResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComparisonResponse), args.Error(1)
}

func (m *MockCollectionsService) ToggleComparison(ctx context.Context, sessionID string, productID int64) (*models.ToggleResponse, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ToggleResponse), args.Error(1)
}

func setupCartTest() (*gin.Engine, *MockCartService, *MockCollectionsService) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cartService := new(MockCartService)
	collectionsService := new(MockCollectionsService)
	cartHandler := NewCartHandler(cartService)
	collectionsHandler := NewCollectionsHandler(collectionsService)

	group := r.Group("/", withSession("s1"))
	group.GET("/cart", cartHandler.Get)
	group.POST("/cart/items", cartHandler.AddItem)
	group.PUT("/cart/items/:id", cartHandler.SetQuantity)
	group.DELETE("/cart/items/:id", cartHandler.RemoveItem)
	group.DELETE("/cart", cartHandler.Clear)

	group.GET("/wishlist", collectionsHandler.Wishlist)
	group.POST("/wishlist/:id", collectionsHandler.ToggleWishlist)
	group.GET("/comparison", collectionsHandler.Comparison)
	group.POST("/comparison/:id", collectionsHandler.ToggleComparison)

	return r, cartService, collectionsService
}

func testCartResponse(qty int) *models.CartResponse {
	return &models.CartResponse{
		Cart: models.CartView{
			Items:          []models.CartItem{{ID: 1, Name: "Bleu", Price: 9000, Quantity: qty, LineTotal: 9000 * int64(qty)}},
			Subtotal:       9000 * int64(qty),
			TotalItemCount: qty,
		},
		Toast: &models.Toast{Title: "Добавлено в корзину"},
	}
}

func TestCartGetHandler(t *testing.T) {
	r, cartService, _ := setupCartTest()
	cartService.On("Cart", mock.Anything, "s1").Return(testCartResponse(2).Cart, nil)

	w := doRequest(r, "GET", "/cart", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var response models.CartView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(18000), response.Subtotal)
	assert.Equal(t, 2, response.TotalItemCount)
}

func TestCartAddItemHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		setup      func(s *MockCartService)
		wantStatus int
	}{
		{
			name: "Аромат добавлен",
			body: models.AddToCartRequest{ProductID: 1},
			setup: func(s *MockCartService) {
				s.On("AddToCart", mock.Anything, "s1", int64(1)).Return(testCartResponse(1), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Нет идентификатора",
			body:       map[string]int{},
			setup:      func(s *MockCartService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Аромата нет в каталоге",
			body: models.AddToCartRequest{ProductID: 42},
			setup: func(s *MockCartService) {
				s.On("AddToCart", mock.Anything, "s1", int64(42)).Return(nil, catalog.ErrProductNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, cartService, _ := setupCartTest()
			tt.setup(cartService)

			w := doRequest(r, "POST", "/cart/items", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			cartService.AssertExpectations(t)
		})
	}
}

func TestCartSetQuantityHandler(t *testing.T) {
	t.Run("Ноль передается в сервис", func(t *testing.T) {
		r, cartService, _ := setupCartTest()
		cartService.On("SetCartQuantity", mock.Anything, "s1", int64(1), 0).Return(&models.CartResponse{
			Cart: models.CartView{Items: []models.CartItem{}},
		}, nil)

		w := doRequest(r, "PUT", "/cart/items/1", map[string]int{"quantity": 0})

		assert.Equal(t, http.StatusOK, w.Code)
		cartService.AssertExpectations(t)
	})

	t.Run("Нет количества", func(t *testing.T) {
		r, cartService, _ := setupCartTest()

		w := doRequest(r, "PUT", "/cart/items/1", map[string]int{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		cartService.AssertNotCalled(t, "SetCartQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Количество больше предела", func(t *testing.T) {
		r, cartService, _ := setupCartTest()

		w := doRequest(r, "PUT", "/cart/items/1", map[string]int64{"quantity": 4611686018427387})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		cartService.AssertNotCalled(t, "SetCartQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Добавление сверх предела", func(t *testing.T) {
		r, cartService, _ := setupCartTest()
		cartService.On("AddToCart", mock.Anything, "s1", int64(1)).
			Return(nil, fmt.Errorf("product 1: %w", cart.ErrQuantityLimit))

		w := doRequest(r, "POST", "/cart/items", models.AddToCartRequest{ProductID: 1})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Можно заказать не больше 99 флаконов одного аромата", decodeError(t, w))
	})
}

func TestCartRemoveAndClearHandlers(t *testing.T) {
	r, cartService, _ := setupCartTest()
	empty := &models.CartResponse{Cart: models.CartView{Items: []models.CartItem{}}}
	cartService.On("RemoveFromCart", mock.Anything, "s1", int64(1)).Return(empty, nil)
	cartService.On("ClearCart", mock.Anything, "s1").Return(empty, nil)

	w := doRequest(r, "DELETE", "/cart/items/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, "DELETE", "/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	cartService.AssertExpectations(t)
}

func TestToggleComparisonHandler(t *testing.T) {
	t.Run("Аромат добавлен", func(t *testing.T) {
		r, _, collectionsService := setupCartTest()
		collectionsService.On("ToggleComparison", mock.Anything, "s1", int64(3)).Return(&models.ToggleResponse{
			IDs: []int64{1, 3}, Added: true,
		}, nil)

		w := doRequest(r, "POST", "/comparison/3", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var response models.ToggleResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Added)
		assert.Equal(t, []int64{1, 3}, response.IDs)
	})

	t.Run("Сравнение заполнено", func(t *testing.T) {
		r, _, collectionsService := setupCartTest()
		collectionsService.On("ToggleComparison", mock.Anything, "s1", int64(5)).Return(nil, collections.ErrComparisonFull)

		w := doRequest(r, "POST", "/comparison/5", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "В сравнении уже 4 аромата", decodeError(t, w))
	})
}

func TestWishlistHandlers(t *testing.T) {
	r, _, collectionsService := setupCartTest()
	collectionsService.On("ToggleWishlist", mock.Anything, "s1", int64(2)).Return(&models.ToggleResponse{IDs: []int64{}, Added: false}, nil)
	collectionsService.On("Wishlist", mock.Anything, "s1").Return([]models.Product{}, nil)
	collectionsService.On("Comparison", mock.Anything, "s1").Return(&models.ComparisonResponse{
		Products:    []models.Product{{ID: 1}, {ID: 2}},
		SharedNotes: []string{"Бергамот"},
	}, nil)

	w := doRequest(r, "POST", "/wishlist/2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, "GET", "/wishlist", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = doRequest(r, "GET", "/comparison", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var comparison models.ComparisonResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &comparison))
	assert.Equal(t, []string{"Бергамот"}, comparison.SharedNotes)

	collectionsService.AssertExpectations(t)
}
