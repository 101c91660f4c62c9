package storefront

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"perfume-store/internal/catalog"
	"perfume-store/internal/checkout"
	"perfume-store/internal/collections"
	"perfume-store/internal/config"
	"perfume-store/internal/models"
	"perfume-store/internal/orders"
	"perfume-store/internal/session"
)

type testEnv struct {
	svc      *Service
	products *catalog.MemoryRepository
	state    *session.MemoryStore
	orders   *orders.MemoryRepository
}

func seedProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Chanel No. 5", Brand: "Chanel", Price: 2500, Category: models.CategoryFemale, Volume: "100 мл", Notes: []string{"роза", "жасмин", "ваниль"}, Availability: true},
		{ID: 2, Name: "Sauvage", Brand: "Dior", Price: 2300, Category: models.CategoryMale, Volume: "60 мл", Notes: []string{"бергамот", "ваниль"}, Availability: true},
		{ID: 3, Name: "Aventus", Brand: "Creed", Price: 31000, Category: models.CategoryMale, Volume: "100 мл", Notes: []string{"ананас", "ваниль"}, Availability: true},
		{ID: 4, Name: "Black Opium", Brand: "YSL", Price: 9800, Category: models.CategoryFemale, Volume: "90 мл", Notes: []string{"кофе", "ваниль"}, Availability: false},
		{ID: 5, Name: "Baccarat Rouge 540", Brand: "MFK", Price: 24500, Category: models.CategoryUnisex, Volume: "70 мл", Notes: []string{"шафран", "ваниль"}, Availability: true},
		{ID: 6, Name: "Tobacco Vanille", Brand: "Tom Ford", Price: 27000, Category: models.CategoryUnisex, Volume: "50 мл", Notes: []string{"табак", "ваниль"}, Availability: true},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zap.NewNop()
	products := catalog.NewMemoryRepository(seedProducts()...)
	state := session.NewMemoryStore()
	orderRepo := orders.NewMemoryRepository()

	svc := New(Deps{
		Products: products,
		Catalog:  catalog.NewCache(products, time.Minute, log),
		State:    state,
		Orders:   orders.NewStore(orderRepo, log),
		Pricing: checkout.NewPricing(config.CheckoutConfig{
			FreeDeliveryThreshold: 5000,
			CourierFee:            500,
			PickupFee:             300,
			PromoCodes:            map[string]int{"WELCOME10": 10, "SALE20": 20, "VIP30": 30},
		}),
		Log: log,
	})
	return &testEnv{svc: svc, products: products, state: state, orders: orderRepo}
}

func TestCartLivePricing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.AddToCart(ctx, "s1", 1)
	require.NoError(t, err)
	resp, err := env.svc.AddToCart(ctx, "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), resp.Cart.Subtotal)
	assert.Equal(t, "Добавлено в корзину", resp.Toast.Title)

	// Цена изменилась в админке после добавления в корзину
	_, err = env.svc.UpdateProduct(ctx, 1, models.ProductInput{
		Name: "Chanel No. 5", Brand: "Chanel", Price: 3000, Category: models.CategoryFemale, Volume: "100 мл",
	})
	require.NoError(t, err)

	view, err := env.svc.Cart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(6000), view.Subtotal)
	assert.Equal(t, 2, view.TotalItemCount)
}

func TestCartIsWrittenThrough(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.AddToCart(ctx, "s1", 2)
	require.NoError(t, err)

	rec, err := env.state.Load(ctx, "s1", session.KeyCart)
	require.NoError(t, err)
	assert.Equal(t, session.CurrentVersion, rec.Version)
	assert.JSONEq(t, `[{"id":2,"quantity":1}]`, string(rec.Payload))
}

func TestCartMutations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.AddToCart(ctx, "s1", 404)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	_, err = env.svc.AddToCart(ctx, "s1", 1)
	require.NoError(t, err)
	_, err = env.svc.AddToCart(ctx, "s1", 2)
	require.NoError(t, err)

	resp, err := env.svc.SetCartQuantity(ctx, "s1", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Cart.TotalItemCount)

	resp, err = env.svc.SetCartQuantity(ctx, "s1", 1, 0)
	require.NoError(t, err)
	require.Len(t, resp.Cart.Items, 1)
	assert.Equal(t, int64(2), resp.Cart.Items[0].ID)

	resp, err = env.svc.RemoveFromCart(ctx, "s1", 2)
	require.NoError(t, err)
	assert.Empty(t, resp.Cart.Items)

	_, err = env.svc.AddToCart(ctx, "s1", 3)
	require.NoError(t, err)
	resp, err = env.svc.ClearCart(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, resp.Cart.TotalItemCount)
}

func TestWishlistAndComparison(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.svc.ToggleWishlist(ctx, "s1", 3)
	require.NoError(t, err)
	assert.True(t, resp.Added)
	assert.Equal(t, "Добавлено в избранное", resp.Toast.Title)

	resp, err = env.svc.ToggleWishlist(ctx, "s1", 3)
	require.NoError(t, err)
	assert.False(t, resp.Added)
	assert.Empty(t, resp.IDs)

	for _, id := range []int64{1, 2, 3, 5} {
		_, err := env.svc.ToggleComparison(ctx, "s1", id)
		require.NoError(t, err)
	}
	_, err = env.svc.ToggleComparison(ctx, "s1", 6)
	assert.ErrorIs(t, err, collections.ErrComparisonFull)

	cmp, err := env.svc.Comparison(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, cmp.Products, 4)
	assert.Equal(t, []string{"ваниль"}, cmp.SharedNotes)

	_, err = env.svc.ToggleWishlist(ctx, "s1", 404)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestViewProductRecordsRecentlyViewed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 1, 3} {
		_, err := env.svc.ViewProduct(ctx, "s1", id)
		require.NoError(t, err)
	}

	viewed, err := env.svc.RecentlyViewed(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, viewed, 3)
	assert.Equal(t, int64(3), viewed[0].ID)
	assert.Equal(t, int64(1), viewed[1].ID)
	assert.Equal(t, int64(2), viewed[2].ID)
}

func TestReviews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, rating := range []int{4, 5, 3} {
		_, _, err := env.svc.AddReview(ctx, 1, models.CreateReviewRequest{Author: "Анна", Rating: rating, Text: "Отличный аромат"})
		require.NoError(t, err)
	}

	products, err := env.svc.ListProducts(ctx, models.ProductListQuery{Search: "chanel"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 4.0, products[0].Rating)
	assert.Equal(t, 3, products[0].ReviewsCount)

	reviews, err := env.svc.Reviews(ctx, 1, catalog.ReviewsRatingAsc)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, 3, reviews[0].Rating)

	_, err = env.svc.MarkReviewHelpful(ctx, 1, reviews[0].ID, "анна")
	assert.ErrorIs(t, err, catalog.ErrSelfVote)

	voted, err := env.svc.MarkReviewHelpful(ctx, 1, reviews[0].ID, "Борис")
	require.NoError(t, err)
	assert.Equal(t, 1, voted.Helpful)
}

func completeCheckout(t *testing.T, svc *Service, sessionID string) *models.CompleteCheckoutResponse {
	t.Helper()
	ctx := context.Background()

	_, err := svc.SetCheckoutContact(ctx, sessionID, models.ContactInfo{Name: "Ann", Phone: "+1", Email: "a@b.com"})
	require.NoError(t, err)
	resp, err := svc.CheckoutNext(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, string(checkout.StepDelivery), resp.Step)

	_, err = svc.SetCheckoutDelivery(ctx, sessionID, models.DeliveryInfo{
		Method: models.DeliveryCourier, City: "Москва", Address: "Тверская, 1", PaymentMethod: models.PaymentCard,
	})
	require.NoError(t, err)
	resp, err = svc.CheckoutNext(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, string(checkout.StepConfirmation), resp.Step)

	done, err := svc.CompleteCheckout(ctx, sessionID)
	require.NoError(t, err)
	return done
}

func TestCheckoutEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.AddToCart(ctx, "s1", 1)
	require.NoError(t, err)
	_, err = env.svc.AddToCart(ctx, "s1", 2)
	require.NoError(t, err)

	done := completeCheckout(t, env.svc, "s1")

	assert.Equal(t, models.StatusPending, done.Order.Status)
	assert.Len(t, done.Order.Items, 2)
	assert.Equal(t, int64(4800), done.Order.Subtotal)
	assert.Equal(t, int64(500), done.Order.DeliveryFee)
	assert.Equal(t, int64(5300), done.Order.Total)

	list, err := env.svc.Orders(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, done.Order.ID, list[0].ID)

	cartView, err := env.svc.Cart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cartView.Items)

	feed, err := env.svc.Notifications(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, 1, feed.Unread)
	assert.Equal(t, models.NotificationOrder, feed.Items[0].Type)

	// Мастер снова на первом шаге, контакты взяты из профиля
	state, err := env.svc.Checkout(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, string(checkout.StepContact), state.Step)
	assert.Equal(t, "a@b.com", state.Contact.Email)

	profile, err := env.svc.Profile(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.Profile{Name: "Ann", Email: "a@b.com", Phone: "+1", Address: "Тверская, 1"}, profile)
}

func TestCheckoutRefusesInvalidStep(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.SetCheckoutContact(ctx, "s1", models.ContactInfo{Name: "Ann", Phone: "+1", Email: "not-an-email"})
	require.NoError(t, err)

	resp, err := env.svc.CheckoutNext(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, string(checkout.StepContact), resp.Step)
	assert.Equal(t, []string{checkout.FieldEmail}, resp.Missing)
	assert.False(t, resp.CanAdvance)

	_, err = env.svc.CompleteCheckout(ctx, "s1")
	assert.ErrorIs(t, err, checkout.ErrNotReady)
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.SetCheckoutContact(context.Background(), "s1", models.ContactInfo{Name: "Ann", Phone: "+1", Email: "a@b.com"})
	require.NoError(t, err)
	_, err = env.svc.CheckoutNext(context.Background(), "s1")
	require.NoError(t, err)
	_, err = env.svc.SetCheckoutDelivery(context.Background(), "s1", models.DeliveryInfo{Method: models.DeliveryPickup, PaymentMethod: models.PaymentCash})
	require.NoError(t, err)
	_, err = env.svc.CheckoutNext(context.Background(), "s1")
	require.NoError(t, err)

	_, err = env.svc.CompleteCheckout(context.Background(), "s1")
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)

	orderList, err := env.svc.Orders(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, orderList)
}

func TestCheckoutPromo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.AddToCart(ctx, "s1", 6)
	require.NoError(t, err)

	resp, err := env.svc.ApplyPromo(ctx, "s1", "sale20")
	require.NoError(t, err)
	assert.Equal(t, "SALE20", resp.PromoCode)
	assert.Equal(t, int64(5400), resp.Quote.Discount)
	assert.Equal(t, int64(0), resp.Quote.DeliveryFee)
	assert.Equal(t, int64(21600), resp.Quote.Total)

	resp, err = env.svc.ApplyPromo(ctx, "s1", "FAKE99")
	require.NoError(t, err)
	assert.True(t, resp.InvalidPromo)
	assert.Empty(t, resp.PromoCode)
	assert.Equal(t, int64(0), resp.Quote.Discount)
}

func TestCheckoutDraftsAreBounded(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.svc.drafts, _ = lru.New(2)

	for _, id := range []string{"s1", "s2", "s3"} {
		_, err := env.svc.SetCheckoutContact(ctx, id, models.ContactInfo{Name: "Ann " + id, Phone: "+1", Email: "a@b.com"})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, env.svc.drafts.Len())

	// Самый давний черновик вытеснен и создается заново по профилю
	state, err := env.svc.Checkout(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, state.Contact.Name)

	state, err = env.svc.Checkout(ctx, "s3")
	require.NoError(t, err)
	assert.Equal(t, "Ann s3", state.Contact.Name)
	assert.Equal(t, 2, env.svc.drafts.Len())
}

func TestAbandonCheckoutKeepsCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.AddToCart(ctx, "s1", 1)
	require.NoError(t, err)
	_, err = env.svc.SetCheckoutContact(ctx, "s1", models.ContactInfo{Name: "Ann", Phone: "+1", Email: "a@b.com"})
	require.NoError(t, err)
	_, err = env.svc.CheckoutNext(ctx, "s1")
	require.NoError(t, err)

	env.svc.AbandonCheckout(ctx, "s1")

	state, err := env.svc.Checkout(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, string(checkout.StepContact), state.Step)
	assert.Equal(t, 1, state.Cart.TotalItemCount)
}

func TestSetOrderStatusNotifiesCustomer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.AddToCart(ctx, "s1", 3)
	require.NoError(t, err)
	done := completeCheckout(t, env.svc, "s1")

	_, err = env.svc.SetOrderStatus(ctx, done.Order.ID, models.StatusDelivered)
	assert.ErrorIs(t, err, orders.ErrIllegalTransition)

	order, err := env.svc.SetOrderStatus(ctx, done.Order.ID, models.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, order.Status)

	feed, err := env.svc.Notifications(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, feed.Items, 2)
	assert.Equal(t, "Заказ собирается", feed.Items[0].Title)

	all, err := env.svc.AdminOrders(ctx, models.StatusProcessing)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, env.svc.DeleteOrder(ctx, done.Order.ID))
	_, err = env.svc.SetOrderStatus(ctx, done.Order.ID, models.StatusShipped)
	assert.ErrorIs(t, err, orders.ErrOrderNotFound)
}

func TestNotificationsFeed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.AddToCart(ctx, "s1", 3)
	require.NoError(t, err)
	done := completeCheckout(t, env.svc, "s1")

	feed, err := env.svc.MarkNotificationRead(ctx, "s1", done.Notification.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, feed.Unread)

	_, err = env.svc.MarkNotificationRead(ctx, "s1", "missing")
	assert.Error(t, err)

	feed, err = env.svc.ClearNotifications(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, feed.Items)
}

func TestImportProducts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	csv := "name;brand;price;category;volume\nLibre;YSL;11200;Женский;50 мл\nBad;;;;\n"
	resp, err := env.svc.ImportProducts(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Imported)
	assert.Len(t, resp.Skipped, 1)

	products, err := env.svc.ListProducts(ctx, models.ProductListQuery{Search: "libre"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(11200), products[0].Price)
}

func TestImportLegacy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := models.ImportStateRequest{
		"cart":           []byte(`[{"id":1,"name":"Chanel No. 5","price":2500,"quantity":2},{"id":1,"quantity":1}]`),
		"wishlist":       []byte(`[3,3,5]`),
		"comparison":     []byte(`[1,2,3,4,5]`),
		"recentlyViewed": []byte(`"broken"`),
		"userName":       []byte(`"Анна"`),
		"userEmail":      []byte(`"anna@example.com"`),
		"orders":         []byte(`[{"id":"ORD-OLD-1","date":"2025-01-15T14:30:00Z","status":"delivered","customer":{"name":"Анна"},"items":[{"id":1,"name":"Chanel No. 5","price":2500,"quantity":2}],"total":5000,"paymentMethod":"card"}]`),
	}

	resp, err := env.svc.ImportLegacy(ctx, "s1", req)
	require.NoError(t, err)
	assert.Equal(t, []string{"cart", "comparison", "orders", "profile", "wishlist"}, resp.Imported)
	assert.Equal(t, 1, resp.Orders)
	assert.Contains(t, resp.Failed, "recentlyViewed")

	snap, err := env.svc.Snapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Cart.TotalItemCount)
	assert.Equal(t, []int64{3, 5}, snap.Wishlist)
	assert.Equal(t, []int64{1, 2, 3, 4}, snap.Comparison)
	assert.Empty(t, snap.RecentlyViewed)
	assert.Equal(t, "Анна", snap.Profile.Name)
	require.Len(t, snap.Orders, 1)
	assert.Equal(t, int64(5000), snap.Orders[0].Subtotal)
	assert.Equal(t, models.StatusDelivered, snap.Orders[0].Status)

	// Повторный перенос не дублирует заказы
	resp, err = env.svc.ImportLegacy(ctx, "s1", models.ImportStateRequest{"orders": req["orders"]})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Orders)
	assert.Nil(t, resp.Failed)
}

func TestImportLegacyOrdersAreVerified(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	forged := models.ImportStateRequest{
		"orders": []byte(`[
			{"id":"ORD-X","status":"delivered","items":[{"id":3,"name":"Aventus","price":31000,"quantity":2}],"total":1},
			{"id":"ORD-Y","status":"shipped","items":[{"id":1,"name":"Chanel No. 5","price":2500,"quantity":1}],"total":2500}
		]`),
	}

	resp, err := env.svc.ImportLegacy(ctx, "s1", forged)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Orders)
	assert.Contains(t, resp.Failed["orders"], "ORD-X total 1, items give 62000")

	list, err := env.svc.Orders(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Imported)
	assert.Equal(t, orders.ImportedID("s1", "ORD-Y"), list[0].ID)

	// Админка не может перевести перенесенный заказ дальше
	_, err = env.svc.SetOrderStatus(ctx, list[0].ID, models.StatusDelivered)
	assert.ErrorIs(t, err, orders.ErrImportedOrder)

	// Тот же номер из другой сессии не сталкивается с первым
	resp, err = env.svc.ImportLegacy(ctx, "s2", models.ImportStateRequest{"orders": []byte(`[
		{"id":"ORD-Y","items":[{"id":2,"name":"Sauvage","price":2300,"quantity":1}],"total":2300}
	]`)})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Orders)

	first, err := env.svc.Orders(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, int64(2500), first[0].Total)
}

type failingStore struct {
	*session.MemoryStore
	failKey string
}

func (f failingStore) Load(ctx context.Context, sessionID, key string) (session.Record, error) {
	if key == f.failKey {
		return session.Record{}, errors.New("storage is down")
	}
	return f.MemoryStore.Load(ctx, sessionID, key)
}

func TestSnapshotAggregatesErrors(t *testing.T) {
	env := newTestEnv(t)
	env.svc.state = failingStore{MemoryStore: env.state, failKey: session.KeyWishlist}
	ctx := context.Background()

	_, err := env.svc.AddToCart(ctx, "s1", 1)
	require.NoError(t, err)

	snap, err := env.svc.Snapshot(ctx, "s1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "storage is down")
	assert.Equal(t, 1, snap.Cart.TotalItemCount)
	assert.Empty(t, snap.Wishlist)
}

func TestConcurrentCartMutationsAreSerialized(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.AddToCart(ctx, "s1", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := env.svc.Cart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 20, view.TotalItemCount)
	assert.Empty(t, env.svc.locks.locks)
}

func TestRecommendationsUseSessionHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.AddToCart(ctx, "s1", 2)
	require.NoError(t, err)
	_, err = env.svc.ViewProduct(ctx, "s1", 5)
	require.NoError(t, err)

	rec, err := env.svc.Recommendations(ctx, "s1", 1)
	require.NoError(t, err)

	// Sauvage ближе всех по цене, но уже в корзине
	assert.Equal(t, []int64{4}, productIDs(rec.Similar))
	assert.Equal(t, []int64{3, 5, 6}, productIDs(rec.Personalized))
	assert.Empty(t, rec.Trending)

	anonymous, err := env.svc.Recommendations(ctx, "s2", 0)
	require.NoError(t, err)
	assert.Empty(t, anonymous.Similar)
	assert.Empty(t, anonymous.Personalized)
	assert.Equal(t, []int64{1, 2, 3, 4}, productIDs(anonymous.Trending))

	_, err = env.svc.Recommendations(ctx, "s1", 404)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestLoyaltyFollowsOrders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	status, err := env.svc.Loyalty(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Бронза", status.Tier)
	assert.Zero(t, status.TotalSpent)

	_, err = env.svc.AddToCart(ctx, "s1", 3)
	require.NoError(t, err)
	done := completeCheckout(t, env.svc, "s1")

	status, err = env.svc.Loyalty(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, done.Order.Total, status.TotalSpent)
	assert.Equal(t, done.Order.Total*5/100, status.Points)
	assert.Equal(t, "Золото", status.Tier)
	assert.Equal(t, 1, status.OrderCount)

	_, err = env.svc.SetOrderStatus(ctx, done.Order.ID, models.StatusCancelled)
	require.NoError(t, err)

	status, err = env.svc.Loyalty(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Бронза", status.Tier)
	assert.Zero(t, status.OrderCount)
}

func productIDs(products []models.Product) []int64 {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}
