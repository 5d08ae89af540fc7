package repositories_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/internal/services"
)

var testDBCounter int64

// setupTestDB opens a fresh in-memory SQLite database. Each call gets a
// uniquely named database so tests never share state through GORM's
// connection pool.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:ordertest%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()
	product := models.Product{
		Name:      name,
		Price:     decimal.RequireFromString(price),
		ImageURLs: []string{"https://cdn.example/" + name + ".jpg"},
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func newOrder(orderID string, items ...models.OrderItem) *models.Order {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return &models.Order{
		OrderID:         orderID,
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		CustomerPhone:   "555-0101",
		ShippingAddress: "1 Main St",
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		Items:           items,
	}
}

func orderItem(productID uint, quantity int, unitPrice string) models.OrderItem {
	unit := decimal.RequireFromString(unitPrice)
	return models.OrderItem{
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unit,
		TotalPrice: unit.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

func TestGORMOrderRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Linen Dress", "19.99")

	order := newOrder("ORD-1-AAAAAAAAA", orderItem(product.ID, 2, "19.99"))
	require.NoError(t, repo.Create(ctx, order))

	loaded, err := repo.GetByOrderID(ctx, "ORD-1-AAAAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", loaded.CustomerName)
	assert.Equal(t, models.OrderStatusPending, loaded.Status)
	assert.True(t, loaded.TotalAmount.Equal(decimal.RequireFromString("39.98")),
		"total %s should equal 39.98", loaded.TotalAmount)

	require.Len(t, loaded.Items, 1)
	item := loaded.Items[0]
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, "Linen Dress", item.ProductName)
	assert.Equal(t, product.ImageURLs, item.ImageURLs)

	// A second read returns the same thing.
	again, err := repo.GetByOrderID(ctx, "ORD-1-AAAAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, loaded.TotalAmount.StringFixed(2), again.TotalAmount.StringFixed(2))
	assert.Len(t, again.Items, 1)

	// Raising the product price later does not touch the snapshot.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("29.99")).Error)
	after, err := repo.GetByOrderID(ctx, "ORD-1-AAAAAAAAA")
	require.NoError(t, err)
	assert.True(t, after.Items[0].UnitPrice.Equal(decimal.RequireFromString("19.99")))
	assert.True(t, after.TotalAmount.Equal(decimal.RequireFromString("39.98")))
}

func TestGORMOrderRepository_CreateRollsBackOnItemFailure(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Linen Dress", "19.99")

	// The second item violates the quantity check constraint, so the
	// whole transaction, header included, must roll back.
	order := newOrder("ORD-2-BBBBBBBBB",
		orderItem(product.ID, 1, "19.99"),
		orderItem(product.ID, -1, "19.99"),
	)
	err := repo.Create(ctx, order)
	require.Error(t, err)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestGORMOrderRepository_GetByOrderID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	order, err := repo.GetByOrderID(context.Background(), "ORD-0-MISSING")
	assert.Nil(t, order)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMOrderRepository_GetByOrderID_DeletedProduct(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Linen Dress", "19.99")
	order := newOrder("ORD-3-CCCCCCCCC", orderItem(product.ID, 1, "19.99"))
	require.NoError(t, repo.Create(ctx, order))

	require.NoError(t, db.Delete(&models.Product{}, product.ID).Error)

	loaded, err := repo.GetByOrderID(ctx, "ORD-3-CCCCCCCCC")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	// The monetary snapshot survives; only the display name is gone.
	assert.Empty(t, loaded.Items[0].ProductName)
	assert.True(t, loaded.Items[0].UnitPrice.Equal(decimal.RequireFromString("19.99")))
}

func TestGORMOrderRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Linen Dress", "10.00")

	first := newOrder("ORD-4-DDDDDDDDD", orderItem(product.ID, 1, "10.00"))
	require.NoError(t, repo.Create(ctx, first))

	second := newOrder("ORD-5-EEEEEEEEE",
		orderItem(product.ID, 2, "10.00"),
		orderItem(product.ID, 3, "10.00"),
	)
	second.CustomerEmail = "bob@example.com"
	second.CustomerName = "Bob"
	second.Status = models.OrderStatusProcessing
	require.NoError(t, repo.Create(ctx, second))

	summaries, total, err := repo.List(ctx, repositories.OrderFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, summaries, 2)

	byID := make(map[string]repositories.OrderSummary, len(summaries))
	for _, s := range summaries {
		byID[s.OrderID] = s
	}
	assert.EqualValues(t, 1, byID["ORD-4-DDDDDDDDD"].ItemCount)
	assert.EqualValues(t, 2, byID["ORD-5-EEEEEEEEE"].ItemCount)

	// Filter by status.
	summaries, total, err = repo.List(ctx, repositories.OrderFilter{Status: models.OrderStatusProcessing})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, summaries, 1)
	assert.Equal(t, "ORD-5-EEEEEEEEE", summaries[0].OrderID)

	// Case-insensitive search over customer fields.
	summaries, total, err = repo.List(ctx, repositories.OrderFilter{Query: "BOB@"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Bob", summaries[0].CustomerName)

	// Pagination: page size one yields one row but the full count.
	summaries, total, err = repo.List(ctx, repositories.OrderFilter{Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, summaries, 1)
}

func TestOrderFilterNormalized(t *testing.T) {
	f := repositories.OrderFilter{}.Normalized()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)

	f = repositories.OrderFilter{Page: -3, PageSize: 500}.Normalized()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 100, f.PageSize)

	f = repositories.OrderFilter{Page: 4, PageSize: 25}.Normalized()
	assert.Equal(t, 4, f.Page)
	assert.Equal(t, 25, f.PageSize)
}

func TestGORMOrderRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Linen Dress", "10.00")
	order := newOrder("ORD-6-FFFFFFFFF", orderItem(product.ID, 1, "10.00"))
	require.NoError(t, repo.Create(ctx, order))

	updated, err := repo.UpdateStatus(ctx, "ORD-6-FFFFFFFFF", models.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)

	_, err = repo.UpdateStatus(ctx, "ORD-0-MISSING", models.OrderStatusProcessing)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMOrderRepository_ConcurrentCreates(t *testing.T) {
	db := setupTestDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	service := services.NewOrderService(orderRepo, productRepo, nil)

	const workers = 8

	products := make([]models.Product, workers)
	for i := range products {
		name := fmt.Sprintf("Concurrent Dress %d", i)
		products[i] = seedProduct(t, db, name, fmt.Sprintf("%d.25", i+1))
	}

	orderIDs := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			order, err := service.CreateOrder(context.Background(), services.CreateOrderRequest{
				CustomerName:    fmt.Sprintf("Customer %d", i),
				CustomerEmail:   fmt.Sprintf("customer%d@example.com", i),
				CustomerPhone:   "+1555000000",
				ShippingAddress: "1 Main St",
				Items: []services.CreateOrderItem{
					{ProductID: products[i].ID, Quantity: i + 1},
				},
			})
			if err != nil {
				errs[i] = err
				return
			}
			orderIDs[i] = order.OrderID
		}(i)
	}
	wg.Wait()

	// Every order must have committed with the total of its own product set,
	// untouched by the creations running alongside it.
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i], "order %d failed", i)

		stored, err := orderRepo.GetByOrderID(context.Background(), orderIDs[i])
		require.NoError(t, err)

		wantTotal := products[i].Price.Mul(decimal.NewFromInt(int64(i + 1)))
		assert.True(t, stored.TotalAmount.Equal(wantTotal),
			"order %d total = %s, want %s", i, stored.TotalAmount, wantTotal)
		require.Len(t, stored.Items, 1)
		assert.Equal(t, products[i].ID, stored.Items[0].ProductID)
		assert.Equal(t, i+1, stored.Items[0].Quantity)
	}

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, workers, count)
}
