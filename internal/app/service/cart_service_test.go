package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/internal/app/repository"
	"github.com/artigianatoshop/artigianato-backend/internal/db"
)

func setupCartServiceTest(t *testing.T) (CartService, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo)

	client := &model.User{
		Email:        "client@example.com",
		PasswordHash: "hash",
		Name:         "Test",
		Surname:      "Client",
		Role:         model.RoleClient,
	}
	testDB.Create(client)

	artisan := &model.User{
		Email:        "artisan@example.com",
		PasswordHash: "hash",
		Name:         "Test",
		Surname:      "Artisan",
		Role:         model.RoleArtisan,
	}
	testDB.Create(artisan)

	category := &model.Category{Name: "Ceramics"}
	testDB.Create(category)

	product := &model.Product{
		Name:       "Handmade Vase",
		Price:      100,
		CategoryID: category.ID,
		ArtisanID:  artisan.ID,
	}
	testDB.Create(product)

	return cartService, testDB, client, product
}

func TestCartService_EnsureCart(t *testing.T) {
	cartService, _, client, _ := setupCartServiceTest(t)

	cart, created, err := cartService.EnsureCart(client.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, cart.ID)
	assert.Equal(t, client.ID, cart.UserID)

	// Second call returns the same cart
	again, created, err := cartService.EnsureCart(client.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, cart.ID, again.ID)
}

func TestCartService_GetCart_NoCart(t *testing.T) {
	cartService, testDB, client, _ := setupCartServiceTest(t)

	// Reading a cart never creates one
	cart, err := cartService.GetCart(client.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	var count int64
	testDB.Model(&model.Cart{}).Where("user_id = ?", client.ID).Count(&count)
	assert.Zero(t, count)
}

func TestCartService_AddItem_NoCart(t *testing.T) {
	cartService, _, client, product := setupCartServiceTest(t)

	_, err := cartService.AddItem(client.ID, product.ID, 2)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartService_AddItem(t *testing.T) {
	cartService, _, client, product := setupCartServiceTest(t)

	_, _, err := cartService.EnsureCart(client.ID)
	require.NoError(t, err)

	item, err := cartService.AddItem(client.ID, product.ID, 2)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, 2, item.Quantity)

	cart, err := cartService.GetCart(client.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, product.ID, cart.Items[0].ProductID)
}

func TestCartService_AddItem_OverwritesQuantity(t *testing.T) {
	cartService, _, client, product := setupCartServiceTest(t)

	_, _, err := cartService.EnsureCart(client.ID)
	require.NoError(t, err)

	_, err = cartService.AddItem(client.ID, product.ID, 2)
	require.NoError(t, err)

	// Re-adding the same product replaces the quantity, it does not add
	item, err := cartService.AddItem(client.ID, product.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	cart, err := cartService.GetCart(client.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	cartService, _, client, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem(client.ID, 99999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	cartService, _, client, product := setupCartServiceTest(t)

	_, _, err := cartService.EnsureCart(client.ID)
	require.NoError(t, err)

	item, err := cartService.AddItem(client.ID, product.ID, 2)
	require.NoError(t, err)

	updated, err := cartService.UpdateItemQuantity(client.ID, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
}

func TestCartService_UpdateItemQuantity_OtherUsersItem(t *testing.T) {
	cartService, testDB, client, product := setupCartServiceTest(t)

	_, _, err := cartService.EnsureCart(client.ID)
	require.NoError(t, err)

	item, err := cartService.AddItem(client.ID, product.ID, 2)
	require.NoError(t, err)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Name:         "Other",
		Surname:      "User",
		Role:         model.RoleClient,
	}
	testDB.Create(other)

	_, err = cartService.UpdateItemQuantity(other.ID, item.ID, 7)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	// The original item is untouched
	cart, err := cartService.GetCart(client.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartService_RemoveItem(t *testing.T) {
	cartService, _, client, product := setupCartServiceTest(t)

	_, _, err := cartService.EnsureCart(client.ID)
	require.NoError(t, err)

	item, err := cartService.AddItem(client.ID, product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, cartService.RemoveItem(client.ID, item.ID))

	cart, err := cartService.GetCart(client.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Removing again reports not found
	err = cartService.RemoveItem(client.ID, item.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	cartService, testDB, client, product := setupCartServiceTest(t)

	artisan := &model.User{}
	testDB.First(artisan, "role = ?", model.RoleArtisan)

	second := &model.Product{
		Name:       "Clay Plate",
		Price:      25,
		CategoryID: product.CategoryID,
		ArtisanID:  artisan.ID,
	}
	testDB.Create(second)

	_, _, err := cartService.EnsureCart(client.ID)
	require.NoError(t, err)

	_, err = cartService.AddItem(client.ID, product.ID, 2)
	require.NoError(t, err)
	_, err = cartService.AddItem(client.ID, second.ID, 1)
	require.NoError(t, err)

	require.NoError(t, cartService.ClearCart(client.ID))

	cart, err := cartService.GetCart(client.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Clearing a user without a cart is a no-op
	assert.NoError(t, cartService.ClearCart(99999))
}
