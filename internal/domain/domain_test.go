package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertUserValidate(t *testing.T) {
	valid := InsertUser{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "hashed",
		Name:     "Ada Lovelace",
	}

	t.Run("valid payload", func(t *testing.T) {
		in := valid
		require.NoError(t, in.Validate())
		assert.Equal(t, RoleUser, in.RoleOrDefault())
	})

	t.Run("explicit admin role", func(t *testing.T) {
		in := valid
		in.Role = RoleAdmin
		require.NoError(t, in.Validate())
		assert.Equal(t, RoleAdmin, in.RoleOrDefault())
	})

	cases := []struct {
		name    string
		mutate  func(*InsertUser)
		wantErr error
	}{
		{"empty username", func(in *InsertUser) { in.Username = "" }, ErrEmptyUsername},
		{"empty email", func(in *InsertUser) { in.Email = "" }, ErrEmptyEmail},
		{"email without at", func(in *InsertUser) { in.Email = "ada.example.com" }, ErrInvalidEmail},
		{"email without domain dot", func(in *InsertUser) { in.Email = "ada@example" }, ErrInvalidEmail},
		{"email trailing at", func(in *InsertUser) { in.Email = "ada@" }, ErrInvalidEmail},
		{"empty password", func(in *InsertUser) { in.Password = "" }, ErrEmptyPassword},
		{"bogus role", func(in *InsertUser) { in.Role = "root" }, ErrInvalidRole},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			assert.ErrorIs(t, in.Validate(), tc.wantErr)
		})
	}
}

func TestInsertProductValidate(t *testing.T) {
	valid := InsertProduct{Name: "Walnut Desk Organizer", Price: 39.99, Rating: 4.5, CategoryID: 1}

	require.NoError(t, valid.Validate())

	neg := valid
	neg.Price = -0.01
	assert.ErrorIs(t, neg.Validate(), ErrNegativePrice)

	noCat := valid
	noCat.CategoryID = 0
	assert.ErrorIs(t, noCat.Validate(), ErrMissingCategory)

	badRating := valid
	badRating.Rating = 5.5
	assert.ErrorIs(t, badRating.Validate(), ErrInvalidRating)

	unnamed := valid
	unnamed.Name = ""
	assert.ErrorIs(t, unnamed.Validate(), ErrEmptyName)
}

func TestInsertCartItemValidate(t *testing.T) {
	require.NoError(t, (&InsertCartItem{UserID: 1, ProductID: 2, Quantity: 1}).Validate())
	assert.ErrorIs(t, (&InsertCartItem{UserID: 1, ProductID: 2, Quantity: 0}).Validate(), ErrInvalidQuantity)
	assert.ErrorIs(t, (&InsertCartItem{UserID: 1, ProductID: 2, Quantity: -3}).Validate(), ErrInvalidQuantity)
	assert.ErrorIs(t, (&InsertCartItem{UserID: 1, Quantity: 1}).Validate(), ErrMissingProduct)
}

func TestInsertOrderValidate(t *testing.T) {
	items := json.RawMessage(`[{"productId":1,"quantity":2,"price":39.99}]`)
	valid := InsertOrder{UserID: 1, Items: items, TotalAmount: 79.98, ShippingAddress: "1 Main St"}

	require.NoError(t, valid.Validate())
	assert.Equal(t, OrderStatusPending, valid.StatusOrDefault())

	empty := valid
	empty.Items = nil
	assert.ErrorIs(t, empty.Validate(), ErrEmptyOrderItems)

	invalid := valid
	invalid.Items = json.RawMessage(`{"broken"`)
	assert.Error(t, invalid.Validate())

	neg := valid
	neg.TotalAmount = -1
	assert.ErrorIs(t, neg.Validate(), ErrNegativeTotal)

	noAddr := valid
	noAddr.ShippingAddress = ""
	assert.ErrorIs(t, noAddr.Validate(), ErrEmptyShipAddress)
}

func TestProductJSONShape(t *testing.T) {
	orig := 59.99
	p := Product{ID: 1, Name: "Desk Mat", Price: 44.99, OriginalPrice: &orig, CategoryID: 2, IsFeatured: true}

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Contains(t, m, "originalPrice")
	assert.Contains(t, m, "isFeatured")
	assert.Contains(t, m, "categoryId")

	p.OriginalPrice = nil
	b, err = json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "originalPrice")
}
