package controllers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopadmin/models"
)

func product(price float64) models.Product {
	return models.Product{ID: primitive.NewObjectID(), Name: "p", Price: price}
}

func TestPriceDeduplicatesProductIDs(t *testing.T) {
	a := product(10.00)
	b := product(5.50)
	pricer := &Pricer{Users: userSetOf(7), Products: catalogOf(a, b)}

	ids, total, err := pricer.Price(context.Background(), 7, []string{a.ID.Hex(), a.ID.Hex(), b.ID.Hex()})
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Equal(t, 15.50, total)

	// Same result as pricing the already-deduplicated set.
	ids2, total2, err := pricer.Price(context.Background(), 7, []string{a.ID.Hex(), b.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, ids, ids2)
	assert.Equal(t, total, total2)
}

func TestPriceIsIdempotent(t *testing.T) {
	a := product(0.30)
	b := product(0.60)
	pricer := &Pricer{Users: userSetOf(1), Products: catalogOf(a, b)}
	in := []string{a.ID.Hex(), b.ID.Hex()}

	_, first, err := pricer.Price(context.Background(), 1, in)
	require.NoError(t, err)
	_, second, err := pricer.Price(context.Background(), 1, in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 0.90, first)
}

func TestPriceRejectsUnknownUser(t *testing.T) {
	a := product(10)
	pricer := &Pricer{Users: userSetOf(7), Products: catalogOf(a)}

	_, _, err := pricer.Price(context.Background(), 8, []string{a.ID.Hex()})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPriceFailsClosedOnUserLookupError(t *testing.T) {
	a := product(10)
	users := &fakeUsers{findByID: func(context.Context, int64) (*models.User, error) {
		return nil, errors.New("connection reset")
	}}
	pricer := &Pricer{Users: users, Products: catalogOf(a)}

	_, _, err := pricer.Price(context.Background(), 7, []string{a.ID.Hex()})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPriceRejectsMissingProduct(t *testing.T) {
	a := product(10)
	missing := primitive.NewObjectID()
	pricer := &Pricer{Users: userSetOf(7), Products: catalogOf(a)}

	_, _, err := pricer.Price(context.Background(), 7, []string{a.ID.Hex(), missing.Hex()})
	assert.ErrorIs(t, err, ErrBadProductIDs)
}

func TestPriceRejectsMalformedProductID(t *testing.T) {
	pricer := &Pricer{Users: userSetOf(7), Products: catalogOf()}

	_, _, err := pricer.Price(context.Background(), 7, []string{"not-a-hex-id"})
	assert.ErrorIs(t, err, ErrBadProductIDs)
}

func TestPriceRejectsEmptyProductIDs(t *testing.T) {
	pricer := &Pricer{Users: userSetOf(7), Products: catalogOf()}

	_, total, err := pricer.Price(context.Background(), 7, nil)
	assert.ErrorIs(t, err, ErrBadProductIDs)
	assert.Zero(t, total)
}

func TestPriceUpdateRecomputationWinsOverClientTotal(t *testing.T) {
	a := product(10.00)
	pricer := &Pricer{Users: userSetOf(7), Products: catalogOf(a)}

	ids := []string{a.ID.Hex()}
	clientTotal := 999.99
	set, err := pricer.PriceUpdate(context.Background(), OrderPatch{
		ProductIDs:  &ids,
		TotalAmount: &clientTotal,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.00, set["totalAmount"])
	assert.Len(t, set["productIds"], 1)
}

func TestPriceUpdateAcceptsClientTotalWithoutProducts(t *testing.T) {
	pricer := &Pricer{Users: userSetOf(7), Products: catalogOf()}

	clientTotal := 99.99
	set, err := pricer.PriceUpdate(context.Background(), OrderPatch{TotalAmount: &clientTotal})
	require.NoError(t, err)
	assert.Equal(t, 99.99, set["totalAmount"])
	assert.NotContains(t, set, "productIds")
}

func TestPriceUpdateRoundsClientTotal(t *testing.T) {
	pricer := &Pricer{Users: userSetOf(7), Products: catalogOf()}

	clientTotal := 99.999
	set, err := pricer.PriceUpdate(context.Background(), OrderPatch{TotalAmount: &clientTotal})
	require.NoError(t, err)
	assert.Equal(t, 100.00, set["totalAmount"])
}

func TestPriceUpdateRevalidatesUser(t *testing.T) {
	pricer := &Pricer{Users: userSetOf(7), Products: catalogOf()}

	userID := int64(42)
	_, err := pricer.PriceUpdate(context.Background(), OrderPatch{UserID: &userID})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPriceUpdateRejectsEmptyPatch(t *testing.T) {
	pricer := &Pricer{Users: userSetOf(7), Products: catalogOf()}

	_, err := pricer.PriceUpdate(context.Background(), OrderPatch{})
	assert.ErrorIs(t, err, ErrEmptyPatch)
}

func TestEnrichOneMissingUserYieldsNull(t *testing.T) {
	a := product(10)
	pricer := &Pricer{Users: userSetOf(), Products: catalogOf(a)}

	order := models.Order{
		ID:          primitive.NewObjectID(),
		UserID:      7,
		ProductIDs:  []primitive.ObjectID{a.ID},
		TotalAmount: 10,
	}
	view, err := pricer.EnrichOne(context.Background(), order)
	require.NoError(t, err)
	assert.Nil(t, view.User)
	assert.Len(t, view.Products, 1)
	assert.Equal(t, order.TotalAmount, view.TotalAmount)
}

func TestEnrichAllBatchesUserLookup(t *testing.T) {
	a := product(10)
	b := product(5.5)

	lookups := 0
	users := userSetOf(7)
	batch := users.findByIDs
	users.findByIDs = func(ctx context.Context, ids []int64) ([]models.User, error) {
		lookups++
		return batch(ctx, ids)
	}
	pricer := &Pricer{Users: users, Products: catalogOf(a, b)}

	orders := []models.Order{
		{ID: primitive.NewObjectID(), UserID: 7, ProductIDs: []primitive.ObjectID{a.ID}},
		{ID: primitive.NewObjectID(), UserID: 7, ProductIDs: []primitive.ObjectID{b.ID}},
		{ID: primitive.NewObjectID(), UserID: 9, ProductIDs: []primitive.ObjectID{a.ID, b.ID}},
	}
	views, err := pricer.EnrichAll(context.Background(), orders)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, 1, lookups)
	require.NotNil(t, views[0].User)
	assert.Equal(t, int64(7), views[0].User.ID)
	assert.Nil(t, views[2].User) // user 9 vanished from the relational store
	assert.Len(t, views[2].Products, 2)
}
