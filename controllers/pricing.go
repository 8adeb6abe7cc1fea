package controllers

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopadmin/models"
)

// UserDirectory is the relational-store view the order workflow needs:
// point lookup by primary key and batch lookup by id set.
type UserDirectory interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.User, error)
}

// ProductCatalog is the document-store view: one $in batch lookup.
type ProductCatalog interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
}

var (
	ErrUserNotFound  = errors.New("referenced user does not exist")
	ErrBadProductIDs = errors.New("one or more product ids are invalid, not found, or duplicates exist")
	ErrEmptyPatch    = errors.New("no valid fields provided for update")
)

// Pricer validates order requests against both stores and computes the
// derived total. The existence checks are check-then-act: a user or product
// may vanish between validation and the order write, and that is accepted.
type Pricer struct {
	Users    UserDirectory
	Products ProductCatalog
}

// OrderPatch is a partial update; nil means the field was absent from the
// request body.
type OrderPatch struct {
	UserID      *int64    `json:"userId" binding:"omitempty,gt=0"`
	ProductIDs  *[]string `json:"productIds" binding:"omitempty"`
	TotalAmount *float64  `json:"totalAmount" binding:"omitempty,gte=0"`
}

// userExists fails closed: a lookup error counts as absent.
func (p *Pricer) userExists(ctx context.Context, id int64) bool {
	u, err := p.Users.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("userId", id).Msg("user lookup failed")
		return false
	}
	return u != nil
}

// resolvePrices collapses duplicates, fetches the whole id set in one
// query, and compares counts: any invalid or missing id fails the batch.
func (p *Pricer) resolvePrices(ctx context.Context, productIDs []string) ([]primitive.ObjectID, []float64, error) {
	if len(productIDs) == 0 {
		return nil, nil, ErrBadProductIDs
	}

	seen := make(map[primitive.ObjectID]struct{}, len(productIDs))
	unique := make([]primitive.ObjectID, 0, len(productIDs))
	for _, raw := range productIDs {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, nil, ErrBadProductIDs
		}
		if _, dup := seen[oid]; dup {
			continue
		}
		seen[oid] = struct{}{}
		unique = append(unique, oid)
	}

	products, err := p.Products.FindByIDs(ctx, unique)
	if err != nil {
		return nil, nil, err
	}
	if len(products) != len(unique) {
		return nil, nil, ErrBadProductIDs
	}

	prices := make([]float64, len(products))
	for i, prod := range products {
		prices[i] = prod.Price
	}
	return unique, prices, nil
}

// Price is the create path: both references must exist right now.
func (p *Pricer) Price(ctx context.Context, userID int64, productIDs []string) ([]primitive.ObjectID, float64, error) {
	if !p.userExists(ctx, userID) {
		return nil, 0, ErrUserNotFound
	}
	ids, prices, err := p.resolvePrices(ctx, productIDs)
	if err != nil {
		return nil, 0, err
	}
	return ids, sumPrices(prices), nil
}

// PriceUpdate is the update path. A productIds change always recomputes
// totalAmount, overriding any client-supplied value in the same request.
// A totalAmount alone is accepted verbatim, rounded to 2dp; nothing
// re-checks it against the catalog.
func (p *Pricer) PriceUpdate(ctx context.Context, patch OrderPatch) (bson.M, error) {
	set := bson.M{}

	if patch.UserID != nil {
		if !p.userExists(ctx, *patch.UserID) {
			return nil, ErrUserNotFound
		}
		set["userId"] = *patch.UserID
	}

	if patch.ProductIDs != nil {
		ids, prices, err := p.resolvePrices(ctx, *patch.ProductIDs)
		if err != nil {
			return nil, err
		}
		set["productIds"] = ids
		set["totalAmount"] = sumPrices(prices)
	} else if patch.TotalAmount != nil {
		set["totalAmount"] = round2(*patch.TotalAmount)
	}

	if len(set) == 0 {
		return nil, ErrEmptyPatch
	}
	return set, nil
}

// EnrichOne joins a single order with its product documents and user
// record. A vanished user yields a null user, not an error.
func (p *Pricer) EnrichOne(ctx context.Context, o models.Order) (models.OrderView, error) {
	products, err := p.Products.FindByIDs(ctx, o.ProductIDs)
	if err != nil {
		return models.OrderView{}, err
	}

	view := newOrderView(o, products)

	user, err := p.Users.FindByID(ctx, o.UserID)
	if err != nil {
		log.Error().Err(err).Int64("userId", o.UserID).Msg("enrichment user lookup failed")
		user = nil
	}
	view.User = user
	return view, nil
}

// EnrichAll joins a page of orders. Product and user references are each
// fetched in one batch and mapped in memory, instead of one lookup per
// order.
func (p *Pricer) EnrichAll(ctx context.Context, orders []models.Order) ([]models.OrderView, error) {
	productIDs := make([]primitive.ObjectID, 0)
	seenProducts := make(map[primitive.ObjectID]struct{})
	userIDs := make([]int64, 0)
	seenUsers := make(map[int64]struct{})

	for _, o := range orders {
		for _, pid := range o.ProductIDs {
			if _, ok := seenProducts[pid]; !ok {
				seenProducts[pid] = struct{}{}
				productIDs = append(productIDs, pid)
			}
		}
		if _, ok := seenUsers[o.UserID]; !ok {
			seenUsers[o.UserID] = struct{}{}
			userIDs = append(userIDs, o.UserID)
		}
	}

	products, err := p.Products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[primitive.ObjectID]models.Product, len(products))
	for _, prod := range products {
		productMap[prod.ID] = prod
	}

	users, err := p.Users.FindByIDs(ctx, userIDs)
	if err != nil {
		log.Error().Err(err).Msg("enrichment batch user lookup failed")
		users = nil
	}
	userMap := make(map[int64]models.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, o := range orders {
		docs := make([]models.Product, 0, len(o.ProductIDs))
		for _, pid := range o.ProductIDs {
			if prod, ok := productMap[pid]; ok {
				docs = append(docs, prod)
			}
		}
		view := newOrderView(o, docs)
		if u, ok := userMap[o.UserID]; ok {
			user := u
			view.User = &user
		}
		views = append(views, view)
	}
	return views, nil
}

func newOrderView(o models.Order, products []models.Product) models.OrderView {
	if products == nil {
		products = []models.Product{}
	}
	return models.OrderView{
		ID:          o.ID,
		UserID:      o.UserID,
		Products:    products,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func sumPrices(prices []float64) float64 {
	total := decimal.Zero
	for _, price := range prices {
		total = total.Add(decimal.NewFromFloat(price))
	}
	f, _ := total.Round(2).Float64()
	return f
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
