package controllers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopadmin/models"
)

type fakeUsers struct {
	findByID       func(ctx context.Context, id int64) (*models.User, error)
	findByIDs      func(ctx context.Context, ids []int64) ([]models.User, error)
	findByUsername func(ctx context.Context, username string) (*models.User, error)
	create         func(ctx context.Context, username, passwordHash string) (*models.User, error)
}

func (f *fakeUsers) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if f.findByID != nil {
		return f.findByID(ctx, id)
	}
	return nil, nil
}

func (f *fakeUsers) FindByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	if f.findByIDs != nil {
		return f.findByIDs(ctx, ids)
	}
	return nil, nil
}

func (f *fakeUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.findByUsername != nil {
		return f.findByUsername(ctx, username)
	}
	return nil, nil
}

func (f *fakeUsers) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	if f.create != nil {
		return f.create(ctx, username, passwordHash)
	}
	return &models.User{ID: 1, Username: username, Password: passwordHash}, nil
}

// userSetOf serves FindByID/FindByIDs from a fixed id set.
func userSetOf(ids ...int64) *fakeUsers {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &fakeUsers{
		findByID: func(_ context.Context, id int64) (*models.User, error) {
			if _, ok := set[id]; ok {
				return &models.User{ID: id, Username: "user"}, nil
			}
			return nil, nil
		},
		findByIDs: func(_ context.Context, ids []int64) ([]models.User, error) {
			var out []models.User
			for _, id := range ids {
				if _, ok := set[id]; ok {
					out = append(out, models.User{ID: id, Username: "user"})
				}
			}
			return out, nil
		},
	}
}

type fakeProducts struct {
	findByIDs func(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
}

func (f *fakeProducts) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if f.findByIDs != nil {
		return f.findByIDs(ctx, ids)
	}
	return nil, nil
}

// catalogOf serves $in lookups from a fixed product list.
func catalogOf(products ...models.Product) *fakeProducts {
	return &fakeProducts{
		findByIDs: func(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
			var out []models.Product
			for _, id := range ids {
				for _, p := range products {
					if p.ID == id {
						out = append(out, p)
					}
				}
			}
			return out, nil
		},
	}
}

type fakeOrders struct {
	insert   func(ctx context.Context, o *models.Order) error
	all      func(ctx context.Context) ([]models.Order, error)
	findByID func(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	update   func(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Order, error)
	delete   func(ctx context.Context, id primitive.ObjectID) (bool, error)
}

func (f *fakeOrders) Insert(ctx context.Context, o *models.Order) error {
	if f.insert != nil {
		return f.insert(ctx, o)
	}
	o.ID = primitive.NewObjectID()
	return nil
}

func (f *fakeOrders) All(ctx context.Context) ([]models.Order, error) {
	if f.all != nil {
		return f.all(ctx)
	}
	return nil, nil
}

func (f *fakeOrders) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	if f.findByID != nil {
		return f.findByID(ctx, id)
	}
	return nil, nil
}

func (f *fakeOrders) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Order, error) {
	if f.update != nil {
		return f.update(ctx, id, set)
	}
	return nil, nil
}

func (f *fakeOrders) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if f.delete != nil {
		return f.delete(ctx, id)
	}
	return false, nil
}
