package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopadmin/models"
)

// OrderStore is the document-store side of the order workflow.
type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	All(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type OrderController struct {
	Orders OrderStore
	Pricer *Pricer
}

func NewOrderController(orders OrderStore, pricer *Pricer) *OrderController {
	return &OrderController{Orders: orders, Pricer: pricer}
}

// CreateOrder validates the referenced user and products against their
// stores, computes the total, and persists the deduplicated order.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var body struct {
		UserID     int64    `json:"userId" binding:"required,gt=0"`
		ProductIDs []string `json:"productIds" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": bindErrMsg(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	ids, total, err := oc.Pricer.Price(ctx, body.UserID, body.ProductIDs)
	if err != nil {
		oc.respondPricingError(c, err, body.UserID)
		return
	}

	order := models.Order{
		UserID:      body.UserID,
		ProductIDs:  ids,
		TotalAmount: total,
	}
	if err := oc.Orders.Insert(ctx, &order); err != nil {
		log.Error().Err(err).Msg("order insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (oc *OrderController) GetOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	orders, err := oc.Orders.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("order list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to fetch orders"})
		return
	}

	views, err := oc.Pricer.EnrichAll(ctx, orders)
	if err != nil {
		log.Error().Err(err).Msg("order enrichment failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, views)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid Order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	order, err := oc.Orders.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("orderId", id.Hex()).Msg("order lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to fetch order"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Order not found"})
		return
	}

	view, err := oc.Pricer.EnrichOne(ctx, *order)
	if err != nil {
		log.Error().Err(err).Str("orderId", id.Hex()).Msg("order enrichment failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": view})
}

// UpdateOrder applies a partial patch. Validation runs fully before the
// write; the target may still vanish in between, which surfaces as 404.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid Order ID"})
		return
	}

	var patch OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": bindErrMsg(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	set, err := oc.Pricer.PriceUpdate(ctx, patch)
	if err != nil {
		userID := int64(0)
		if patch.UserID != nil {
			userID = *patch.UserID
		}
		oc.respondPricingError(c, err, userID)
		return
	}

	updated, err := oc.Orders.Update(ctx, id, set)
	if err != nil {
		log.Error().Err(err).Str("orderId", id.Hex()).Msg("order update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to update order"})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid Order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	deleted, err := oc.Orders.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("orderId", id.Hex()).Msg("order delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to delete order"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Order not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Reference failures are bad requests: the referencing order does not exist
// yet, so 404 would be wrong.
func (oc *OrderController) respondPricingError(c *gin.Context, err error, userID int64) {
	switch err {
	case ErrUserNotFound:
		c.JSON(http.StatusBadRequest, gin.H{"msg": fmt.Sprintf("User with ID %d does not exist.", userID)})
	case ErrBadProductIDs:
		c.JSON(http.StatusBadRequest, gin.H{"msg": "One or more product IDs are invalid, not found, or duplicates exist."})
	case ErrEmptyPatch:
		c.JSON(http.StatusBadRequest, gin.H{"msg": "No valid fields provided for update."})
	default:
		log.Error().Err(err).Msg("order pricing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Internal server error"})
	}
}
