package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopadmin/models"
)

type ProductStore interface {
	All(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type ProductController struct {
	Products ProductStore
}

func (pc *ProductController) GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	products, err := pc.Products.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("product list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to fetch products"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid Product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	product, err := pc.Products.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("productId", id.Hex()).Msg("product lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to fetch product"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Product Not Found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var body struct {
		Name        string  `json:"name" binding:"required,min=3"`
		Price       float64 `json:"price" binding:"required,gte=0.2,lte=1000000"`
		Description string  `json:"description" binding:"omitempty,max=1000"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": bindErrMsg(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	product := models.Product{
		Name:        body.Name,
		Price:       round2(body.Price),
		Description: body.Description,
	}
	if err := pc.Products.Insert(ctx, &product); err != nil {
		log.Error().Err(err).Msg("product insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid Product ID"})
		return
	}

	var body struct {
		Name        *string  `json:"name" binding:"omitempty,min=3"`
		Price       *float64 `json:"price" binding:"omitempty,gte=0.2,lte=1000000"`
		Description *string  `json:"description" binding:"omitempty,max=1000"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": bindErrMsg(err)})
		return
	}

	set := bson.M{}
	if body.Name != nil {
		set["name"] = *body.Name
	}
	if body.Price != nil {
		set["price"] = round2(*body.Price)
	}
	if body.Description != nil {
		set["description"] = *body.Description
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	updated, err := pc.Products.Update(ctx, id, set)
	if err != nil {
		log.Error().Err(err).Str("productId", id.Hex()).Msg("product update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to update product"})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Product Not Found"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid Product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	deleted, err := pc.Products.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("productId", id.Hex()).Msg("product delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to delete product"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Product Not Found"})
		return
	}

	c.Status(http.StatusNoContent)
}
