package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"shopadmin/models"
)

// UserAccounts is the slice of the relational store the auth flow needs.
type UserAccounts interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
}

type AuthController struct {
	Users     UserAccounts
	JWTSecret []byte
}

func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required,alphanum,min=3"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": bindErrMsg(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	existing, err := ac.Users.FindByUsername(ctx, input.Username)
	if err != nil {
		log.Error().Err(err).Msg("username lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to register"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"msg": "Username already exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), 10)
	if err != nil {
		log.Error().Err(err).Msg("password hash failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to register"})
		return
	}

	user, err := ac.Users.Create(ctx, input.Username, string(hashed))
	if err != nil {
		log.Error().Err(err).Msg("user insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to register"})
		return
	}

	token, err := ac.generateToken(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("token signing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg":   "User registered successfully",
		"user":  gin.H{"id": user.ID, "username": user.Username},
		"token": token,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": bindErrMsg(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := ac.Users.FindByUsername(ctx, input.Username)
	if err != nil {
		log.Error().Err(err).Msg("username lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to log in"})
		return
	}
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Invalid credentials"})
		return
	}

	token, err := ac.generateToken(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("token signing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":   "Logged in successfully",
		"user":  gin.H{"id": user.ID, "username": user.Username},
		"token": token,
	})
}

func (ac *AuthController) generateToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ac.JWTSecret)
}
