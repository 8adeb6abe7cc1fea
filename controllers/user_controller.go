package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"shopadmin/middleware"
	"shopadmin/models"
)

type UserLookup interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type UserController struct {
	Users UserLookup
}

// CurrentUser resolves the identity the auth middleware attached to the
// request.
func (uc *UserController) CurrentUser(c *gin.Context) {
	userID := middleware.UserID(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("userId", userID).Msg("current user lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to fetch user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Not Found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": gin.H{"id": user.ID, "username": user.Username}})
}
