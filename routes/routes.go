package routes

import (
	"github.com/gin-gonic/gin"

	"shopadmin/controllers"
	"shopadmin/middleware"
)

type Controllers struct {
	Auth      *controllers.AuthController
	Users     *controllers.UserController
	Products  *controllers.ProductController
	Orders    *controllers.OrderController
	Exchange  *controllers.ExchangeController
	JWTSecret []byte
}

func RegisterRoutes(r *gin.Engine, ctl Controllers) {
	api := r.Group("/api")
	{
		api.POST("/register", ctl.Auth.Register)
		api.POST("/login", ctl.Auth.Login)

		protected := api.Group("/")
		protected.Use(middleware.Auth(ctl.JWTSecret))
		{
			protected.GET("/u", ctl.Users.CurrentUser)

			products := protected.Group("/products")
			{
				products.GET("", ctl.Products.GetProducts)
				products.GET("/:id", ctl.Products.GetProductByID)
				products.POST("", ctl.Products.CreateProduct)
				products.PUT("/:id", ctl.Products.UpdateProduct)
				products.DELETE("/:id", ctl.Products.DeleteProduct)
			}

			orders := protected.Group("/orders")
			{
				orders.GET("", ctl.Orders.GetOrders)
				orders.GET("/:id", ctl.Orders.GetOrderByID)
				orders.POST("", ctl.Orders.CreateOrder)
				orders.PUT("/:id", ctl.Orders.UpdateOrder)
				orders.DELETE("/:id", ctl.Orders.DeleteOrder)
			}

			protected.GET("/exc", ctl.Exchange.GetRates)
		}
	}
}
