package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"shopadmin/config"
	"shopadmin/controllers"
	"shopadmin/database"
	"shopadmin/middleware"
	"shopadmin/repository"
	"shopadmin/routes"
)

func main() {
	config.LoadEnv()

	env := config.GetEnv("APP_ENV", "development")
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	database.ConnectMySQL()
	database.ConnectMongo()
	database.InitCollections()
	database.ConnectRedis()

	users := repository.NewUsers(database.MySQL)
	products := repository.NewProducts(database.ProductCollection)
	orders := repository.NewOrders(database.OrderCollection)

	secret := []byte(config.MustGetEnv("JWT_SECRET"))
	pricer := &controllers.Pricer{Users: users, Products: products}

	ctl := routes.Controllers{
		Auth:     &controllers.AuthController{Users: users, JWTSecret: secret},
		Users:    &controllers.UserController{Users: users},
		Products: &controllers.ProductController{Products: products},
		Orders:   controllers.NewOrderController(orders, pricer),
		Exchange: &controllers.ExchangeController{
			HTTP:    &http.Client{Timeout: 10 * time.Second},
			BaseURL: config.GetEnv("EXCHANGE_RATE_API_URL", "https://v6.exchangerate-api.com/v6"),
			APIKey:  config.GetEnv("EXCHANGE_RATE_API_KEY", ""),
			Cache:   database.Redis,
		},
		JWTSecret: secret,
	}

	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(middleware.RequestLogger(), gin.Recovery())
	routes.RegisterRoutes(r, ctl)

	port := config.GetEnv("PORT", "8080")
	log.Info().Str("port", port).Msg("server listening")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
