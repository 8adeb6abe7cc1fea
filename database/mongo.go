package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopadmin/config"
)

var Client *mongo.Client
var DB *mongo.Database

func ConnectMongo() {
	uri := config.MustGetEnv("MONGO_URI")
	dbName := config.GetEnv("MONGO_DB", "shopadmin")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("mongodb ping failed")
	}

	Client = client
	DB = client.Database(dbName)

	log.Info().Str("db", dbName).Msg("connected to mongodb")
}

var ProductCollection *mongo.Collection
var OrderCollection *mongo.Collection

func InitCollections() {
	ProductCollection = DB.Collection("products")
	OrderCollection = DB.Collection("orders")
}
