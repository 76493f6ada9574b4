package db

import (
	"context"
	"log"

	"riviera/globals"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection         *mongo.Collection
	ReservationsCollection *mongo.Collection
	PackagesCollection     *mongo.Collection
	EventsCollection       *mongo.Collection
	SectionsCollection     *mongo.Collection
	MenuCollection         *mongo.Collection
	StockCollection        *mongo.Collection
	StaffCollection        *mongo.Collection
	BrandingCollection     *mongo.Collection
	CustomersCollection    *mongo.Collection
	MessagesCollection     *mongo.Collection
	Client                 *mongo.Client
)

// Initialize MongoDB connection
func init() {
	uri := globals.EnvOr("MONGO_URI", "mongodb://localhost:27017")

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("clubdb")
	UserCollection = database.Collection("users")
	ReservationsCollection = database.Collection("reservations")
	PackagesCollection = database.Collection("packages")
	EventsCollection = database.Collection("events")
	SectionsCollection = database.Collection("sections")
	MenuCollection = database.Collection("menu")
	StockCollection = database.Collection("stock")
	StaffCollection = database.Collection("staff")
	BrandingCollection = database.Collection("branding")
	CustomersCollection = database.Collection("customers")
	MessagesCollection = database.Collection("messages")
}
