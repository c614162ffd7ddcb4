package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Ctx = context.Background()
var Client *mongo.Client

var Events *mongo.Collection
var Operators *mongo.Collection

// InitDB connects the shared Mongo client and loads the collections backing
// the audit event store and operator accounts.
func InitDB(uri string) error {
	var err error

	Client, err = mongo.Connect(
		Ctx,
		options.Client().ApplyURI(uri),
	)
	if err != nil {
		return err
	}

	if err = Client.Ping(Ctx, nil); err != nil {
		return err
	}

	// loading collections
	Events = GetCollection("githook", "events", Client)
	Operators = GetCollection("githook", "operators", Client)

	return nil
}

func GetCollection(database string, collectionName string, client *mongo.Client) *mongo.Collection {
	return client.Database(database).Collection(collectionName)
}
