// File: database/repository/catalogue/queries.go
package catalogueRepo

import (
	"context"
	"fmt"
	"time"

	"washbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 5 * time.Second

// byPosition keeps catalogue order stable; the first location is the resolver default.
func byPosition() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "id", Value: 1}})
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, out *[]T) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := coll.Find(ctx, bson.M{}, byPosition())
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("error decoding %s: %w", coll.Name(), err)
	}
	return nil
}

func (repo *mongoCatalogueRepo) FindLocations(ctx context.Context) ([]models.Location, error) {
	var locs []models.Location
	if err := findAll(ctx, repo.locations, &locs); err != nil {
		return nil, err
	}
	return locs, nil
}

func (repo *mongoCatalogueRepo) FindServices(ctx context.Context) ([]models.WashService, error) {
	var svcs []models.WashService
	if err := findAll(ctx, repo.services, &svcs); err != nil {
		return nil, err
	}
	return svcs, nil
}

func (repo *mongoCatalogueRepo) FindAddons(ctx context.Context) ([]models.Addon, error) {
	var addons []models.Addon
	if err := findAll(ctx, repo.addons, &addons); err != nil {
		return nil, err
	}
	return addons, nil
}
