// File: database/repository/catalogue/interface.go
package catalogueRepo

import (
	"context"

	"washbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	LocationsCollection = "locations"
	ServicesCollection  = "services"
	AddonsCollection    = "addons"
)

// CatalogueRepository reads the catalogue collections, each ordered by position.
type CatalogueRepository interface {
	FindLocations(ctx context.Context) ([]models.Location, error)
	FindServices(ctx context.Context) ([]models.WashService, error)
	FindAddons(ctx context.Context) ([]models.Addon, error)
}

type mongoCatalogueRepo struct {
	locations *mongo.Collection
	services  *mongo.Collection
	addons    *mongo.Collection
}

// NewMongoCatalogueRepo constructs a CatalogueRepository over db.
func NewMongoCatalogueRepo(db *mongo.Database) CatalogueRepository {
	return &mongoCatalogueRepo{
		locations: db.Collection(LocationsCollection),
		services:  db.Collection(ServicesCollection),
		addons:    db.Collection(AddonsCollection),
	}
}
