package catalogue

import (
	"context"
	"fmt"

	catalogueRepo "washbook/database/repository/catalogue"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Source produces the catalogue at startup.
type Source interface {
	Load(ctx context.Context) (*Catalogue, error)
}

// DefaultSource serves the built-in catalogue.
type DefaultSource struct{}

func (DefaultSource) Load(context.Context) (*Catalogue, error) {
	return Default(), nil
}

// FileSource reads a YAML (or JSON/TOML, by extension) catalogue file with viper.
type FileSource struct {
	Path string
}

func (s FileSource) Load(context.Context) (*Catalogue, error) {
	v := viper.New()
	v.SetConfigFile(s.Path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read catalogue file %s: %w", s.Path, err)
	}
	var c Catalogue
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode catalogue file %s: %w", s.Path, err)
	}
	return &c, nil
}

// MongoSource reads the catalogue collections.
type MongoSource struct {
	Repo catalogueRepo.CatalogueRepository
}

func (s MongoSource) Load(ctx context.Context) (*Catalogue, error) {
	locs, err := s.Repo.FindLocations(ctx)
	if err != nil {
		return nil, err
	}
	svcs, err := s.Repo.FindServices(ctx)
	if err != nil {
		return nil, err
	}
	addons, err := s.Repo.FindAddons(ctx)
	if err != nil {
		return nil, err
	}
	return &Catalogue{Locations: locs, Services: svcs, Addons: addons}, nil
}

// Load reads the catalogue from src and refuses an unusable one.
func Load(ctx context.Context, src Source, logger *zap.Logger) (*Catalogue, error) {
	c, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalogue: %w", err)
	}
	logger.Info("Catalogue loaded",
		zap.Int("locations", len(c.Locations)),
		zap.Int("services", len(c.Services)),
		zap.Int("addons", len(c.Addons)))
	return c, nil
}
