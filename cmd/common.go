package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/vietdv277/amirotate/internal/aws"
	"github.com/vietdv277/amirotate/internal/config"
	"github.com/vietdv277/amirotate/internal/rotation"
	"github.com/vietdv277/amirotate/pkg/logger"
)

// loadConfig reads the config file and overlays flags and environment.
// Commands that rotate groups need the file; others only need a region.
func loadConfig(requireGroups bool) (*config.Config, error) {
	path := viper.GetString("config")

	var cfg *config.Config
	var err error
	if requireGroups {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOptional(path)
	}
	if err != nil {
		return nil, err
	}

	cfg.Merge(viper.GetViper())

	if requireGroups {
		err = cfg.Validate()
	} else {
		err = cfg.ValidateBase()
	}
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

func newClient(ctx context.Context, cfg *config.Config) (*aws.Client, error) {
	client, err := aws.NewClient(
		ctx,
		aws.WithProfile(cfg.AWSProfile),
		aws.WithRegion(cfg.AWSRegion),
		aws.WithImageOwners(cfg.ImageOwners),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS client: %w", err)
	}
	return client, nil
}

// rotationOptions builds the component options shared by every command
func rotationOptions(cfg *config.Config, log *slog.Logger, dryRun bool) ([]rotation.Option, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return []rotation.Option{
		rotation.WithLogger(log),
		rotation.WithDebug(cfg.Debug),
		rotation.WithDryRun(dryRun),
		rotation.WithLocation(loc),
		rotation.WithDescription(cfg.VersionDescription),
	}, nil
}
