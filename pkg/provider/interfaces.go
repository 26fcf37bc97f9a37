package provider

import (
	"context"

	"github.com/vietdv277/amirotate/pkg/types"
)

// ImageCatalog defines read access to the machine image catalog
type ImageCatalog interface {
	// DescribeImages returns every image matching all filters
	DescribeImages(ctx context.Context, filters []types.TagFilter) ([]types.Image, error)

	// DescribeImage returns a single image by ID
	DescribeImage(ctx context.Context, imageID string) (*types.Image, error)
}

// GroupDirectory defines read access to Auto Scaling Groups
type GroupDirectory interface {
	// DescribeGroups returns the group records for a name, in provider order
	DescribeGroups(ctx context.Context, name string) ([]types.AutoScalingGroup, error)
}

// TemplateStore defines access to launch template versions
type TemplateStore interface {
	// DescribeVersions returns the versions of a launch template
	DescribeVersions(ctx context.Context, templateID string) ([]types.LaunchTemplateVersion, error)

	// CreateVersion appends a version and returns its number
	CreateVersion(ctx context.Context, input *CreateVersionInput) (int64, error)

	// SetDefaultVersion repoints the template's default version
	SetDefaultVersion(ctx context.Context, templateID string, version int64) error
}

// CreateVersionInput contains parameters for creating a launch template version
type CreateVersionInput struct {
	TemplateID    string
	Settings      types.LaunchSettings
	SourceVersion int64
	Description   string
}

// ParameterStore defines read access to named parameters
type ParameterStore interface {
	// GetParameter returns the value of a parameter
	GetParameter(ctx context.Context, name string) (string, error)
}

// IdentityProvider reports who the provider calls are made as
type IdentityProvider interface {
	GetCallerIdentity(ctx context.Context) (*types.CallerIdentity, error)
}

// CloudProvider is the full set of operations the rotation driver needs
type CloudProvider interface {
	ImageCatalog
	GroupDirectory
	TemplateStore
	ParameterStore
}
