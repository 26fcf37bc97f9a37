package rotation

import (
	"context"
	"log/slog"
	"sort"

	"github.com/vietdv277/amirotate/pkg/provider"
	"github.com/vietdv277/amirotate/pkg/types"
)

// displayLayout is how image creation times are logged
const displayLayout = "2006-01-02 15:04:05 MST"

// Resolver finds the newest image matching a set of tag constraints
type Resolver struct {
	catalog provider.ImageCatalog
	opts    options
}

// NewResolver creates a Resolver backed by an image catalog
func NewResolver(catalog provider.ImageCatalog, opts ...Option) *Resolver {
	return &Resolver{
		catalog: catalog,
		opts:    newOptions(opts),
	}
}

// ResolveLatest returns the most recently created image whose tags contain
// every constraint value. Each key maps to one substring; all keys must match.
// Images with equal creation dates keep catalog order, so the first one
// returned by the catalog wins.
func (r *Resolver) ResolveLatest(ctx context.Context, constraints map[string]string) (*types.Image, error) {
	if len(constraints) == 0 {
		return nil, provider.InvalidInput("ResolveLatest", "at least one tag constraint is required")
	}

	filters := TagFilters(constraints)

	images, err := r.catalog.DescribeImages(ctx, filters)
	if err != nil {
		return nil, err
	}

	if r.opts.debug {
		for _, img := range images {
			r.opts.logger.Debug("candidate image",
				slog.String("image_id", img.ID),
				slog.String("name", img.Name),
				slog.String("created", img.CreationDate),
			)
		}
	}

	latest := Latest(images)
	if latest == nil {
		r.opts.logger.Info("no images found with the specified tag filters",
			slog.Any("tags", constraints),
		)
		return nil, provider.NotFound("ResolveLatest", "", "no image matches tags %v", constraints)
	}

	r.logImage(latest)
	return latest, nil
}

// ResolveParameter returns the image whose ID is stored in a parameter
func (r *Resolver) ResolveParameter(ctx context.Context, params provider.ParameterStore, name string) (*types.Image, error) {
	imageID, err := params.GetParameter(ctx, name)
	if err != nil {
		return nil, err
	}

	img, err := r.catalog.DescribeImage(ctx, imageID)
	if err != nil {
		return nil, err
	}

	r.logImage(img)
	return img, nil
}

func (r *Resolver) logImage(img *types.Image) {
	created := img.CreationDate
	if t := img.CreatedAt(); !t.IsZero() {
		created = t.In(r.opts.location).Format(displayLayout)
	}

	r.opts.logger.Info("latest image",
		slog.String("image_id", img.ID),
		slog.String("name", img.Name),
		slog.String("created", created),
	)
}

// TagFilters converts a constraint mapping into filters sorted by key
func TagFilters(constraints map[string]string) []types.TagFilter {
	filters := make([]types.TagFilter, 0, len(constraints))
	for k, v := range constraints {
		filters = append(filters, types.TagFilter{Key: k, Value: v})
	}

	sort.Slice(filters, func(i, j int) bool {
		return filters[i].Key < filters[j].Key
	})

	return filters
}

// Latest returns the image with the greatest creation date, or nil for an
// empty slice. CreationDate is fixed-width ISO-8601, so string order is time
// order. Ties resolve to the earliest image in the slice.
func Latest(images []types.Image) *types.Image {
	var latest *types.Image
	for i := range images {
		if latest == nil || images[i].CreationDate > latest.CreationDate {
			latest = &images[i]
		}
	}

	if latest == nil {
		return nil
	}

	img := *latest
	return &img
}
