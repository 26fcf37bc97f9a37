package rotation

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/amirotate/pkg/provider"
	"github.com/vietdv277/amirotate/pkg/types"
)

func image(id, created string, tags map[string]string) types.Image {
	return types.Image{ID: id, Name: tags["Name"], CreationDate: created, Tags: tags}
}

func TestResolveLatest_PicksNewestMatch(t *testing.T) {
	cloud := newFakeCloud()
	cloud.images = []types.Image{
		image("ami-old", "2024-01-01T00:00:00.000Z", map[string]string{"Name": "web", "env": "prod"}),
		image("ami-new", "2024-01-02T00:00:00.000Z", map[string]string{"Name": "web", "env": "prod"}),
		image("ami-newest-other", "2024-02-01T00:00:00.000Z", map[string]string{"Name": "api", "env": "prod"}),
	}

	img, err := NewResolver(cloud).ResolveLatest(context.Background(), map[string]string{"env": "prod", "Name": "web"})
	require.NoError(t, err)
	assert.Equal(t, "ami-new", img.ID)
	assert.Equal(t, "web", img.Name)
}

func TestResolveLatest_SubstringMatching(t *testing.T) {
	cloud := newFakeCloud()
	cloud.images = []types.Image{
		image("ami-prod-v2", "2024-01-01T00:00:00.000Z", map[string]string{"env": "prod-v2"}),
		image("ami-preprod", "2024-01-02T00:00:00.000Z", map[string]string{"env": "preprod"}),
		image("ami-upper", "2024-01-03T00:00:00.000Z", map[string]string{"env": "Prod"}),
		image("ami-stage", "2024-01-04T00:00:00.000Z", map[string]string{"env": "staging"}),
		image("ami-untagged", "2024-01-05T00:00:00.000Z", map[string]string{"Name": "prod"}),
	}

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "suffix and infix both match, newest wins", value: "prod", want: "ami-preprod"},
		{name: "exact prefix", value: "prod-", want: "ami-prod-v2"},
		{name: "case sensitive", value: "Prod", want: "ami-upper"},
		{name: "infix", value: "tag", want: "ami-stage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewResolver(cloud).ResolveLatest(context.Background(), map[string]string{"env": tt.value})
			require.NoError(t, err)
			assert.Equal(t, tt.want, img.ID)
		})
	}
}

func TestResolveLatest_NotFound(t *testing.T) {
	cloud := newFakeCloud()
	cloud.images = []types.Image{
		image("ami-1", "2024-01-01T00:00:00.000Z", map[string]string{"env": "prod"}),
	}

	tests := []struct {
		name        string
		constraints map[string]string
	}{
		{name: "value mismatch", constraints: map[string]string{"env": "dev"}},
		{name: "case mismatch", constraints: map[string]string{"env": "PROD"}},
		{name: "missing key", constraints: map[string]string{"env": "prod", "team": "core"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewResolver(cloud).ResolveLatest(context.Background(), tt.constraints)
			assert.Nil(t, img)
			assert.ErrorIs(t, err, provider.ErrNotFound)
			assert.NotErrorIs(t, err, provider.ErrProvider)
		})
	}
}

func TestResolveLatest_EmptyConstraints(t *testing.T) {
	_, err := NewResolver(newFakeCloud()).ResolveLatest(context.Background(), nil)
	assert.ErrorIs(t, err, provider.ErrInvalidInput)
}

func TestResolveLatest_ProviderError(t *testing.T) {
	cloud := newFakeCloud()
	cloud.failDescribeImages = errInjected

	_, err := NewResolver(cloud).ResolveLatest(context.Background(), map[string]string{"env": "prod"})
	require.ErrorIs(t, err, provider.ErrProvider)
	assert.Contains(t, err.Error(), "Rate exceeded")
}

// Equal creation dates are not ordered by ID; the catalog's order decides.
func TestResolveLatest_TieKeepsCatalogOrder(t *testing.T) {
	tags := map[string]string{"env": "prod"}
	created := "2024-01-01T00:00:00.000Z"

	cloud := newFakeCloud()
	cloud.images = []types.Image{image("ami-b", created, tags), image("ami-a", created, tags)}
	img, err := NewResolver(cloud).ResolveLatest(context.Background(), tags)
	require.NoError(t, err)
	assert.Equal(t, "ami-b", img.ID)

	cloud.images = []types.Image{image("ami-a", created, tags), image("ami-b", created, tags)}
	img, err = NewResolver(cloud).ResolveLatest(context.Background(), tags)
	require.NoError(t, err)
	assert.Equal(t, "ami-a", img.ID)
}

func TestResolveLatest_LogsImageInDisplayTimezone(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ist := time.FixedZone("IST", 5*3600+1800)

	cloud := newFakeCloud()
	cloud.images = []types.Image{
		image("ami-1", "2024-01-01T00:00:00.000Z", map[string]string{"env": "prod"}),
	}

	img, err := NewResolver(cloud, WithLogger(logger), WithLocation(ist)).
		ResolveLatest(context.Background(), map[string]string{"env": "prod"})
	require.NoError(t, err)
	assert.Empty(t, img.Name)

	out := buf.String()
	assert.Contains(t, out, "image_id=ami-1")
	assert.Contains(t, out, `name=""`)
	assert.Contains(t, out, `created="2024-01-01 05:30:00 IST"`)
}

func TestResolveParameter(t *testing.T) {
	cloud := newFakeCloud()
	cloud.images = []types.Image{
		image("ami-al2023", "2024-03-01T00:00:00.000Z", map[string]string{"Name": "al2023"}),
	}
	cloud.parameters["/aws/service/al2023"] = "ami-al2023"

	img, err := NewResolver(cloud).ResolveParameter(context.Background(), cloud, "/aws/service/al2023")
	require.NoError(t, err)
	assert.Equal(t, "ami-al2023", img.ID)

	_, err = NewResolver(cloud).ResolveParameter(context.Background(), cloud, "/missing")
	assert.ErrorIs(t, err, provider.ErrNotFound)
}

func TestLatest(t *testing.T) {
	assert.Nil(t, Latest(nil))

	images := []types.Image{
		{ID: "a", CreationDate: "2023-12-31T23:59:59.000Z"},
		{ID: "b", CreationDate: "2024-01-10T00:00:00.000Z"},
		{ID: "c", CreationDate: "2024-01-09T23:59:59.999Z"},
	}
	latest := Latest(images)
	require.NotNil(t, latest)
	assert.Equal(t, "b", latest.ID)

	for _, img := range images {
		assert.GreaterOrEqual(t, latest.CreationDate, img.CreationDate)
	}
}

func TestTagFilters_SortedByKey(t *testing.T) {
	filters := TagFilters(map[string]string{"env": "prod", "Name": "web", "app": "api"})
	assert.Equal(t, []types.TagFilter{
		{Key: "Name", Value: "web"},
		{Key: "app", Value: "api"},
		{Key: "env", Value: "prod"},
	}, filters)
}
