package rotation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/amirotate/pkg/provider"
	"github.com/vietdv277/amirotate/pkg/types"
)

func TestLocate(t *testing.T) {
	cloud := newFakeCloud()
	cloud.addGroup("web-asg", "lt-web")

	templateID, err := NewLocator(cloud).Locate(context.Background(), "web-asg")
	require.NoError(t, err)
	assert.Equal(t, "lt-web", templateID)
}

func TestLocate_FirstRecordWins(t *testing.T) {
	cloud := newFakeCloud()
	cloud.addGroup("web-asg", "lt-first")
	cloud.addGroup("web-asg", "lt-second")

	templateID, err := NewLocator(cloud).Locate(context.Background(), "web-asg")
	require.NoError(t, err)
	assert.Equal(t, "lt-first", templateID)
}

func TestLocate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*fakeCloud)
		group   string
		wantErr error
	}{
		{
			name:    "missing group",
			setup:   func(*fakeCloud) {},
			group:   "nope",
			wantErr: provider.ErrNotFound,
		},
		{
			name: "group without launch template",
			setup: func(f *fakeCloud) {
				f.groups["legacy"] = []types.AutoScalingGroup{{Name: "legacy"}}
			},
			group:   "legacy",
			wantErr: provider.ErrNotFound,
		},
		{
			name:    "provider failure",
			setup:   func(f *fakeCloud) { f.failDescribeGroups = errInjected },
			group:   "web-asg",
			wantErr: provider.ErrProvider,
		},
		{
			name:    "empty name",
			setup:   func(*fakeCloud) {},
			group:   "",
			wantErr: provider.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cloud := newFakeCloud()
			tt.setup(cloud)

			templateID, err := NewLocator(cloud).Locate(context.Background(), tt.group)
			assert.Empty(t, templateID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
