package rotation

import (
	"context"
	"log/slog"

	"github.com/vietdv277/amirotate/pkg/provider"
	"github.com/vietdv277/amirotate/pkg/types"
)

// Locator resolves the launch template an Auto Scaling Group uses
type Locator struct {
	groups provider.GroupDirectory
	opts   options
}

// NewLocator creates a Locator backed by a group directory
func NewLocator(groups provider.GroupDirectory, opts ...Option) *Locator {
	return &Locator{
		groups: groups,
		opts:   newOptions(opts),
	}
}

// Locate returns the launch template ID of the named group.
//
// Group names are unique per region, so the provider should return at most
// one record. If it returns several, only the first is consulted.
func (l *Locator) Locate(ctx context.Context, groupName string) (string, error) {
	group, err := l.LocateGroup(ctx, groupName)
	if err != nil {
		return "", err
	}
	return group.LaunchTemplateID, nil
}

// LocateGroup is like Locate but returns the whole group record
func (l *Locator) LocateGroup(ctx context.Context, groupName string) (*types.AutoScalingGroup, error) {
	if groupName == "" {
		return nil, provider.InvalidInput("Locate", "group name is required")
	}

	groups, err := l.groups.DescribeGroups(ctx, groupName)
	if err != nil {
		return nil, err
	}

	if len(groups) == 0 {
		return nil, provider.NotFound("Locate", groupName, "auto scaling group %q not found", groupName)
	}

	if len(groups) > 1 {
		l.opts.logger.Debug("multiple group records returned, using the first",
			slog.String("group", groupName),
			slog.Int("records", len(groups)),
		)
	}

	group := groups[0]
	if group.LaunchTemplateID == "" {
		return nil, provider.NotFound("Locate", groupName, "auto scaling group %q has no launch template", groupName)
	}

	l.opts.logger.Debug("located launch template",
		slog.String("group", groupName),
		slog.String("template_id", group.LaunchTemplateID),
		slog.String("template_name", group.LaunchTemplateName),
	)

	return &group, nil
}
