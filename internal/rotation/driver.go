package rotation

import (
	"context"
	"log/slog"

	"github.com/vietdv277/amirotate/pkg/provider"
	"github.com/vietdv277/amirotate/pkg/types"
)

// Driver runs locate, resolve and update for each configured group
type Driver struct {
	locator  *Locator
	resolver *Resolver
	updater  *Updater
	params   provider.ParameterStore
	opts     options
}

// NewDriver creates a Driver whose components share the given options
func NewDriver(cloud provider.CloudProvider, opts ...Option) *Driver {
	return &Driver{
		locator:  NewLocator(cloud, opts...),
		resolver: NewResolver(cloud, opts...),
		updater:  NewUpdater(cloud, opts...),
		params:   cloud,
		opts:     newOptions(opts),
	}
}

// Run processes every group in order. A failing group is logged and
// reported; it never stops the remaining groups.
func (d *Driver) Run(ctx context.Context, specs []types.GroupSpec) []types.GroupReport {
	reports := make([]types.GroupReport, 0, len(specs))
	for _, spec := range specs {
		reports = append(reports, d.ProcessGroup(ctx, spec))
	}
	return reports
}

// ProcessGroup rotates a single group's launch template
func (d *Driver) ProcessGroup(ctx context.Context, spec types.GroupSpec) types.GroupReport {
	report := types.GroupReport{
		Group:   spec.Name,
		Outcome: types.OutcomeFailed,
	}
	log := d.opts.logger.With(slog.String("group", spec.Name))

	templateID, err := d.locator.Locate(ctx, spec.Name)
	if err != nil {
		return d.fail(log, report, "error retrieving the launch template ID", err)
	}
	report.TemplateID = templateID

	var img *types.Image
	if spec.ImageParameter != "" {
		img, err = d.resolver.ResolveParameter(ctx, d.params, spec.ImageParameter)
	} else {
		img, err = d.resolver.ResolveLatest(ctx, spec.Tags)
	}
	if err != nil {
		return d.fail(log, report, "error retrieving the latest image", err)
	}
	report.Image = img

	log.Info("resolved rotation target",
		slog.String("template_id", templateID),
		slog.String("image_id", img.ID),
	)

	result, err := d.updater.UpdateIfNeeded(ctx, templateID, img.ID)
	report.OldVersion = result.PreviousVersion
	report.NewVersion = result.NewVersion
	if err != nil {
		return d.fail(log, report, "error creating launch template version", err)
	}
	report.Outcome = result.Outcome

	return report
}

func (d *Driver) fail(log *slog.Logger, report types.GroupReport, msg string, err error) types.GroupReport {
	report.Outcome = types.OutcomeFailed
	report.ErrorKind = provider.Kind(err)
	report.Error = err.Error()

	log.Error(msg,
		slog.String("kind", report.ErrorKind),
		slog.String("error", err.Error()),
	)
	return report
}
