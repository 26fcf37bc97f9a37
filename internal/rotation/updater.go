package rotation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vietdv277/amirotate/pkg/provider"
	"github.com/vietdv277/amirotate/pkg/types"
)

// Updater points a launch template's default version at a new image
type Updater struct {
	templates provider.TemplateStore
	opts      options
}

// NewUpdater creates an Updater backed by a template store
func NewUpdater(templates provider.TemplateStore, opts ...Option) *Updater {
	return &Updater{
		templates: templates,
		opts:      newOptions(opts),
	}
}

// UpdateIfNeeded creates a new template version using imageID and makes it
// the default, unless the current default already uses imageID.
//
// The new version clones the current default's settings with only the image
// replaced. Creation and promotion are separate calls: if promotion fails the
// returned error matches provider.ErrPartialUpdate and the result carries the
// number of the version that was created but is not the default.
func (u *Updater) UpdateIfNeeded(ctx context.Context, templateID, imageID string) (types.UpdateResult, error) {
	result := types.UpdateResult{
		Outcome:    types.OutcomeFailed,
		TemplateID: templateID,
		ImageID:    imageID,
	}

	if templateID == "" || imageID == "" {
		return result, provider.InvalidInput("UpdateIfNeeded", "template ID and image ID are required")
	}

	current, err := u.currentDefault(ctx, templateID)
	if err != nil {
		return result, err
	}
	result.PreviousVersion = current.Number
	result.PreviousImageID = current.Settings.ImageID()

	log := u.opts.logger.With(
		slog.String("template_id", templateID),
		slog.Int64("default_version", current.Number),
	)

	if result.PreviousImageID == imageID {
		log.Info("default launch template version already uses this image, no new version created",
			slog.String("image_id", imageID),
		)
		result.Outcome = types.OutcomeNoChange
		return result, nil
	}

	if u.opts.dryRun {
		log.Info("dry run, would create a new launch template version",
			slog.String("current_image_id", result.PreviousImageID),
			slog.String("image_id", imageID),
		)
		result.Outcome = types.OutcomePlanned
		return result, nil
	}

	log.Info("creating a new launch template version",
		slog.String("current_image_id", result.PreviousImageID),
		slog.String("image_id", imageID),
	)

	newVersion, err := u.templates.CreateVersion(ctx, &provider.CreateVersionInput{
		TemplateID:    templateID,
		Settings:      current.Settings.WithImageID(imageID),
		SourceVersion: current.Number,
		Description:   u.opts.description,
	})
	if err != nil {
		return result, err
	}
	result.NewVersion = newVersion

	log.Info("setting the new version as the default", slog.Int64("version", newVersion))

	if err := u.templates.SetDefaultVersion(ctx, templateID, newVersion); err != nil {
		return result, &provider.Error{
			Kind:     provider.ErrPartialUpdate,
			Op:       "SetDefaultVersion",
			Resource: templateID,
			Message:  fmt.Sprintf("version %d was created but is not the default: %v", newVersion, err),
			Err:      err,
		}
	}

	log.Info("new launch template version created", slog.Int64("version", newVersion))
	result.Outcome = types.OutcomeUpdated
	return result, nil
}

// Promote makes an existing version the template default. It is the manual
// recovery step after a partial update.
func (u *Updater) Promote(ctx context.Context, templateID string, version int64) error {
	if templateID == "" || version <= 0 {
		return provider.InvalidInput("Promote", "template ID and a positive version are required")
	}

	versions, err := u.templates.DescribeVersions(ctx, templateID)
	if err != nil {
		return err
	}

	found := false
	for _, v := range versions {
		if v.Number == version {
			found = true
			break
		}
	}
	if !found {
		return provider.NotFound("Promote", templateID, "version %d does not exist", version)
	}

	if err := u.templates.SetDefaultVersion(ctx, templateID, version); err != nil {
		return err
	}

	u.opts.logger.Info("promoted launch template version",
		slog.String("template_id", templateID),
		slog.Int64("version", version),
	)
	return nil
}

// currentDefault returns the version flagged as the template default
func (u *Updater) currentDefault(ctx context.Context, templateID string) (*types.LaunchTemplateVersion, error) {
	versions, err := u.templates.DescribeVersions(ctx, templateID)
	if err != nil {
		return nil, err
	}

	for i := range versions {
		if versions[i].Default {
			return &versions[i], nil
		}
	}

	return nil, provider.NotFound("DescribeVersions", templateID, "launch template %q has no default version", templateID)
}
