package rotation

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/vietdv277/amirotate/pkg/provider"
	"github.com/vietdv277/amirotate/pkg/types"
)

var errInjected = &provider.Error{
	Kind:    provider.ErrProvider,
	Op:      "fake",
	Code:    "Throttling",
	Message: "Rate exceeded",
}

// fakeCloud is an in-memory provider with EC2-like tag filtering and
// launch template version semantics
type fakeCloud struct {
	images     []types.Image
	groups     map[string][]types.AutoScalingGroup
	templates  map[string][]types.LaunchTemplateVersion
	parameters map[string]string

	failDescribeImages   error
	failDescribeGroups   error
	failDescribeVersions error
	failCreate           error
	failSetDefault       error

	createCalls     int
	setDefaultCalls int
}

func newFakeCloud() *fakeCloud {
	return &fakeCloud{
		groups:     map[string][]types.AutoScalingGroup{},
		templates:  map[string][]types.LaunchTemplateVersion{},
		parameters: map[string]string{},
	}
}

func (f *fakeCloud) addTemplate(templateID string, settings types.LaunchSettings) {
	f.templates[templateID] = []types.LaunchTemplateVersion{{
		TemplateID: templateID,
		Number:     1,
		Default:    true,
		Settings:   settings,
	}}
}

func (f *fakeCloud) addGroup(name, templateID string) {
	f.groups[name] = append(f.groups[name], types.AutoScalingGroup{
		Name:             name,
		LaunchTemplateID: templateID,
	})
}

func (f *fakeCloud) defaultVersion(templateID string) *types.LaunchTemplateVersion {
	for i, v := range f.templates[templateID] {
		if v.Default {
			return &f.templates[templateID][i]
		}
	}
	return nil
}

func (f *fakeCloud) version(templateID string, number int64) *types.LaunchTemplateVersion {
	for i, v := range f.templates[templateID] {
		if v.Number == number {
			return &f.templates[templateID][i]
		}
	}
	return nil
}

func (f *fakeCloud) DescribeImages(_ context.Context, filters []types.TagFilter) ([]types.Image, error) {
	if f.failDescribeImages != nil {
		return nil, f.failDescribeImages
	}

	var out []types.Image
	for _, img := range f.images {
		if matchesAll(img, filters) {
			out = append(out, img)
		}
	}
	return out, nil
}

func (f *fakeCloud) DescribeImage(_ context.Context, imageID string) (*types.Image, error) {
	for _, img := range f.images {
		if img.ID == imageID {
			return &img, nil
		}
	}
	return nil, provider.NotFound("DescribeImages", imageID, "image %q not found", imageID)
}

func matchesAll(img types.Image, filters []types.TagFilter) bool {
	for _, f := range filters {
		v, ok := img.Tags[f.Key]
		if !ok || !strings.Contains(v, f.Value) {
			return false
		}
	}
	return true
}

func (f *fakeCloud) DescribeGroups(_ context.Context, name string) ([]types.AutoScalingGroup, error) {
	if f.failDescribeGroups != nil {
		return nil, f.failDescribeGroups
	}
	return f.groups[name], nil
}

func (f *fakeCloud) DescribeVersions(_ context.Context, templateID string) ([]types.LaunchTemplateVersion, error) {
	if f.failDescribeVersions != nil {
		return nil, f.failDescribeVersions
	}

	versions, ok := f.templates[templateID]
	if !ok {
		return nil, &provider.Error{
			Kind:     provider.ErrProvider,
			Op:       "DescribeLaunchTemplateVersions",
			Resource: templateID,
			Code:     "InvalidLaunchTemplateId.NotFound",
			Message:  "The specified launch template does not exist.",
		}
	}

	out := make([]types.LaunchTemplateVersion, len(versions))
	for i, v := range versions {
		v.Settings = v.Settings.Clone()
		out[i] = v
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return out, nil
}

func (f *fakeCloud) CreateVersion(_ context.Context, input *provider.CreateVersionInput) (int64, error) {
	f.createCalls++
	if f.failCreate != nil {
		return 0, f.failCreate
	}

	versions, ok := f.templates[input.TemplateID]
	if !ok {
		return 0, errors.New("unknown template")
	}

	var highest int64
	for _, v := range versions {
		if v.Number > highest {
			highest = v.Number
		}
	}

	next := types.LaunchTemplateVersion{
		TemplateID:    input.TemplateID,
		Number:        highest + 1,
		SourceVersion: input.SourceVersion,
		Description:   input.Description,
		Settings:      input.Settings.Clone(),
	}
	f.templates[input.TemplateID] = append(versions, next)
	return next.Number, nil
}

func (f *fakeCloud) SetDefaultVersion(_ context.Context, templateID string, version int64) error {
	f.setDefaultCalls++
	if f.failSetDefault != nil {
		return f.failSetDefault
	}

	if f.version(templateID, version) == nil {
		return errors.New("unknown version")
	}
	for i := range f.templates[templateID] {
		f.templates[templateID][i].Default = f.templates[templateID][i].Number == version
	}
	return nil
}

func (f *fakeCloud) GetParameter(_ context.Context, name string) (string, error) {
	v, ok := f.parameters[name]
	if !ok {
		return "", provider.NotFound("GetParameter", name, "parameter %q not found", name)
	}
	return v, nil
}
