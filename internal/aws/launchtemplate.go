package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/vietdv277/amirotate/pkg/provider"
	"github.com/vietdv277/amirotate/pkg/types"
)

// DescribeVersions returns every version of a launch template
func (c *Client) DescribeVersions(ctx context.Context, templateID string) ([]types.LaunchTemplateVersion, error) {
	var all []ec2types.LaunchTemplateVersion
	var nextToken *string

	for {
		output, err := c.EC2.DescribeLaunchTemplateVersions(ctx, &ec2.DescribeLaunchTemplateVersionsInput{
			LaunchTemplateId: aws.String(templateID),
			NextToken:        nextToken,
		})
		if err != nil {
			return nil, providerError("DescribeLaunchTemplateVersions", templateID, err)
		}

		all = append(all, output.LaunchTemplateVersions...)

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	versions := make([]types.LaunchTemplateVersion, 0, len(all))
	for _, v := range all {
		version, err := toLaunchTemplateVersion(v)
		if err != nil {
			return nil, err
		}
		versions = append(versions, version)
	}

	return versions, nil
}

// CreateVersion creates a new launch template version from a settings bundle.
// SourceVersion is always sent, so any setting the request type cannot carry
// is inherited from the source version by EC2.
func (c *Client) CreateVersion(ctx context.Context, input *provider.CreateVersionInput) (int64, error) {
	data, err := toRequestData(input.Settings)
	if err != nil {
		return 0, &provider.Error{
			Kind:     provider.ErrInvalidInput,
			Op:       "CreateLaunchTemplateVersion",
			Resource: input.TemplateID,
			Message:  err.Error(),
			Err:      err,
		}
	}

	createInput := &ec2.CreateLaunchTemplateVersionInput{
		LaunchTemplateId:   aws.String(input.TemplateID),
		LaunchTemplateData: data,
		VersionDescription: aws.String(input.Description),
	}
	if input.SourceVersion > 0 {
		createInput.SourceVersion = aws.String(strconv.FormatInt(input.SourceVersion, 10))
	}

	output, err := c.EC2.CreateLaunchTemplateVersion(ctx, createInput)
	if err != nil {
		return 0, providerError("CreateLaunchTemplateVersion", input.TemplateID, err)
	}

	if output.LaunchTemplateVersion == nil || output.LaunchTemplateVersion.VersionNumber == nil {
		return 0, &provider.Error{
			Kind:     provider.ErrProvider,
			Op:       "CreateLaunchTemplateVersion",
			Resource: input.TemplateID,
			Message:  "response did not include a version number",
		}
	}

	return *output.LaunchTemplateVersion.VersionNumber, nil
}

// SetDefaultVersion makes the given version the template's default
func (c *Client) SetDefaultVersion(ctx context.Context, templateID string, version int64) error {
	_, err := c.EC2.ModifyLaunchTemplate(ctx, &ec2.ModifyLaunchTemplateInput{
		LaunchTemplateId: aws.String(templateID),
		DefaultVersion:   aws.String(strconv.FormatInt(version, 10)),
	})
	if err != nil {
		return providerError("ModifyLaunchTemplate", templateID, err)
	}

	return nil
}

// toLaunchTemplateVersion converts an EC2 launch template version to our type
func toLaunchTemplateVersion(v ec2types.LaunchTemplateVersion) (types.LaunchTemplateVersion, error) {
	version := types.LaunchTemplateVersion{
		TemplateID:   deref(v.LaunchTemplateId),
		TemplateName: deref(v.LaunchTemplateName),
		Number:       deref64(v.VersionNumber),
		Description:  deref(v.VersionDescription),
	}

	if v.DefaultVersion != nil {
		version.Default = *v.DefaultVersion
	}

	settings, err := toSettings(v.LaunchTemplateData)
	if err != nil {
		return version, &provider.Error{
			Kind:     provider.ErrProvider,
			Op:       "DescribeLaunchTemplateVersions",
			Resource: version.TemplateID,
			Message:  fmt.Sprintf("failed to decode version %d data: %v", version.Number, err),
			Err:      err,
		}
	}
	version.Settings = settings

	return version, nil
}

// toSettings flattens response launch template data into a settings bundle
// keyed by EC2 field names. Unset fields are dropped.
func toSettings(data *ec2types.ResponseLaunchTemplateData) (types.LaunchSettings, error) {
	if data == nil {
		return types.LaunchSettings{}, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}

	pruned, _ := prune(m).(map[string]any)
	if pruned == nil {
		pruned = map[string]any{}
	}
	return types.LaunchSettings(pruned), nil
}

// toRequestData converts a settings bundle into request launch template data
func toRequestData(settings types.LaunchSettings) (*ec2types.RequestLaunchTemplateData, error) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode launch settings: %w", err)
	}

	var data ec2types.RequestLaunchTemplateData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode launch settings: %w", err)
	}

	return &data, nil
}

// prune removes null values and empty collections
func prune(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, inner := range t {
			p := prune(inner)
			if isEmpty(p) {
				delete(t, k)
				continue
			}
			t[k] = p
		}
		return t
	case []any:
		out := t[:0]
		for _, inner := range t {
			if p := prune(inner); !isEmpty(p) {
				out = append(out, p)
			}
		}
		return out
	default:
		return v
	}
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}
