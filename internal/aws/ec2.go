package aws

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/vietdv277/amirotate/pkg/provider"
	"github.com/vietdv277/amirotate/pkg/types"
)

// DescribeImages returns all images whose tags contain every filter value.
// Each filter becomes tag:<key> = *<value>*, so matching is substring and
// case-sensitive.
func (c *Client) DescribeImages(ctx context.Context, filters []types.TagFilter) ([]types.Image, error) {
	// Build filters
	var ec2Filters []ec2types.Filter
	for _, f := range filters {
		ec2Filters = append(ec2Filters, ec2types.Filter{
			Name:   aws.String("tag:" + f.Key),
			Values: []string{"*" + escapeFilterValue(f.Value) + "*"},
		})
	}

	describeInput := &ec2.DescribeImagesInput{
		Filters: ec2Filters,
	}

	if len(c.imageOwners) > 0 {
		describeInput.Owners = c.imageOwners
	}

	return c.describeImages(ctx, describeInput)
}

// DescribeImage returns a single image by ID
func (c *Client) DescribeImage(ctx context.Context, imageID string) (*types.Image, error) {
	images, err := c.describeImages(ctx, &ec2.DescribeImagesInput{
		ImageIds: []string{imageID},
	})
	if err != nil {
		return nil, err
	}

	if len(images) == 0 {
		return nil, provider.NotFound("DescribeImages", imageID, "image %q not found", imageID)
	}

	return &images[0], nil
}

func (c *Client) describeImages(ctx context.Context, input *ec2.DescribeImagesInput) ([]types.Image, error) {
	var images []types.Image

	for {
		output, err := c.EC2.DescribeImages(ctx, input)
		if err != nil {
			return nil, providerError("DescribeImages", "", err)
		}

		for _, img := range output.Images {
			images = append(images, toImage(img))
		}

		if output.NextToken == nil {
			break
		}
		input.NextToken = output.NextToken
	}

	return images, nil
}

// toImage converts an EC2 Image to our Image type
func toImage(i ec2types.Image) types.Image {
	img := types.Image{
		ID:           deref(i.ImageId),
		CreationDate: deref(i.CreationDate),
		Tags:         make(map[string]string, len(i.Tags)),
	}

	// Extract tags
	for _, tag := range i.Tags {
		key := deref(tag.Key)
		value := deref(tag.Value)

		img.Tags[key] = value
		if key == "Name" {
			img.Name = value
		}
	}

	return img
}

// filterEscaper escapes EC2 filter wildcards so values match literally
var filterEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func escapeFilterValue(v string) string {
	return filterEscaper.Replace(v)
}
