package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/amirotate/pkg/provider"
	"github.com/vietdv277/amirotate/pkg/types"
)

func ec2Image(id, created string, tags map[string]string) ec2types.Image {
	img := ec2types.Image{
		ImageId:      aws.String(id),
		CreationDate: aws.String(created),
	}
	for k, v := range tags {
		img.Tags = append(img.Tags, ec2types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	return img
}

func TestDescribeImagesBuildsSubstringFilters(t *testing.T) {
	stub := &stubEC2{
		imagePages: []*ec2.DescribeImagesOutput{{}},
	}
	c := &Client{EC2: stub}

	_, err := c.DescribeImages(context.Background(), []types.TagFilter{
		{Key: "Name", Value: "web"},
		{Key: "env", Value: "pr*od?"},
	})
	require.NoError(t, err)

	require.Len(t, stub.imageInputs, 1)
	in := stub.imageInputs[0]
	require.Len(t, in.Filters, 2)
	assert.Equal(t, "tag:Name", aws.ToString(in.Filters[0].Name))
	assert.Equal(t, []string{"*web*"}, in.Filters[0].Values)
	assert.Equal(t, "tag:env", aws.ToString(in.Filters[1].Name))
	assert.Equal(t, []string{`*pr\*od\?*`}, in.Filters[1].Values)
	assert.Empty(t, in.Owners)
}

func TestDescribeImagesOwners(t *testing.T) {
	stub := &stubEC2{imagePages: []*ec2.DescribeImagesOutput{{}}}
	c := &Client{EC2: stub, imageOwners: []string{"self"}}

	_, err := c.DescribeImages(context.Background(), []types.TagFilter{{Key: "Name", Value: "web"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"self"}, stub.imageInputs[0].Owners)
}

func TestDescribeImagesPaginates(t *testing.T) {
	stub := &stubEC2{
		imagePages: []*ec2.DescribeImagesOutput{
			{
				Images:    []ec2types.Image{ec2Image("ami-1", "2024-01-01T00:00:00.000Z", map[string]string{"Name": "web-1"})},
				NextToken: aws.String("page-2"),
			},
			{
				Images: []ec2types.Image{ec2Image("ami-2", "2024-02-01T00:00:00.000Z", nil)},
			},
		},
	}
	c := &Client{EC2: stub}

	images, err := c.DescribeImages(context.Background(), []types.TagFilter{{Key: "Name", Value: "web"}})
	require.NoError(t, err)

	require.Len(t, images, 2)
	assert.Equal(t, "ami-1", images[0].ID)
	assert.Equal(t, "web-1", images[0].Name)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", images[0].CreationDate)
	assert.Equal(t, "ami-2", images[1].ID)
	assert.Empty(t, images[1].Name)

	require.Len(t, stub.imageInputs, 2)
	assert.Nil(t, stub.imageInputs[0].NextToken)
	assert.Equal(t, "page-2", aws.ToString(stub.imageInputs[1].NextToken))
}

func TestDescribeImagesProviderError(t *testing.T) {
	stub := &stubEC2{err: &smithy.GenericAPIError{Code: "UnauthorizedOperation", Message: "not allowed"}}
	c := &Client{EC2: stub}

	_, err := c.DescribeImages(context.Background(), []types.TagFilter{{Key: "Name", Value: "web"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrProvider)

	var perr *provider.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "DescribeImages", perr.Op)
	assert.Equal(t, "UnauthorizedOperation", perr.Code)
	assert.Equal(t, "not allowed", perr.Message)
}

func TestDescribeImage(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		stub := &stubEC2{imagePages: []*ec2.DescribeImagesOutput{{
			Images: []ec2types.Image{ec2Image("ami-1", "2024-01-01T00:00:00.000Z", nil)},
		}}}
		c := &Client{EC2: stub}

		img, err := c.DescribeImage(context.Background(), "ami-1")
		require.NoError(t, err)
		assert.Equal(t, "ami-1", img.ID)
		assert.Equal(t, []string{"ami-1"}, stub.imageInputs[0].ImageIds)
	})

	t.Run("missing", func(t *testing.T) {
		stub := &stubEC2{imagePages: []*ec2.DescribeImagesOutput{{}}}
		c := &Client{EC2: stub}

		_, err := c.DescribeImage(context.Background(), "ami-gone")
		assert.ErrorIs(t, err, provider.ErrNotFound)
	})
}

func TestProviderErrorWithoutAPIError(t *testing.T) {
	err := providerError("DescribeImages", "", errors.New("connection reset"))

	assert.ErrorIs(t, err, provider.ErrProvider)
	assert.Contains(t, err.Error(), "connection reset")

	var perr *provider.Error
	require.True(t, errors.As(err, &perr))
	assert.Empty(t, perr.Code)
}
