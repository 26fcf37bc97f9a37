package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// EC2API is the subset of the EC2 client used for images and launch templates
type EC2API interface {
	DescribeImages(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error)
	DescribeLaunchTemplateVersions(ctx context.Context, params *ec2.DescribeLaunchTemplateVersionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeLaunchTemplateVersionsOutput, error)
	CreateLaunchTemplateVersion(ctx context.Context, params *ec2.CreateLaunchTemplateVersionInput, optFns ...func(*ec2.Options)) (*ec2.CreateLaunchTemplateVersionOutput, error)
	ModifyLaunchTemplate(ctx context.Context, params *ec2.ModifyLaunchTemplateInput, optFns ...func(*ec2.Options)) (*ec2.ModifyLaunchTemplateOutput, error)
}

// AutoScalingAPI is the subset of the Auto Scaling client used for group lookups
type AutoScalingAPI interface {
	DescribeAutoScalingGroups(ctx context.Context, params *autoscaling.DescribeAutoScalingGroupsInput, optFns ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error)
}

// SSMAPI is the subset of the SSM client used for parameter-sourced images
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// STSAPI is the subset of the STS client used for identity checks
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Client wraps AWS SDK clients
type Client struct {
	EC2 EC2API
	ASG AutoScalingAPI
	SSM SSMAPI
	STS STSAPI

	profile     string
	region      string
	imageOwners []string
}

// ClientOption allows customizing the AWS Client
type ClientOption func(*Client)

// WithProfile sets the AWS profile for the client
func WithProfile(profile string) ClientOption {
	return func(c *Client) {
		c.profile = profile
	}
}

// WithRegion sets the AWS region for the client
func WithRegion(region string) ClientOption {
	return func(c *Client) {
		c.region = region
	}
}

// WithImageOwners restricts image queries to the given owners (e.g. "self")
func WithImageOwners(owners []string) ClientOption {
	return func(c *Client) {
		c.imageOwners = owners
	}
}

// NewClient creates a new AWS Client with the given options
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	c := &Client{}

	// Apply options
	for _, opt := range opts {
		opt(c)
	}

	// Build config options
	var configOpts []func(*config.LoadOptions) error

	if c.profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(c.profile))
	}

	if c.region != "" {
		configOpts = append(configOpts, config.WithRegion(c.region))
	}

	// Load AWS config
	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	if cfg.Region == "" {
		return nil, fmt.Errorf("no AWS region configured")
	}
	c.region = cfg.Region

	c.EC2 = ec2.NewFromConfig(cfg)
	c.ASG = autoscaling.NewFromConfig(cfg)
	c.SSM = ssm.NewFromConfig(cfg)
	c.STS = sts.NewFromConfig(cfg)

	return c, nil
}

// Region returns the resolved region the client talks to
func (c *Client) Region() string {
	return c.region
}
