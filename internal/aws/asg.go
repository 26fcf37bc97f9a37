package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	asgtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"

	"github.com/vietdv277/amirotate/pkg/types"
)

// DescribeGroups returns the Auto Scaling Group records for a name.
// Records are returned in API order.
func (c *Client) DescribeGroups(ctx context.Context, name string) ([]types.AutoScalingGroup, error) {
	var allGroups []asgtypes.AutoScalingGroup
	var nextToken *string

	for {
		output, err := c.ASG.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
			AutoScalingGroupNames: []string{name},
			NextToken:             nextToken,
		})
		if err != nil {
			return nil, providerError("DescribeAutoScalingGroups", name, err)
		}

		allGroups = append(allGroups, output.AutoScalingGroups...)

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	groups := make([]types.AutoScalingGroup, 0, len(allGroups))
	for _, g := range allGroups {
		groups = append(groups, toAutoScalingGroup(g))
	}

	return groups, nil
}

// toAutoScalingGroup converts an AWS ASG type to our internal type
func toAutoScalingGroup(g asgtypes.AutoScalingGroup) types.AutoScalingGroup {
	asg := types.AutoScalingGroup{
		Name: deref(g.AutoScalingGroupName),
		ARN:  deref(g.AutoScalingGroupARN),
	}

	// Get launch template reference
	if g.LaunchTemplate != nil {
		asg.LaunchTemplateID = deref(g.LaunchTemplate.LaunchTemplateId)
		asg.LaunchTemplateName = deref(g.LaunchTemplate.LaunchTemplateName)
		asg.LaunchTemplateVer = deref(g.LaunchTemplate.Version)
	} else if g.MixedInstancesPolicy != nil && g.MixedInstancesPolicy.LaunchTemplate != nil {
		if spec := g.MixedInstancesPolicy.LaunchTemplate.LaunchTemplateSpecification; spec != nil {
			asg.LaunchTemplateID = deref(spec.LaunchTemplateId)
			asg.LaunchTemplateName = deref(spec.LaunchTemplateName)
			asg.LaunchTemplateVer = deref(spec.Version)
			asg.MixedInstances = true
		}
	}

	return asg
}
