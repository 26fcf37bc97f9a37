package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// stubEC2 records inputs and replays canned pages
type stubEC2 struct {
	imagePages   []*ec2.DescribeImagesOutput
	versionPages []*ec2.DescribeLaunchTemplateVersionsOutput
	createOutput *ec2.CreateLaunchTemplateVersionOutput
	err          error

	imageInputs   []ec2.DescribeImagesInput
	versionInputs []ec2.DescribeLaunchTemplateVersionsInput
	createInput   *ec2.CreateLaunchTemplateVersionInput
	modifyInput   *ec2.ModifyLaunchTemplateInput
}

func (s *stubEC2) DescribeImages(_ context.Context, in *ec2.DescribeImagesInput, _ ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error) {
	s.imageInputs = append(s.imageInputs, *in)
	if s.err != nil {
		return nil, s.err
	}
	page := s.imagePages[len(s.imageInputs)-1]
	return page, nil
}

func (s *stubEC2) DescribeLaunchTemplateVersions(_ context.Context, in *ec2.DescribeLaunchTemplateVersionsInput, _ ...func(*ec2.Options)) (*ec2.DescribeLaunchTemplateVersionsOutput, error) {
	s.versionInputs = append(s.versionInputs, *in)
	if s.err != nil {
		return nil, s.err
	}
	return s.versionPages[len(s.versionInputs)-1], nil
}

func (s *stubEC2) CreateLaunchTemplateVersion(_ context.Context, in *ec2.CreateLaunchTemplateVersionInput, _ ...func(*ec2.Options)) (*ec2.CreateLaunchTemplateVersionOutput, error) {
	s.createInput = in
	if s.err != nil {
		return nil, s.err
	}
	return s.createOutput, nil
}

func (s *stubEC2) ModifyLaunchTemplate(_ context.Context, in *ec2.ModifyLaunchTemplateInput, _ ...func(*ec2.Options)) (*ec2.ModifyLaunchTemplateOutput, error) {
	s.modifyInput = in
	if s.err != nil {
		return nil, s.err
	}
	return &ec2.ModifyLaunchTemplateOutput{}, nil
}

type stubASG struct {
	pages  []*autoscaling.DescribeAutoScalingGroupsOutput
	err    error
	inputs []autoscaling.DescribeAutoScalingGroupsInput
}

func (s *stubASG) DescribeAutoScalingGroups(_ context.Context, in *autoscaling.DescribeAutoScalingGroupsInput, _ ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error) {
	s.inputs = append(s.inputs, *in)
	if s.err != nil {
		return nil, s.err
	}
	return s.pages[len(s.inputs)-1], nil
}

type stubSSM struct {
	output *ssm.GetParameterOutput
	err    error
}

func (s *stubSSM) GetParameter(_ context.Context, _ *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	return s.output, s.err
}

type stubSTS struct {
	output *sts.GetCallerIdentityOutput
	err    error
}

func (s *stubSTS) GetCallerIdentity(_ context.Context, _ *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return s.output, s.err
}
