package types

// AutoScalingGroup represents an AWS Auto Scaling Group and its launch template reference
type AutoScalingGroup struct {
	Name               string
	ARN                string
	LaunchTemplateID   string
	LaunchTemplateName string
	LaunchTemplateVer  string // $Default, $Latest or a number
	MixedInstances     bool   // template comes from a mixed instances policy
}

// GroupSpec is a configured group and the constraints selecting its image
type GroupSpec struct {
	Name           string            `json:"name" yaml:"name"`
	Tags           map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	ImageParameter string            `json:"image_parameter,omitempty" yaml:"image_parameter,omitempty"`
}
