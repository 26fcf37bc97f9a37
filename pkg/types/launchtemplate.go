package types

import "maps"

// ImageIDKey is the settings key holding the image reference
const ImageIDKey = "ImageId"

// LaunchSettings is the launch configuration bundle of a template version.
// Keys use the EC2 API field names (ImageId, InstanceType, ...).
type LaunchSettings map[string]any

// ImageID returns the image reference, or "" if none is set
func (s LaunchSettings) ImageID() string {
	v, ok := s[ImageIDKey].(string)
	if !ok {
		return ""
	}
	return v
}

// Clone returns a deep copy of the settings
func (s LaunchSettings) Clone() LaunchSettings {
	if s == nil {
		return nil
	}
	out := make(LaunchSettings, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

// WithImageID returns a copy of the settings with only the image reference replaced
func (s LaunchSettings) WithImageID(imageID string) LaunchSettings {
	out := s.Clone()
	if out == nil {
		out = LaunchSettings{}
	}
	out[ImageIDKey] = imageID
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := maps.Clone(t)
		for k, inner := range m {
			m[k] = cloneValue(inner)
		}
		return m
	case LaunchSettings:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = cloneValue(inner)
		}
		return out
	default:
		return v
	}
}

// LaunchTemplateVersion represents one immutable version of a launch template
type LaunchTemplateVersion struct {
	TemplateID    string         `json:"template_id"`
	TemplateName  string         `json:"template_name,omitempty"`
	Number        int64          `json:"number"`
	Default       bool           `json:"default"`
	SourceVersion int64          `json:"source_version,omitempty"`
	Description   string         `json:"description,omitempty"`
	Settings      LaunchSettings `json:"settings"`
}
