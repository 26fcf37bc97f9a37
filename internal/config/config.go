package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/vietdv277/amirotate/pkg/types"
)

// DefaultConfigPath is read when no --config flag is given
const DefaultConfigPath = "config.yaml"

// Config represents the application configuration
type Config struct {
	AWSRegion          string    `yaml:"AWS_REGION"`
	AWSProfile         string    `yaml:"AWS_PROFILE,omitempty"`
	LogLevel           string    `yaml:"LOG_LEVEL,omitempty"`
	LogFormat          string    `yaml:"LOG_FORMAT,omitempty"`
	DisplayTimezone    string    `yaml:"DISPLAY_TIMEZONE,omitempty"`
	VersionDescription string    `yaml:"VERSION_DESCRIPTION,omitempty"`
	ImageOwners        []string  `yaml:"IMAGE_OWNERS,omitempty"`
	Debug              bool      `yaml:"DEBUG,omitempty"`
	Groups             GroupList `yaml:"ASG_NAMES"`
}

// GroupList is the ASG_NAMES section: a list of mappings from group name to
// the constraints selecting its image. A group's value is either a list of
// {tag_key: value_substring} entries, merged into one mapping, or a mapping
// with "tags" and/or "image_parameter".
type GroupList []types.GroupSpec

// UnmarshalYAML decodes ASG_NAMES preserving file order
func (g *GroupList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: ASG_NAMES must be a list", node.Line)
	}

	var groups GroupList
	for _, item := range node.Content {
		if item.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: ASG_NAMES entries must map a group name to its tags", item.Line)
		}

		for i := 0; i+1 < len(item.Content); i += 2 {
			spec, err := decodeGroup(item.Content[i].Value, item.Content[i+1])
			if err != nil {
				return err
			}
			groups = append(groups, spec)
		}
	}

	*g = groups
	return nil
}

func decodeGroup(name string, node *yaml.Node) (types.GroupSpec, error) {
	spec := types.GroupSpec{Name: name}

	switch node.Kind {
	case yaml.SequenceNode:
		tags, err := decodeTags(name, node)
		if err != nil {
			return spec, err
		}
		spec.Tags = tags

	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i].Value, node.Content[i+1]
			switch key {
			case "tags":
				tags, err := decodeTags(name, value)
				if err != nil {
					return spec, err
				}
				spec.Tags = tags
			case "image_parameter":
				spec.ImageParameter = value.Value
			default:
				return spec, fmt.Errorf("line %d: group %q: unknown key %q", value.Line, name, key)
			}
		}

	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return spec, fmt.Errorf("line %d: group %q: expected a list of tags", node.Line, name)
		}

	default:
		return spec, fmt.Errorf("line %d: group %q: expected a list of tags", node.Line, name)
	}

	return spec, nil
}

// decodeTags merges a list of single-key mappings, or a plain mapping,
// into one constraint mapping. Later keys override earlier ones.
func decodeTags(group string, node *yaml.Node) (map[string]string, error) {
	tags := make(map[string]string)

	merge := func(m *yaml.Node) error {
		for i := 0; i+1 < len(m.Content); i += 2 {
			value := m.Content[i+1]
			if value.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: group %q: tag %q must be a string", value.Line, group, m.Content[i].Value)
			}
			tags[m.Content[i].Value] = value.Value
		}
		return nil
	}

	switch node.Kind {
	case yaml.MappingNode:
		if err := merge(node); err != nil {
			return nil, err
		}
	case yaml.SequenceNode:
		for _, entry := range node.Content {
			if entry.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: group %q: tag entries must be {key: value}", entry.Line, group)
			}
			if err := merge(entry); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("line %d: group %q: tags must be a list or mapping", node.Line, group)
	}

	return tags, nil
}

// Load reads the configuration file at path
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// LoadOptional is like Load but returns a default config if the file
// doesn't exist
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Parse(nil)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes configuration from YAML and applies defaults
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.DisplayTimezone == "" {
		c.DisplayTimezone = "Local"
	}
}

// Merge overlays values set through viper (flags and AMIROTATE_* environment
// variables) on top of the file. Region and profile fall back to the usual
// AWS environment variables.
func (c *Config) Merge(v *viper.Viper) {
	if s := v.GetString("region"); v.IsSet("region") && s != "" {
		c.AWSRegion = s
	}
	if s := v.GetString("profile"); v.IsSet("profile") && s != "" {
		c.AWSProfile = s
	}
	if s := v.GetString("log-level"); v.IsSet("log-level") && s != "" {
		c.LogLevel = s
	}
	if s := v.GetString("log-format"); v.IsSet("log-format") && s != "" {
		c.LogFormat = s
	}
	if s := v.GetString("timezone"); v.IsSet("timezone") && s != "" {
		c.DisplayTimezone = s
	}
	if v.IsSet("debug") && v.GetBool("debug") {
		c.Debug = true
	}

	if c.AWSRegion == "" {
		c.AWSRegion = os.Getenv("AWS_REGION")
		if c.AWSRegion == "" {
			c.AWSRegion = os.Getenv("AWS_DEFAULT_REGION")
		}
	}
	if c.AWSProfile == "" {
		c.AWSProfile = os.Getenv("AWS_PROFILE")
	}

	if c.Debug {
		c.LogLevel = "debug"
	}
}

// Validate checks the configuration is usable for a rotation run
func (c *Config) Validate() error {
	if err := c.ValidateBase(); err != nil {
		return err
	}

	if len(c.Groups) == 0 {
		return fmt.Errorf("ASG_NAMES must list at least one group")
	}

	seen := make(map[string]bool)
	for _, g := range c.Groups {
		if g.Name == "" {
			return fmt.Errorf("ASG_NAMES contains a group with an empty name")
		}
		if seen[g.Name] {
			return fmt.Errorf("group %q is listed more than once", g.Name)
		}
		seen[g.Name] = true

		if len(g.Tags) == 0 && g.ImageParameter == "" {
			return fmt.Errorf("group %q needs tags or image_parameter", g.Name)
		}
		if len(g.Tags) > 0 && g.ImageParameter != "" {
			return fmt.Errorf("group %q sets both tags and image_parameter", g.Name)
		}
	}

	return nil
}

// ValidateBase checks the settings every command needs
func (c *Config) ValidateBase() error {
	if c.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.LogLevel)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Location returns the timezone image creation times are displayed in
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", c.DisplayTimezone, err)
	}
	return loc, nil
}

// Select returns the configured groups with the given names, in config order.
// An empty names list selects every group.
func (c *Config) Select(names []string) ([]types.GroupSpec, error) {
	if len(names) == 0 {
		return c.Groups, nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var selected []types.GroupSpec
	for _, g := range c.Groups {
		if want[g.Name] {
			selected = append(selected, g)
			delete(want, g.Name)
		}
	}

	for _, n := range names {
		if want[n] {
			return nil, fmt.Errorf("group %q is not in the config file", n)
		}
	}

	return selected, nil
}
