package types

import "time"

// imageDateLayout is the CreationDate format returned by the EC2 image catalog
const imageDateLayout = "2006-01-02T15:04:05.000Z"

// Image represents a machine image (AMI)
type Image struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`                   // Name tag, empty if untagged
	CreationDate string            `json:"creation_date" yaml:"creation_date"` // ISO-8601, fixed width
	Tags         map[string]string `json:"tags" yaml:"tags"`
}

// GetTag returns a tag value by key
func (i *Image) GetTag(key string) string {
	if i.Tags == nil {
		return ""
	}
	return i.Tags[key]
}

// CreatedAt parses CreationDate. It returns the zero time if the value
// does not match the catalog layout.
func (i *Image) CreatedAt() time.Time {
	t, err := time.Parse(imageDateLayout, i.CreationDate)
	if err != nil {
		t, err = time.Parse(time.RFC3339, i.CreationDate)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}

// TagFilter matches images whose tag Key contains Value as a substring
type TagFilter struct {
	Key   string
	Value string
}
