package types

// UpdateOutcome is the terminal state of a template update
type UpdateOutcome string

const (
	OutcomeNoChange UpdateOutcome = "no-change"
	OutcomeUpdated  UpdateOutcome = "updated"
	OutcomePlanned  UpdateOutcome = "planned" // dry run, images differ
	OutcomeFailed   UpdateOutcome = "failed"
)

// UpdateResult describes what the template updater did
type UpdateResult struct {
	Outcome         UpdateOutcome `json:"outcome"`
	TemplateID      string        `json:"template_id"`
	PreviousImageID string        `json:"previous_image_id"`
	ImageID         string        `json:"image_id"`
	PreviousVersion int64         `json:"previous_version"`
	NewVersion      int64         `json:"new_version,omitempty"` // set once the version exists
}

// GroupReport is the outcome of processing one configured group
type GroupReport struct {
	Group      string        `json:"group" yaml:"group"`
	TemplateID string        `json:"template_id,omitempty" yaml:"template_id,omitempty"`
	Image      *Image        `json:"image,omitempty" yaml:"image,omitempty"`
	Outcome    UpdateOutcome `json:"outcome" yaml:"outcome"`
	OldVersion int64         `json:"old_version,omitempty" yaml:"old_version,omitempty"`
	NewVersion int64         `json:"new_version,omitempty" yaml:"new_version,omitempty"`
	ErrorKind  string        `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the group ended in an error
func (r *GroupReport) Failed() bool {
	return r.Outcome == OutcomeFailed
}
