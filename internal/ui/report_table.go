package ui

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vietdv277/amirotate/pkg/types"
)

// PrintReportTable prints the per-group outcome of a rotation run
func PrintReportTable(w io.Writer, reports []types.GroupReport) {
	headers := []string{"Group", "Template", "Image", "Version", "Outcome", "Error"}

	var rows [][]cell
	for _, r := range reports {
		imageID := ""
		if r.Image != nil {
			imageID = r.Image.ID
		}

		rows = append(rows, []cell{
			{r.Group, NameStyle},
			{formatOptional(r.TemplateID), IDStyle},
			{formatOptional(imageID), IDStyle},
			{formatVersionChange(r), ValueStyle},
			{string(r.Outcome), outcomeStyle(r.Outcome)},
			{formatError(r), FailedStyle},
		})
	}

	fmt.Fprint(w, renderTable(headers, []int{10, 12, 12, 7, 9, 5}, rows))
	fmt.Fprintln(w, summarize(reports))
}

// PrintVersionTable prints the versions of a launch template, newest first
func PrintVersionTable(w io.Writer, versions []types.LaunchTemplateVersion) {
	sorted := append([]types.LaunchTemplateVersion(nil), versions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number > sorted[j].Number })

	headers := []string{"Version", "Default", "Image", "Instance Type", "Description"}

	var rows [][]cell
	for _, v := range sorted {
		def, defStyle := "", MutedStyle
		if v.Default {
			def, defStyle = "●", SuccessStyle
		}

		instanceType, _ := v.Settings["InstanceType"].(string)

		rows = append(rows, []cell{
			{strconv.FormatInt(v.Number, 10), ValueStyle},
			{def, defStyle},
			{formatOptional(v.Settings.ImageID()), IDStyle},
			{formatOptional(instanceType), ValueStyle},
			{v.Description, MutedStyle},
		})
	}

	fmt.Fprint(w, renderTable(headers, []int{7, 7, 21, 13, 11}, rows))
	fmt.Fprintf(w, "  %d versions\n", len(versions))
}

// PrintImageDetails prints an image with its creation time in loc
func PrintImageDetails(w io.Writer, img *types.Image, loc *time.Location) {
	created := img.CreationDate
	if t := img.CreatedAt(); !t.IsZero() {
		created = t.In(loc).Format("2006-01-02 15:04:05 MST")
	}

	details := []detail{
		{"Image ID:", img.ID},
		{"Name:", formatOptional(img.Name)},
		{"Created:", created},
	}

	keys := make([]string, 0, len(img.Tags))
	for k := range img.Tags {
		if k != "Name" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		details = append(details, detail{"Tag " + k + ":", img.Tags[k]})
	}

	fmt.Fprint(w, renderDetails("Latest Image", details))
}

func formatVersionChange(r types.GroupReport) string {
	switch {
	case r.NewVersion > 0:
		return fmt.Sprintf("%d → %d", r.OldVersion, r.NewVersion)
	case r.OldVersion > 0:
		return strconv.FormatInt(r.OldVersion, 10)
	default:
		return "-"
	}
}

func formatError(r types.GroupReport) string {
	if r.ErrorKind == "" {
		return ""
	}
	return r.ErrorKind + ": " + r.Error
}

func outcomeStyle(o types.UpdateOutcome) lipgloss.Style {
	switch o {
	case types.OutcomeUpdated:
		return SuccessStyle
	case types.OutcomePlanned:
		return PendingStyle
	case types.OutcomeFailed:
		return FailedStyle
	default:
		return MutedStyle
	}
}

func summarize(reports []types.GroupReport) string {
	counts := make(map[types.UpdateOutcome]int)
	for _, r := range reports {
		counts[r.Outcome]++
	}

	var parts []string
	if c := counts[types.OutcomeUpdated]; c > 0 {
		parts = append(parts, SuccessStyle.Render(fmt.Sprintf("%d updated", c)))
	}
	if c := counts[types.OutcomePlanned]; c > 0 {
		parts = append(parts, PendingStyle.Render(fmt.Sprintf("%d planned", c)))
	}
	if c := counts[types.OutcomeNoChange]; c > 0 {
		parts = append(parts, MutedStyle.Render(fmt.Sprintf("%d unchanged", c)))
	}
	if c := counts[types.OutcomeFailed]; c > 0 {
		parts = append(parts, FailedStyle.Render(fmt.Sprintf("%d failed", c)))
	}

	summary := fmt.Sprintf("  %d groups", len(reports))
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	return summary
}
