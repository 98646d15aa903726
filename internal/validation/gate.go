// Package validation holds the pre-flight checks run before a generation
// job may be enqueued. The worker does not re-check; a job that reaches
// the queue is assumed complete.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fadilmartias/cover-gen/internal/model"
)

const (
	MinEntryWords     = 10
	MaxEntryWords     = 300
	MaxCompanyLen     = 200
	MaxTitleLen       = 200
	MinDescriptionLen = 50
	MaxDescriptionLen = 20000
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Error aggregates every finding into one human-readable message.
type Error struct {
	Findings []string
}

func (e *Error) Error() string {
	return strings.Join(e.Findings, "; ")
}

// CheckProfile verifies the profile is complete enough to write a letter
// from: well-formed identity, non-empty skills, at least one experience
// or project, and entry descriptions within the word band.
func CheckProfile(p model.Profile) error {
	var findings []string

	if strings.TrimSpace(p.Name) == "" {
		findings = append(findings, "name is required")
	}
	if !emailRe.MatchString(p.Email) {
		findings = append(findings, fmt.Sprintf("email %q is not valid", p.Email))
	}
	if len(p.Skills) == 0 {
		findings = append(findings, "at least one skill is required")
	}
	if len(p.Experiences)+len(p.Projects) == 0 {
		findings = append(findings, "at least one experience or project is required")
	}

	for i, e := range p.Experiences {
		if msg := checkEntryDescription("experience", i, e); msg != "" {
			findings = append(findings, msg)
		}
	}
	for i, e := range p.Projects {
		if msg := checkEntryDescription("project", i, e); msg != "" {
			findings = append(findings, msg)
		}
	}

	if len(findings) > 0 {
		return &Error{Findings: findings}
	}
	return nil
}

// CheckJobPosting verifies the posting's length bounds.
func CheckJobPosting(j model.JobPosting) error {
	var findings []string

	if n := len(strings.TrimSpace(j.Company)); n == 0 || n > MaxCompanyLen {
		findings = append(findings, fmt.Sprintf("company must be 1-%d characters", MaxCompanyLen))
	}
	if n := len(strings.TrimSpace(j.Title)); n == 0 || n > MaxTitleLen {
		findings = append(findings, fmt.Sprintf("title must be 1-%d characters", MaxTitleLen))
	}
	if n := len(strings.TrimSpace(j.Description)); n < MinDescriptionLen || n > MaxDescriptionLen {
		findings = append(findings, fmt.Sprintf("description must be %d-%d characters", MinDescriptionLen, MaxDescriptionLen))
	}

	if len(findings) > 0 {
		return &Error{Findings: findings}
	}
	return nil
}

func checkEntryDescription(kind string, idx int, e model.Experience) string {
	words := len(strings.Fields(e.Description))
	if words < MinEntryWords || words > MaxEntryWords {
		return fmt.Sprintf("%s %d (%s): description must be %d-%d words, has %d",
			kind, idx+1, e.Role, MinEntryWords, MaxEntryWords, words)
	}
	return ""
}
