// Package prompt builds the generation prompt. The output contract here
// (five JSON fields) is fixed: the parser depends on it.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/cover-gen/internal/model"
)

// Instructions carries optional free-form guidance per output section.
// Empty slots are substituted with nothing.
type Instructions struct {
	Opening    string
	AboutMe    string
	WhyMe      string
	WhyCompany string
}

const promptTemplate = `You are writing a job application cover letter on behalf of a candidate.

CANDIDATE PROFILE
Name: %s
Email: %s%s

Work experience:
%s
Projects:
%s
Education:
%s
Skills: %s

JOB POSTING
Company: %s
Position: %s%s

Description:
%s

TASK
Write a cover letter for this candidate applying to this position.
%s
Return STRICTLY a JSON object with exactly these five fields and nothing else:
{
  "addressee": "<who the letter is addressed to, e.g. 'Dear Hiring Team at %s,'>",
  "opening": "<opening paragraph>",
  "aboutMe": "<paragraph about the candidate's background>",
  "whyMe": "<paragraph on why the candidate fits this role>",
  "whyCompany": "<paragraph on why the candidate wants to join this company>"
}

Rules:
- Use only facts from the candidate profile above. Do not invent employers, dates, degrees or skills.
- Do not repeat section names like "About me" or "Why me" inside the text.
- Write in a natural, confident tone. No placeholders, no brackets.`

// OutputSchema is the JSON schema form of the output contract above.
// Backends that support constrained decoding receive it with every
// generate call.
const OutputSchema = `{
  "type": "object",
  "properties": {
    "addressee": {"type": "string"},
    "opening": {"type": "string"},
    "aboutMe": {"type": "string"},
    "whyMe": {"type": "string"},
    "whyCompany": {"type": "string"}
  },
  "required": ["addressee", "opening", "aboutMe", "whyMe", "whyCompany"]
}`

// Build is deterministic: the same inputs always produce the same prompt.
func Build(profile model.Profile, posting model.JobPosting, instr Instructions) string {
	var phone string
	if profile.Phone != "" {
		phone = "\nPhone: " + profile.Phone
	}

	var postingSkills string
	if len(posting.Skills) > 0 {
		postingSkills = "\nRequired skills: " + strings.Join(posting.Skills, ", ")
	}

	return fmt.Sprintf(promptTemplate,
		profile.Name,
		profile.Email,
		phone,
		formatExperiences(profile.Experiences),
		formatExperiences(profile.Projects),
		formatEducation(profile.Education),
		strings.Join(profile.Skills, ", "),
		posting.Company,
		posting.Title,
		postingSkills,
		posting.Description,
		formatInstructions(instr),
		posting.Company,
	)
}

func formatExperiences(entries []model.Experience) string {
	if len(entries) == 0 {
		return "- none\n"
	}
	var sb strings.Builder
	for _, e := range entries {
		header := e.Role
		if e.Company != "" {
			header += " at " + e.Company
		}
		fmt.Fprintf(&sb, "- %s (%s)\n", header, formatDateRange(e.StartDate, e.EndDate))
		if e.Description != "" {
			fmt.Fprintf(&sb, "  %s\n", e.Description)
		}
	}
	return sb.String()
}

func formatEducation(entries []model.Education) string {
	if len(entries) == 0 {
		return "- none\n"
	}
	var sb strings.Builder
	for _, e := range entries {
		degree := e.Degree
		if e.Field != "" {
			degree += " in " + e.Field
		}
		fmt.Fprintf(&sb, "- %s, %s (%s)\n", degree, e.Institution, formatDateRange(e.StartDate, e.EndDate))
	}
	return sb.String()
}

// formatDateRange renders "Jan 2020 – Mar 2023", or "Jan 2020 – Present"
// when the end date is absent.
func formatDateRange(start time.Time, end *time.Time) string {
	from := start.Format("Jan 2006")
	if end == nil {
		return from + " – Present"
	}
	return from + " – " + end.Format("Jan 2006")
}

func formatInstructions(instr Instructions) string {
	slots := []struct {
		section string
		text    string
	}{
		{"opening", instr.Opening},
		{"aboutMe", instr.AboutMe},
		{"whyMe", instr.WhyMe},
		{"whyCompany", instr.WhyCompany},
	}
	var sb strings.Builder
	for _, s := range slots {
		if strings.TrimSpace(s.text) == "" {
			continue
		}
		fmt.Fprintf(&sb, "For the %q section: %s\n", s.section, strings.TrimSpace(s.text))
	}
	return sb.String()
}
