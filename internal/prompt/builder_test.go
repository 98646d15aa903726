package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fadilmartias/cover-gen/internal/model"
)

func date(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func sampleProfile() model.Profile {
	end := date(2023, time.March)
	return model.Profile{
		Name:  "Jane Doe",
		Email: "jane@x.com",
		Phone: "+1 555 0100",
		Experiences: []model.Experience{
			{
				Role:        "Engineer",
				Company:     "Initech",
				Description: "Built backend services.",
				StartDate:   date(2020, time.January),
				EndDate:     &end,
			},
			{
				Role:        "Senior Engineer",
				Company:     "Globex",
				Description: "Leads the platform team.",
				StartDate:   date(2023, time.April),
			},
		},
		Skills: []string{"Go", "PostgreSQL", "Kubernetes"},
	}
}

func samplePosting() model.JobPosting {
	return model.JobPosting{
		Company:     "Acme",
		Title:       "Backend Engineer",
		Description: "We build rockets.",
		Skills:      []string{"Go", "gRPC"},
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	p1 := Build(sampleProfile(), samplePosting(), Instructions{})
	p2 := Build(sampleProfile(), samplePosting(), Instructions{})
	assert.Equal(t, p1, p2)
}

func TestBuildFormatsDateRanges(t *testing.T) {
	p := Build(sampleProfile(), samplePosting(), Instructions{})

	assert.Contains(t, p, "Engineer at Initech (Jan 2020 – Mar 2023)")
	assert.Contains(t, p, "Senior Engineer at Globex (Apr 2023 – Present)")
}

func TestBuildIncludesProfileAndPosting(t *testing.T) {
	p := Build(sampleProfile(), samplePosting(), Instructions{})

	assert.Contains(t, p, "Name: Jane Doe")
	assert.Contains(t, p, "Skills: Go, PostgreSQL, Kubernetes")
	assert.Contains(t, p, "Company: Acme")
	assert.Contains(t, p, "Position: Backend Engineer")
	assert.Contains(t, p, "Required skills: Go, gRPC")
	assert.Contains(t, p, "We build rockets.")
}

func TestBuildNamesAllFiveFields(t *testing.T) {
	p := Build(sampleProfile(), samplePosting(), Instructions{})
	for _, field := range []string{"addressee", "opening", "aboutMe", "whyMe", "whyCompany"} {
		assert.Contains(t, p, `"`+field+`"`)
	}
}

func TestBuildSubstitutesInstructionSlots(t *testing.T) {
	instr := Instructions{
		Opening:    "Mention the referral from Bob.",
		WhyCompany: "Focus on the climate mission.",
	}
	p := Build(sampleProfile(), samplePosting(), instr)

	assert.Contains(t, p, `For the "opening" section: Mention the referral from Bob.`)
	assert.Contains(t, p, `For the "whyCompany" section: Focus on the climate mission.`)
	assert.NotContains(t, p, `For the "whyMe" section`)
}

func TestBuildEmptySectionsRenderNone(t *testing.T) {
	profile := sampleProfile()
	profile.Projects = nil
	profile.Education = nil
	p := Build(profile, samplePosting(), Instructions{})

	// Both empty lists render the same placeholder.
	assert.Equal(t, 2, strings.Count(p, "- none"))
}
