package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadilmartias/cover-gen/internal/model"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func validProfile() model.Profile {
	return model.Profile{
		Name:  "Jane Doe",
		Email: "jane@x.com",
		Experiences: []model.Experience{
			{Role: "Engineer", Company: "Initech", Description: words(50), StartDate: time.Now()},
		},
		Skills: []string{"Go"},
	}
}

func validPosting() model.JobPosting {
	return model.JobPosting{
		Company:     "Acme",
		Title:       "Backend Engineer",
		Description: words(200),
	}
}

func TestCheckProfileValid(t *testing.T) {
	require.NoError(t, CheckProfile(validProfile()))
}

func TestCheckProfileAggregatesFindings(t *testing.T) {
	p := model.Profile{Email: "not-an-email"}
	err := CheckProfile(p)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, "not valid")
	assert.Contains(t, msg, "at least one skill")
	assert.Contains(t, msg, "at least one experience or project")

	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Findings, 4)
}

func TestCheckProfileWordBand(t *testing.T) {
	p := validProfile()
	p.Experiences[0].Description = words(5)
	err := CheckProfile(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10-300 words")

	p.Experiences[0].Description = words(301)
	require.Error(t, CheckProfile(p))

	p.Experiences[0].Description = words(10)
	require.NoError(t, CheckProfile(p))
	p.Experiences[0].Description = words(300)
	require.NoError(t, CheckProfile(p))
}

func TestCheckProfileProjectCountsAsEntry(t *testing.T) {
	p := validProfile()
	p.Experiences = nil
	p.Projects = []model.Experience{
		{Role: "Side project", Description: words(30)},
	}
	require.NoError(t, CheckProfile(p))
}

func TestCheckJobPostingValid(t *testing.T) {
	require.NoError(t, CheckJobPosting(validPosting()))
}

func TestCheckJobPostingBounds(t *testing.T) {
	j := validPosting()
	j.Company = ""
	j.Title = strings.Repeat("x", MaxTitleLen+1)
	j.Description = "too short"

	err := CheckJobPosting(j)
	require.Error(t, err)

	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Findings, 3)
}
