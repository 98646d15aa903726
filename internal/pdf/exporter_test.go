package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadilmartias/cover-gen/internal/model"
)

func TestRenderHTMLFillsAllSections(t *testing.T) {
	letter := &model.CoverLetter{
		Addressee:  "Dear Hiring Team at Acme,",
		Opening:    "Opening paragraph.",
		AboutMe:    "About paragraph.",
		WhyMe:      "Why me paragraph.",
		WhyCompany: "Why company paragraph.",
	}
	profile := &model.Profile{
		Name:  "Jane Doe",
		Email: "jane@x.com",
		Phone: "+1 555 0100",
	}

	html, err := RenderHTML(letter, profile)
	require.NoError(t, err)

	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "jane@x.com")
	assert.Contains(t, html, "Dear Hiring Team at Acme,")
	assert.Contains(t, html, "Opening paragraph.")
	assert.Contains(t, html, "Why company paragraph.")
}

func TestRenderHTMLEscapesMarkup(t *testing.T) {
	letter := &model.CoverLetter{Opening: `<script>alert("x")</script>`}
	profile := &model.Profile{Name: "Jane"}

	html, err := RenderHTML(letter, profile)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestSuggestFilename(t *testing.T) {
	cases := []struct {
		company  string
		position string
		want     string
	}{
		{"Acme", "Backend Engineer", "Cover_Letter_Acme_Backend_Engineer.pdf"},
		{"Acme GmbH & Co. KG", "C++/Go Dev", "Cover_Letter_Acme_GmbH__Co_KG_CGo_Dev.pdf"},
		{"", "", "Cover_Letter.pdf"},
		{"  Acme  ", "", "Cover_Letter_Acme.pdf"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SuggestFilename(c.company, c.position))
	}
}
