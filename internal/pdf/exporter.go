// Package pdf renders a cover letter to PDF by filling an HTML template
// and printing it through headless Chromium.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"regexp"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/fadilmartias/cover-gen/internal/model"
)

const maxRenderAttempts = 3

// Exporter turns a letter plus minimal context into PDF bytes and a
// suggested filename.
type Exporter interface {
	Export(ctx context.Context, letter *model.CoverLetter, profile *model.Profile, company, position string) ([]byte, string, error)
}

const letterTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Georgia, serif; font-size: 12pt; line-height: 1.5; margin: 2.5cm; color: #1a1a1a; }
  .sender { margin-bottom: 2em; }
  .sender .name { font-weight: bold; font-size: 14pt; }
  .addressee { margin-bottom: 1.5em; }
  p { margin: 0 0 1em 0; text-align: justify; }
  .signoff { margin-top: 2em; }
</style>
</head>
<body>
  <div class="sender">
    <div class="name">{{.Name}}</div>
    <div>{{.Email}}{{if .Phone}} · {{.Phone}}{{end}}</div>
    {{if .Location}}<div>{{.Location}}</div>{{end}}
  </div>
  <div class="addressee">{{.Addressee}}</div>
  <p>{{.Opening}}</p>
  <p>{{.AboutMe}}</p>
  <p>{{.WhyMe}}</p>
  <p>{{.WhyCompany}}</p>
  <div class="signoff">
    <p>Sincerely,<br>{{.Name}}</p>
  </div>
</body>
</html>`

type letterData struct {
	Name       string
	Email      string
	Phone      string
	Location   string
	Addressee  string
	Opening    string
	AboutMe    string
	WhyMe      string
	WhyCompany string
}

var tmpl = template.Must(template.New("letter").Parse(letterTemplate))

// ChromiumExporter renders through playwright. Construct once; the
// browser is launched per export and closed again, which is slow but
// keeps no Chromium idling between the rare export calls.
type ChromiumExporter struct{}

func NewChromiumExporter() *ChromiumExporter {
	return &ChromiumExporter{}
}

func (e *ChromiumExporter) Export(ctx context.Context, letter *model.CoverLetter, profile *model.Profile, company, position string) ([]byte, string, error) {
	html, err := RenderHTML(letter, profile)
	if err != nil {
		return nil, "", err
	}

	var lastErr error
	for attempt := 1; attempt <= maxRenderAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		pdfBytes, err := renderPDF(html)
		if err == nil {
			return pdfBytes, SuggestFilename(company, position), nil
		}
		lastErr = err
		log.Printf("pdf render attempt %d/%d failed: %v", attempt, maxRenderAttempts, err)
	}
	return nil, "", fmt.Errorf("pdf render failed after %d attempts: %w", maxRenderAttempts, lastErr)
}

// RenderHTML fills the letter template. Split out so it can be tested
// without a browser.
func RenderHTML(letter *model.CoverLetter, profile *model.Profile) (string, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, letterData{
		Name:       profile.Name,
		Email:      profile.Email,
		Phone:      profile.Phone,
		Location:   profile.Location,
		Addressee:  letter.Addressee,
		Opening:    letter.Opening,
		AboutMe:    letter.AboutMe,
		WhyMe:      letter.WhyMe,
		WhyCompany: letter.WhyCompany,
	})
	if err != nil {
		return "", fmt.Errorf("execute letter template: %w", err)
	}
	return buf.String(), nil
}

func renderPDF(html string) ([]byte, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not open page: %w", err)
	}
	if err := page.SetContent(html, playwright.PageSetContentOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return nil, fmt.Errorf("could not set page content: %w", err)
	}

	pdfBytes, err := page.PDF(playwright.PagePdfOptions{
		Format:          playwright.String("A4"),
		PrintBackground: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("could not render pdf: %w", err)
	}
	return pdfBytes, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SuggestFilename builds "Cover_Letter_<Company>_<Position>.pdf" with
// filesystem-unsafe characters stripped.
func SuggestFilename(company, position string) string {
	clean := func(s string) string {
		s = strings.TrimSpace(s)
		s = strings.ReplaceAll(s, " ", "_")
		return unsafeFilenameChars.ReplaceAllString(s, "")
	}
	name := "Cover_Letter"
	if c := clean(company); c != "" {
		name += "_" + c
	}
	if p := clean(position); p != "" {
		name += "_" + p
	}
	return name + ".pdf"
}
