// Package report renders a computed plan as a localized markdown report.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"math"
	"path"
	"strings"
	"text/template"

	"github.com/iwvelando/finance-guide/internal/plan"
	"github.com/iwvelando/finance-guide/pkg/constants"
	"github.com/iwvelando/finance-guide/pkg/finance"
	"github.com/iwvelando/finance-guide/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml templates/*.tmpl
var assets embed.FS

const reportTemplate = "report.md.tmpl"

// Supported lists the report languages; the first one is the fallback.
var Supported = []language.Tag{
	language.Italian,
	language.English,
	language.German,
}

var matcher = language.NewMatcher(Supported)

// ParseLanguage resolves a language code to a supported report language.
// Anything that does not match resolves to Italian.
func ParseLanguage(code string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return Supported[0]
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Supported[0]
	}
	return Supported[index]
}

// Renderer holds the parsed report template and message catalog.
type Renderer struct {
	template *template.Template
	catalog  *catalog.Builder
}

type reportData struct {
	Plan       plan.Plan
	FundMonths int
}

// NewRenderer loads the embedded locales and report template.
func NewRenderer() (*Renderer, error) {
	builder, err := loadCatalog(assets)
	if err != nil {
		return nil, err
	}

	// Placeholders; Render binds the per-language implementations.
	funcs := template.FuncMap{
		"t":       func(key string, args ...interface{}) string { return key },
		"money":   func(amount float64) string { return format.Currency(amount) },
		"abs":     math.Abs,
		"months":  monthCount,
		"warning": func(w plan.Warning) string { return w.String() },
	}
	tmpl, err := template.New(reportTemplate).Funcs(funcs).ParseFS(assets, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}

	return &Renderer{
		template: tmpl,
		catalog:  builder,
	}, nil
}

func loadCatalog(fsys fs.FS) (*catalog.Builder, error) {
	files, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to list locales: %w", err)
	}

	builder := catalog.NewBuilder(catalog.Fallback(Supported[0]))
	for _, file := range files {
		tag, err := language.Parse(strings.TrimSuffix(path.Base(file), path.Ext(file)))
		if err != nil {
			return nil, fmt.Errorf("invalid locale file name %s: %w", file, err)
		}

		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", file, err)
		}

		var messages map[string]string
		if err := yaml.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", file, err)
		}

		for key, msg := range messages {
			if err := builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("failed to add message %s to %s: %w", key, tag, err)
			}
		}
	}
	return builder, nil
}

func (r *Renderer) printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(r.catalog))
}

// Text returns the message for key in the given language. A key without a
// message is returned as is.
func (r *Renderer) Text(lang, key string, args ...interface{}) string {
	return r.printer(ParseLanguage(lang)).Sprintf(key, args...)
}

// Render produces the markdown report of a plan in the given language.
func (r *Renderer) Render(p plan.Plan, lang string) (string, error) {
	tag := ParseLanguage(lang)
	printer := r.printer(tag)
	locale := tag.String()

	t := func(key string, args ...interface{}) string {
		return printer.Sprintf(key, args...)
	}

	tmpl, err := r.template.Clone()
	if err != nil {
		return "", fmt.Errorf("failed to clone report template: %w", err)
	}
	tmpl.Funcs(template.FuncMap{
		"t": t,
		"money": func(amount float64) string {
			return format.LocalizedCurrency(amount, locale)
		},
		"warning": func(w plan.Warning) string {
			switch w.Code {
			case plan.WarnUnknownRiskProfile:
				fallback := t("risk." + finance.DefaultRiskProfile.String())
				return t("warning."+string(w.Code), w.Subject, fallback)
			default:
				return t("warning."+string(w.Code), w.Subject)
			}
		},
	})

	var buf bytes.Buffer
	data := reportData{
		Plan:       p,
		FundMonths: constants.EmergencyFundMonths,
	}
	if err := tmpl.ExecuteTemplate(&buf, reportTemplate, data); err != nil {
		return "", fmt.Errorf("failed to render report in %s: %w", locale, err)
	}
	return buf.String(), nil
}

func monthCount(m *finance.Months) int {
	if m == nil {
		return 0
	}
	count, _ := m.Count()
	return count
}
