package templates

import (
	"bytes"
	"embed"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Template base names.
const (
	PasswordRecovery = "password_recovery"
	Welcome          = "welcome"
)

// Languages with template translations. Anything else falls back to English.
const (
	LangEN = "en"
	LangES = "es"
)

func normalizeLang(lang string) string {
	if strings.EqualFold(lang, LangES) {
		return LangES
	}
	return LangEN
}

func baseFuncs() map[string]any {
	return map[string]any{
		"now":        func() time.Time { return time.Now().UTC() },
		"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
		"upper":      strings.ToUpper,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

// renderFile loads and renders a single template file from the embedded FS.
func renderFile(filename string, isHTML bool, data any) (string, error) {
	var buf bytes.Buffer
	if isHTML {
		tpl, err := htmpl.New(filename).Funcs(htmlFuncMap).ParseFS(FS, filename)
		if err != nil {
			return "", err
		}
		if err := tpl.Execute(&buf, data); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	tpl, err := texttpl.New(filename).Funcs(textFuncMap).ParseFS(FS, filename)
	if err != nil {
		return "", err
	}
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render loads and renders subject, text, and html templates for the given
// base name and language.
// Expects: <name>.<lang>.subject.tmpl, <name>.<lang>.text.tmpl, <name>.<lang>.html.tmpl
func Render(name, lang string, data any) (subject string, text string, html string, err error) {
	prefix := name + "." + normalizeLang(lang)
	subject, err = renderFile(prefix+".subject.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	subject = strings.TrimSpace(subject)
	text, err = renderFile(prefix+".text.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderFile(prefix+".html.tmpl", true, data)
	if err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}
