package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recoveryData() map[string]any {
	return map[string]any{
		"CompanyName":    "Deskhive",
		"FullName":       "Ana Garcia",
		"RecoveryLink":   "http://localhost:8080/recover-password?key=abc&token=xyz",
		"ExpiresMinutes": 30,
		"IP":             "203.0.113.9",
		"Location":       "Madrid, Spain",
	}
}

func TestRenderPasswordRecoveryEnglish(t *testing.T) {
	subject, text, html, err := Render(PasswordRecovery, LangEN, recoveryData())

	require.NoError(t, err)
	assert.Contains(t, subject, "Deskhive")
	assert.Contains(t, text, "Ana Garcia")
	assert.Contains(t, text, "http://localhost:8080/recover-password?key=abc&token=xyz")
	assert.Contains(t, text, "30 minutes")
	assert.Contains(t, html, "Choose a new password")
	assert.Contains(t, html, "Madrid, Spain")
}

func TestRenderPasswordRecoverySpanish(t *testing.T) {
	subject, text, _, err := Render(PasswordRecovery, LangES, recoveryData())

	require.NoError(t, err)
	assert.Contains(t, subject, "contraseña")
	assert.Contains(t, text, "Ana Garcia")
	assert.Contains(t, text, "30 minutos")
}

func TestRenderIncludesBrandingWhenConfigured(t *testing.T) {
	data := recoveryData()
	data["LogoURL"] = "https://cdn.deskhive.test/logo.png"
	data["CompanyAddress"] = "12 Queen St, Wellington"

	_, _, html, err := Render(PasswordRecovery, LangEN, data)

	require.NoError(t, err)
	assert.Contains(t, html, "https://cdn.deskhive.test/logo.png")
	assert.Contains(t, html, "12 Queen St, Wellington")

	// Branding is optional; jobs without it render clean.
	_, _, plain, err := Render(PasswordRecovery, LangEN, recoveryData())
	require.NoError(t, err)
	assert.NotContains(t, plain, "img src")
}

func TestRenderFallsBackToEnglish(t *testing.T) {
	subject, _, _, err := Render(Welcome, "fr", map[string]any{
		"CompanyName": "Deskhive",
		"FullName":    "Ana",
		"UserName":    "ana",
		"SupportURL":  "http://localhost:8080/support",
	})

	require.NoError(t, err)
	assert.Equal(t, "Welcome to Deskhive", subject)
}

func TestRenderUnknownTemplateFails(t *testing.T) {
	_, _, _, err := Render("no_such_template", LangEN, nil)
	assert.Error(t, err)
}

func TestSubjectIsTrimmed(t *testing.T) {
	subject, _, _, err := Render(Welcome, LangEN, map[string]any{
		"CompanyName": "Deskhive",
		"FullName":    "Ana",
		"UserName":    "ana",
	})
	require.NoError(t, err)
	assert.Equal(t, subject, "Welcome to Deskhive")
}

func TestFormatGeo(t *testing.T) {
	assert.Equal(t, "Madrid, Madrid, Spain", FormatGeo(Geo{City: "Madrid", Region: "Madrid", Country: "Spain"}))
	assert.Equal(t, "Spain", FormatGeo(Geo{Country: "Spain"}))
	assert.Equal(t, "", FormatGeo(Geo{}))
}
