package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title    string
	Heading  string
	CTALabel string
	CTAURL   string
}

type verificationEmailData struct {
	baseEmailData
	Name string
}

type passwordResetEmailData struct {
	baseEmailData
}

type taskAssignedEmailData struct {
	baseEmailData
	AssigneeName string
	LeadName     string
	DueDate      string
}

type taskReminderEmailData struct {
	baseEmailData
	AssigneeName string
	TaskTitle    string
	DueDate      string
}

func renderEmailTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}

	return buf.String(), nil
}
