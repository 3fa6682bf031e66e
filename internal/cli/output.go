package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Account:
		o.printAccount(v)
	case SessionResult:
		o.printSession(v)
	case Portfolio:
		o.printPortfolio(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Certification response type (matches API)
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// Account response type
type Account struct {
	ID             int64           `json:"id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	Tagline        string          `json:"tagline,omitempty"`
	Course         string          `json:"course,omitempty"`
	Certifications []Certification `json:"certifications"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SessionResult combines account and token
type SessionResult struct {
	Token     string    `json:"session_token"`
	ExpiresAt time.Time `json:"expires_at"`
	Account   Account   `json:"account"`
}

// Project response type
type Project struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Portfolio response type
type Portfolio struct {
	Username       string          `json:"username"`
	Tagline        string          `json:"tagline,omitempty"`
	Bio            string          `json:"bio,omitempty"`
	Course         string          `json:"course,omitempty"`
	Faction        string          `json:"faction,omitempty"`
	Status         string          `json:"status,omitempty"`
	Skills         string          `json:"skills,omitempty"`
	PublicEmail    string          `json:"public_email,omitempty"`
	LinkedIn       string          `json:"linkedin,omitempty"`
	GitHub         string          `json:"github,omitempty"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printAccount(a Account) {
	o.printf("Account: %s (%d)\n", a.Username, a.ID)
	o.printf("Email: %s\n", a.Email)
	if a.Tagline != "" {
		o.printf("Tagline: %s\n", a.Tagline)
	}
	o.printf("Certifications: %d\n", len(a.Certifications))
}

func (o *Output) printSession(s SessionResult) {
	o.printf("Logged in as %s\n", s.Account.Username)
	o.printf("Session expires: %s\n", s.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printPortfolio(p Portfolio) {
	o.printf("%s's Portfolio\n", p.Username)
	for _, field := range []struct{ label, value string }{
		{"Tagline", p.Tagline},
		{"Course", p.Course},
		{"Faction", p.Faction},
		{"Status", p.Status},
		{"Skills", p.Skills},
		{"Email", p.PublicEmail},
		{"LinkedIn", p.LinkedIn},
		{"GitHub", p.GitHub},
	} {
		if field.value != "" {
			o.printf("%s: %s\n", field.label, field.value)
		}
	}
	if p.Bio != "" {
		o.printf("\n%s\n", p.Bio)
	}

	if len(p.Certifications) > 0 {
		o.printf("\nCertifications:\n")
		for _, c := range p.Certifications {
			o.printf("  - %s — %s (%s)\n", c.Name, c.Issuer, c.Date)
		}
	}

	o.printf("\nProjects (%d):\n", len(p.Projects))
	for _, pr := range p.Projects {
		o.printf("  - %s\n", pr.Title)
		if pr.Description != "" {
			o.printf("    %s\n", pr.Description)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	o.printf("Status: %s\n", h.Status)
}
