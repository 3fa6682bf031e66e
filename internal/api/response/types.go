package response

import (
	"time"

	"github.com/mcoot/folio/internal/model"
	"github.com/mcoot/folio/internal/services/portfolio"
)

// Certification represents one certification entry
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// Account is the private view of the authenticated account
type Account struct {
	ID             int64           `json:"id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	Tagline        string          `json:"tagline,omitempty"`
	Bio            string          `json:"bio,omitempty"`
	Course         string          `json:"course,omitempty"`
	Faction        string          `json:"faction,omitempty"`
	AvatarURL      string          `json:"avatar_url,omitempty"`
	Status         string          `json:"status,omitempty"`
	Skills         string          `json:"skills,omitempty"`
	PublicEmail    string          `json:"public_email,omitempty"`
	LinkedIn       string          `json:"linkedin,omitempty"`
	GitHub         string          `json:"github,omitempty"`
	Certifications []Certification `json:"certifications"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AccountFromModel converts a model.Account, leaving out the password hash
func AccountFromModel(a *model.Account) Account {
	return Account{
		ID:             int64(a.ID),
		Username:       a.Username,
		Email:          a.Email,
		Tagline:        a.Tagline,
		Bio:            a.Bio,
		Course:         a.Course,
		Faction:        a.Faction,
		AvatarURL:      a.AvatarURL,
		Status:         a.Status,
		Skills:         a.Skills,
		PublicEmail:    a.PublicEmail,
		LinkedIn:       a.LinkedIn,
		GitHub:         a.GitHub,
		Certifications: certificationsFromModel(a.Certifications),
		CreatedAt:      a.CreatedAt,
	}
}

func certificationsFromModel(certs []model.Certification) []Certification {
	out := make([]Certification, len(certs))
	for i, c := range certs {
		out[i] = Certification{Name: c.Name, Issuer: c.Issuer, Date: c.Date}
	}
	return out
}

// Session is the response after logging in
type Session struct {
	Token     string    `json:"session_token"`
	ExpiresAt time.Time `json:"expires_at"`
	Account   Account   `json:"account"`
}

// SessionFromModel creates a Session response for an account
func SessionFromModel(s *model.Session, a *model.Account) Session {
	return Session{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		Account:   AccountFromModel(a),
	}
}

// Project represents a project in a public portfolio
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectFromModel converts a model.Project
func ProjectFromModel(p *model.Project) Project {
	var imageURL string
	if p.HasImage() {
		imageURL = "/static/uploads/" + p.ImageFile
	}
	return Project{
		ID:          int64(p.ID),
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    imageURL,
		CreatedAt:   p.CreatedAt,
	}
}

// Portfolio is the public view of an account and its projects
type Portfolio struct {
	Username       string          `json:"username"`
	Tagline        string          `json:"tagline,omitempty"`
	Bio            string          `json:"bio,omitempty"`
	Course         string          `json:"course,omitempty"`
	Faction        string          `json:"faction,omitempty"`
	AvatarURL      string          `json:"avatar_url,omitempty"`
	Status         string          `json:"status,omitempty"`
	Skills         string          `json:"skills,omitempty"`
	PublicEmail    string          `json:"public_email,omitempty"`
	LinkedIn       string          `json:"linkedin,omitempty"`
	GitHub         string          `json:"github,omitempty"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
}

// PortfolioFromView converts a loaded portfolio
// The login email is private and never included.
func PortfolioFromView(v *portfolio.View) Portfolio {
	a := v.Account
	projects := make([]Project, len(v.Projects))
	for i, p := range v.Projects {
		projects[i] = ProjectFromModel(p)
	}
	return Portfolio{
		Username:       a.Username,
		Tagline:        a.Tagline,
		Bio:            a.Bio,
		Course:         a.Course,
		Faction:        a.Faction,
		AvatarURL:      a.AvatarURL,
		Status:         a.Status,
		Skills:         a.Skills,
		PublicEmail:    a.PublicEmail,
		LinkedIn:       a.LinkedIn,
		GitHub:         a.GitHub,
		Certifications: certificationsFromModel(a.Certifications),
		Projects:       projects,
	}
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
