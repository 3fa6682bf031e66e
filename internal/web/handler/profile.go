package handler

import (
	"net/http"
	"strings"

	"github.com/mcoot/folio/internal/certlist"
	"github.com/mcoot/folio/internal/services/profile"
	"github.com/mcoot/folio/internal/web/middleware"
	"github.com/mcoot/folio/internal/web/templates/pages"
)

// ProfileHandler handles the profile editor
type ProfileHandler struct {
	profile *profile.Service
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *profile.Service) *ProfileHandler {
	return &ProfileHandler{profile: profileService}
}

// View renders the profile editor
func (h *ProfileHandler) View(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, pages.Profile(pages.ProfileData{
		PageData: pageData(r, "Profile"),
		Profile:  middleware.GetAccount(r.Context()),
	}))
}

// Update saves the profile form. Certification rows arrive as parallel
// cert_name[], cert_issuer[] and cert_date[] arrays.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	account := middleware.GetAccount(r.Context())

	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/profile", middleware.FlashDanger, "Error updating profile: "+err.Error())
		return
	}

	form := r.PostForm
	u := profile.Update{
		Username:    strings.TrimSpace(form.Get("username")),
		Email:       strings.TrimSpace(form.Get("email")),
		Tagline:     form.Get("tagline"),
		Bio:         form.Get("bio"),
		Course:      form.Get("course"),
		Faction:     form.Get("faction"),
		AvatarURL:   form.Get("avatar_url"),
		Status:      form.Get("status"),
		Skills:      form.Get("skills"),
		PublicEmail: form.Get("public_email"),
		LinkedIn:    form.Get("linkedin"),
		GitHub:      form.Get("github"),
		NewPassword: form.Get("new_password"),
		Certifications: certlist.FromForm(
			form["cert_name[]"],
			form["cert_issuer[]"],
			form["cert_date[]"],
		),
	}

	if _, err := h.profile.Update(r.Context(), account.ID, u); err != nil {
		redirectWithFlash(w, r, "/profile", middleware.FlashDanger, "Error updating profile: "+err.Error())
		return
	}

	redirectWithFlash(w, r, "/profile", middleware.FlashSuccess, "Profile updated successfully!")
}
