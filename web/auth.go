package web

import (
	"net/http"

	"food-menu/session"
)

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", pageData{Title: "Login"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "login", pageData{Title: "Login", Error: "Invalid form."})
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if !h.verifier.Verify(username, password) {
		h.log.Info().Str("username", username).Msg("admin login failed")
		h.render(w, r, http.StatusUnauthorized, "login", pageData{
			Title: "Login",
			Error: "Invalid username or password. Please try again.",
		})
		return
	}

	s := h.session(r)
	h.sessions.Renew(s)
	s.SetLoggedIn(true)
	h.log.Info().Str("username", username).Msg("admin logged in")
	h.redirect(w, r, "/admin")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.session(r).SetLoggedIn(false)
	h.flash(r, session.FlashInfo, "You have been logged out.")
	h.redirect(w, r, "/menu")
}
