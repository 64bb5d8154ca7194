package web

import (
	"net/http"

	"food-menu/session"
)

func (h *Handler) showMenu(w http.ResponseWriter, r *http.Request) {
	view, err := h.menu.View(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("build menu")
		h.flash(r, session.FlashError, "The menu is unavailable right now. Please try again later.")
	}
	h.render(w, r, http.StatusOK, "menu", pageData{Title: "Menu", Menu: view})
}
