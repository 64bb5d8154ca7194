package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"food-menu/services"
	"food-menu/session"

	"github.com/gorilla/mux"
)

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.menu.Dashboard(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("build dashboard")
		h.flash(r, session.FlashError, "Could not load the menu data.")
	}
	h.render(w, r, http.StatusOK, "admin", pageData{
		Title:              "Admin",
		Dashboard:          d,
		CategoriesEditable: h.admin.CategoriesEditable(),
	})
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	in, closeFile, err := h.productInput(r)
	defer closeFile()
	if err != nil {
		h.failed(r, "add product", err)
		h.redirect(w, r, "/admin")
		return
	}
	p, err := h.admin.CreateProduct(r.Context(), in)
	if err != nil {
		h.failed(r, "add product", err)
		h.redirect(w, r, "/admin")
		return
	}
	h.flash(r, session.FlashSuccess, fmt.Sprintf("Product '%s' added.", p.Name))
	h.redirect(w, r, "/admin")
}

func (h *Handler) editProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.flash(r, session.FlashError, "Invalid product id.")
		h.redirect(w, r, "/admin")
		return
	}
	in, closeFile, err := h.productInput(r)
	defer closeFile()
	if err != nil {
		h.failed(r, "edit product", err)
		h.redirect(w, r, "/admin")
		return
	}
	p, err := h.admin.UpdateProduct(r.Context(), id, in)
	switch {
	case errors.Is(err, services.ErrNotFound):
		h.flash(r, session.FlashError, fmt.Sprintf("Product #%d not found.", id))
	case err != nil:
		h.failed(r, "edit product", err)
	default:
		h.flash(r, session.FlashSuccess, fmt.Sprintf("Product '%s' updated.", p.Name))
	}
	h.redirect(w, r, "/admin")
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.flash(r, session.FlashError, "Invalid product id.")
		h.redirect(w, r, "/admin")
		return
	}
	p, err := h.admin.DeleteProduct(r.Context(), id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		h.flash(r, session.FlashError, fmt.Sprintf("Product #%d not found.", id))
	case err != nil:
		h.failed(r, "delete product", err)
	default:
		h.flash(r, session.FlashSuccess, fmt.Sprintf("Product '%s' deleted.", p.Name))
	}
	h.redirect(w, r, "/admin")
}

func (h *Handler) addCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.failed(r, "add category", err)
		h.redirect(w, r, "/admin")
		return
	}
	c, err := h.admin.CreateCategory(r.Context(), services.CategoryInput{
		Name:      r.PostForm.Get("name"),
		SortOrder: formInt(r.PostForm.Get("sort_order")),
	})
	if err != nil {
		h.failed(r, "add category", err)
	} else {
		h.flash(r, session.FlashSuccess, fmt.Sprintf("Category '%s' added.", c.Name))
	}
	h.redirect(w, r, "/admin")
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.failed(r, "update category", err)
		h.redirect(w, r, "/admin")
		return
	}
	id, err := strconv.ParseInt(r.PostForm.Get("id"), 10, 64)
	if err != nil {
		h.flash(r, session.FlashError, "Invalid category id.")
		h.redirect(w, r, "/admin")
		return
	}
	c, err := h.admin.UpdateCategory(r.Context(), services.CategoryInput{
		ID:        id,
		Name:      r.PostForm.Get("name"),
		SortOrder: formInt(r.PostForm.Get("sort_order")),
	})
	switch {
	case errors.Is(err, services.ErrNotFound):
		h.flash(r, session.FlashError, fmt.Sprintf("Category #%d not found.", id))
	case err != nil:
		h.failed(r, "update category", err)
	default:
		h.flash(r, session.FlashSuccess, fmt.Sprintf("Category '%s' updated.", c.Name))
	}
	h.redirect(w, r, "/admin")
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.flash(r, session.FlashError, "Invalid category id.")
		h.redirect(w, r, "/admin")
		return
	}
	err := h.admin.DeleteCategory(r.Context(), id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		h.flash(r, session.FlashError, fmt.Sprintf("Category #%d not found.", id))
	case err != nil:
		h.failed(r, "delete category", err)
	default:
		h.flash(r, session.FlashSuccess, "Category deleted.")
	}
	h.redirect(w, r, "/admin")
}

// failed logs err and queues a user-facing message for it.
func (h *Handler) failed(r *http.Request, action string, err error) {
	if errors.Is(err, services.ErrInvalidInput) {
		h.log.Info().Err(err).Str("action", action).Msg("rejected admin input")
		h.flash(r, session.FlashError, fmt.Sprintf("Could not %s: %s", action, inputReason(err)))
		return
	}
	h.log.Error().Err(err).Str("action", action).Msg("admin action failed")
	h.flash(r, session.FlashError, fmt.Sprintf("Could not %s. Please try again.", action))
}

// inputReason strips the wrapping context from an ErrInvalidInput chain.
func inputReason(err error) string {
	msg := err.Error()
	if _, after, ok := strings.Cut(msg, services.ErrInvalidInput.Error()+": "); ok {
		return after
	}
	return msg
}

// productInput reads the product form. The returned func closes the uploaded file.
func (h *Handler) productInput(r *http.Request) (services.ProductInput, func(), error) {
	noop := func() {}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return services.ProductInput{}, noop, fmt.Errorf("%w: %v", services.ErrInvalidInput, err)
		}
		if err := r.ParseForm(); err != nil {
			return services.ProductInput{}, noop, fmt.Errorf("%w: %v", services.ErrInvalidInput, err)
		}
	}

	price, err := services.ParsePrice(r.PostForm.Get("price"))
	if err != nil {
		return services.ProductInput{}, noop, err
	}
	in := services.ProductInput{
		Name:        formValue(r, "name"),
		Description: formValue(r, "description"),
		Price:       price,
		Category:    strings.TrimSpace(r.PostForm.Get("category")),
	}

	file, header, err := r.FormFile("image_file")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			h.log.Warn().Err(err).Msg("read image_file")
		}
		return in, noop, nil
	}
	in.Image = &services.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}
	return in, func() { file.Close() }, nil
}

// formValue returns nil when key is absent from the form.
func formValue(r *http.Request, key string) *string {
	vs, ok := r.PostForm[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}

func formInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil
}
