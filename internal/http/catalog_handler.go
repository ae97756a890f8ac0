package http

import (
	"net/http"

	"github.com/VedantKadlaKK/bookverse/internal/catalog"
	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	responder
	catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{responder: newResponder(logger), catalog: c}
}

// GET /api/v1/books?q=&genre=
func (h *CatalogHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	genre := domain.Genre(r.URL.Query().Get("genre"))
	if genre != "" && !genre.Valid() {
		h.respondError(w, http.StatusBadRequest, "invalid_genre", "unknown genre "+string(genre))
		return
	}
	h.respondJSON(w, http.StatusOK, h.catalog.Search(r.URL.Query().Get("q"), genre))
}

// GET /api/v1/books/suggestions?q=
func (h *CatalogHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.catalog.Suggest(r.URL.Query().Get("q")))
}

// GET /api/v1/books/{book_id}
func (h *CatalogHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := bookIDParam(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "invalid_book_id", "book_id must be a positive integer")
		return
	}
	book, err := h.catalog.Find(id)
	if err != nil {
		h.handleShopError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, book)
}

// GET /api/v1/genres
func (h *CatalogHandler) Genres(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, h.catalog.Genres())
}
