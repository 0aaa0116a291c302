package api

import (
	"net/http"

	"github.com/rpupo63/projectblox-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type categoryHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.CategoryRepo
}

func newCategoryHandler(categoryRepo *database.CategoryRepo) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
	}
}

// getAllCategories lists every category in display order
// @Summary Get all categories
// @Description Retrieves all categories ordered by sort order
// @Tags Categories
// @Produce json
// @Success 200 {array} models.Category "Ordered categories"
// @Failure 500 {object} ErrorResponse "Failed to fetch categories"
// @Router /api/categories [get]
func (h categoryHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapFetchError("Failed to fetch categories", err))
			return
		}

		h.responder.WriteJSON(w, categories)
	}
}
