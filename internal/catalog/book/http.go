// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/middleware"
	requestutil "github.com/taibuivan/shelfmark/internal/platform/request"
	"github.com/taibuivan/shelfmark/internal/platform/respond"
	"github.com/taibuivan/shelfmark/internal/platform/sec"
	"github.com/taibuivan/shelfmark/pkg/pagination"
)

// dateLayout is the wire format for date-only query parameters and fields.
const dateLayout = "2006-01-02"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listBooks)
	router.Get("/{id}", handler.getBook)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createBook)
		adminRoute.Put("/{id}", handler.updateBook)
		adminRoute.Delete("/{id}", handler.deleteBook)
	})
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter, err := filterFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sortExpr := request.URL.Query().Get("sort")

	books, total, err := handler.service.ListBooks(request.Context(), filter, sortExpr, paginationParams.Size, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Size, total))
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateBook(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateBook(request.Context(), bookID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteBook(request.Context(), bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// filterFromRequest parses the optional listing predicates from query
// parameters. Malformed values fail the request instead of being dropped.
func filterFromRequest(request *http.Request) (Filter, error) {
	var filter Filter
	query := request.URL.Query()

	if raw := query.Get("authorId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, apperr.ValidationError("Invalid authorId parameter")
		}
		filter.AuthorID = &id
	}

	if raw := query.Get("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, apperr.ValidationError("Invalid categoryId parameter")
		}
		filter.CategoryID = &id
	}

	if raw := query.Get("ratingMin"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, apperr.ValidationError("Invalid ratingMin parameter")
		}
		filter.RatingMin = &value
	}

	if raw := query.Get("ratingMax"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, apperr.ValidationError("Invalid ratingMax parameter")
		}
		filter.RatingMax = &value
	}

	if raw := query.Get("publishedStart"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, apperr.ValidationError("Invalid publishedStart parameter (expected YYYY-MM-DD)")
		}
		filter.PublishedStart = &date
	}

	if raw := query.Get("publishedEnd"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, apperr.ValidationError("Invalid publishedEnd parameter (expected YYYY-MM-DD)")
		}
		filter.PublishedEnd = &date
	}

	return filter, nil
}
