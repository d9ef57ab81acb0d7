package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"bookmart-be/internal/catalog"
	"bookmart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	svc catalog.Service
}

func NewCatalogHandler(svc catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

type authorRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	BirthDate string `json:"birth_date" binding:"required"`
}

type authorResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	BirthDate string `json:"birth_date"`
}

func toAuthorResponse(a catalog.Author) authorResponse {
	return authorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		FullName:  a.FullName(),
		BirthDate: a.BirthDate.Format("2006-01-02"),
	}
}

type bookRequest struct {
	Title         string  `json:"title" binding:"required"`
	Description   *string `json:"description"`
	AuthorID      uint    `json:"author_id" binding:"required"`
	Price         float64 `json:"price"`
	PublishedDate string  `json:"published_date" binding:"required"`
}

type bookResponse struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	AuthorID      uint    `json:"author_id"`
	Price         float64 `json:"price"`
	PublishedDate string  `json:"published_date"`
}

func toBookResponse(b catalog.Book) bookResponse {
	return bookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		AuthorID:      b.AuthorID,
		Price:         b.Price,
		PublishedDate: b.PublishedDate.Format("2006-01-02"),
	}
}

func catalogStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrTitleTooShort),
		errors.Is(err, catalog.ErrNegativePrice),
		errors.Is(err, catalog.ErrPublishBeforeBirth),
		errors.Is(err, catalog.ErrBirthDateInFuture):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrAuthorNotFound),
		errors.Is(err, catalog.ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrNotOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (h *CatalogHandler) CreateAuthor(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must be YYYY-MM-DD"})
		return
	}

	created, err := h.svc.CreateAuthor(c.Request.Context(), catalog.Author{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: birthDate,
	})
	if err != nil {
		c.JSON(catalogStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toAuthorResponse(created))
}

func (h *CatalogHandler) GetAuthor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
		return
	}

	author, err := h.svc.GetAuthor(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(catalogStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toAuthorResponse(author))
}

func (h *CatalogHandler) ListAuthors(c *gin.Context) {
	authors, err := h.svc.ListAuthors(c.Request.Context())
	if err != nil {
		c.JSON(catalogStatus(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]authorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, toAuthorResponse(a))
	}

	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) CreateBook(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	publishedDate, err := time.Parse("2006-01-02", req.PublishedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "published_date must be YYYY-MM-DD"})
		return
	}

	created, err := h.svc.CreateBook(c.Request.Context(), catalog.Book{
		Title:         req.Title,
		Description:   req.Description,
		AuthorID:      req.AuthorID,
		Price:         req.Price,
		PublishedDate: publishedDate,
		CreatedBy:     userID,
	})
	if err != nil {
		c.JSON(catalogStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toBookResponse(created))
}

func (h *CatalogHandler) GetBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	book, err := h.svc.GetBook(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(catalogStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toBookResponse(book))
}

// ListBooks supports optional search, author_id, min_price and max_price
// query parameters, combined with AND.
func (h *CatalogHandler) ListBooks(c *gin.Context) {
	filter := &catalog.BookFilterInput{}

	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}
	if raw := c.Query("author_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author_id"})
			return
		}
		authorID := uint(id)
		filter.AuthorID = &authorID
	}
	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price"})
			return
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
			return
		}
		filter.MaxPrice = &v
	}

	books, err := h.svc.ListBooks(c.Request.Context(), filter)
	if err != nil {
		c.JSON(catalogStatus(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]bookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}

	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) UpdateBook(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	publishedDate, err := time.Parse("2006-01-02", req.PublishedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "published_date must be YYYY-MM-DD"})
		return
	}

	err = h.svc.UpdateBook(c.Request.Context(), userID, catalog.Book{
		ID:            uint(id),
		Title:         req.Title,
		Description:   req.Description,
		AuthorID:      req.AuthorID,
		Price:         req.Price,
		PublishedDate: publishedDate,
	})
	if err != nil {
		c.JSON(catalogStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "book updated"})
}

func (h *CatalogHandler) DeleteBook(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	if err := h.svc.DeleteBook(c.Request.Context(), userID, uint(id)); err != nil {
		c.JSON(catalogStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "book deleted"})
}
