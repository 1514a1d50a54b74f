package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unilib/backend/internal/database/books"
	"github.com/unilib/backend/internal/entities"
)

// BooksController exposes catalog CRUD.
type BooksController struct {
	books *books.Repository
}

// NewBooksController creates a new books controller.
func NewBooksController(repo *books.Repository) *BooksController {
	return &BooksController{books: repo}
}

type createBookRequest struct {
	Title     string `json:"title" binding:"required"`
	Author    string `json:"author" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Quantity  int    `json:"quantity"`
	Available *int   `json:"available"`
}

type updateBookRequest struct {
	Title    *string `json:"title"`
	Author   *string `json:"author"`
	Category *string `json:"category"`
	Quantity *int    `json:"quantity"`
}

// GetBooks returns the whole catalog, newest first.
func (controller *BooksController) GetBooks(c *gin.Context) {
	list, err := controller.books.GetBooks()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateBook adds a book to the catalog.
func (controller *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title, author and category are required")
		return
	}
	if req.Quantity < 0 || (req.Available != nil && (*req.Available < 0 || *req.Available > req.Quantity)) {
		respondBadRequest(c, "available must be between 0 and quantity")
		return
	}

	book := entities.Book{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
		Quantity: req.Quantity,
	}

	if err := controller.books.CreateBook(&book, req.Available); err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	c.JSON(http.StatusCreated, book)
}

// UpdateBook applies a partial catalog edit.
func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		respondBadRequest(c, "quantity must not be negative")
		return
	}

	book, err := controller.books.UpdateBook(id, books.BookUpdate{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
		Quantity: req.Quantity,
	})
	if err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "update book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// DeleteBook removes a book from the catalog.
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.books.DeleteBook(id); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	c.Status(http.StatusNoContent)
}
