package books

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookdata-api/internal/pkg/response"
)

// Store is the slice of the repository the handler needs.
type Store interface {
	Create(ctx context.Context, book *Book) error
	TitleExists(ctx context.Context, title string) (bool, error)
	CreateMany(ctx context.Context, batch []Book) ([]Book, error)
	FindAll(ctx context.Context) ([]Book, error)
	FindByIDWithAuthor(ctx context.Context, id primitive.ObjectID) (*BookWithAuthor, error)
	GroupByGenre(ctx context.Context) ([]GenreCount, error)
	SetPriceQuantity(ctx context.Context, price, quantity float64) (int64, error)
	RevenueByGenre(ctx context.Context) ([]GenreRevenue, error)
}

// AuthorChecker validates the author reference at write time.
type AuthorChecker interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type Handler struct {
	store   Store
	authors AuthorChecker
}

func NewHandler(store Store, authors AuthorChecker) *Handler {
	return &Handler{store: store, authors: authors}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, 400, "Invalid request format")
		return
	}

	if err := ValidateCreateBook(&req); err != nil {
		response.Error(c, 400, err.Error())
		return
	}

	authorID, err := primitive.ObjectIDFromHex(c.Query("authorId"))
	if err != nil {
		response.Error(c, 400, "A valid authorId query parameter is required")
		return
	}

	exists, err := h.authors.Exists(c.Request.Context(), authorID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !exists {
		response.Error(c, 400, fmt.Sprintf("Author with id %s does not exist", authorID.Hex()))
		return
	}

	book := &Book{
		Title:    req.Title,
		Genre:    req.Genre,
		AuthorID: authorID,
	}

	if err := h.store.Create(c.Request.Context(), book); err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, "Book created successfully", gin.H{"newBook": book})
}

func (h *Handler) CreateMultiple(c *gin.Context) {
	var inputs []BookInput
	if err := c.ShouldBindJSON(&inputs); err != nil || len(inputs) == 0 {
		response.Error(c, 400, "Request body must be a valid and non-empty array")
		return
	}

	// Reject in-batch duplicates before any store write.
	seen := make(map[string]bool, len(inputs))
	for i := range inputs {
		if err := ValidateBookInput(&inputs[i]); err != nil {
			response.Error(c, 400, err.Error())
			return
		}

		key := strings.ToLower(inputs[i].Title)
		if seen[key] {
			response.Error(c, 409, fmt.Sprintf("Duplicate book title %q in the input list", inputs[i].Title))
			return
		}
		seen[key] = true
	}

	batch := make([]Book, 0, len(inputs))
	for _, input := range inputs {
		book := Book{Title: input.Title, Genre: input.Genre}
		if input.AuthorID != "" {
			authorID, err := primitive.ObjectIDFromHex(input.AuthorID)
			if err != nil {
				response.Error(c, 400, fmt.Sprintf("Invalid authorId for book %q", input.Title))
				return
			}
			book.AuthorID = authorID
		}
		batch = append(batch, book)
	}

	// Per-record existence checks against the store before the batch insert.
	for _, book := range batch {
		exists, err := h.store.TitleExists(c.Request.Context(), book.Title)
		if err != nil {
			response.FromError(c, err)
			return
		}
		if exists {
			response.Error(c, 409, fmt.Sprintf("Book with title %q already exists in the database", book.Title))
			return
		}
	}

	createdBooks, err := h.store.CreateMany(c.Request.Context(), batch)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, "Multiple books created successfully", gin.H{"createdBooks": createdBooks})
}

func (h *Handler) List(c *gin.Context) {
	books, err := h.store.FindAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "All Books fetched successfully", gin.H{"books": books})
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Error(c, 400, "Id is required!")
		return
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		response.Error(c, 400, "Invalid book ID")
		return
	}

	book, err := h.store.FindByIDWithAuthor(c.Request.Context(), objectID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if book == nil {
		response.Error(c, 404, fmt.Sprintf("Book with this Id %s does not exist!", id))
		return
	}

	response.Success(c, "Book fetched successfully", gin.H{"data": book})
}

func (h *Handler) GroupByGenre(c *gin.Context) {
	books, err := h.store.GroupByGenre(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "All Books grouped successfully", gin.H{"books": books})
}

func (h *Handler) AddNewFields(c *gin.Context) {
	var req AddFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, 400, "price and quantity must be numbers")
		return
	}

	if err := ValidateAddFields(&req); err != nil {
		response.Error(c, 400, err.Error())
		return
	}

	modified, err := h.store.SetPriceQuantity(c.Request.Context(), *req.Price, *req.Quantity)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "Fields price and quantity added successfully", gin.H{"modifiedCount": modified})
}

func (h *Handler) RevenueByGenre(c *gin.Context) {
	books, err := h.store.RevenueByGenre(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "Books grouped with price and quantity successfully", gin.H{"books": books})
}
