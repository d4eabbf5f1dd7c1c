package authors

import (
	"context"

	"github.com/gin-gonic/gin"

	"bookdata-api/internal/pkg/response"
)

// Store is the slice of the repository the handler needs.
type Store interface {
	Create(ctx context.Context, author *Author) error
	FindAll(ctx context.Context) ([]Author, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, 400, "Invalid request format")
		return
	}

	if err := ValidateCreateAuthor(&req); err != nil {
		response.Error(c, 400, err.Error())
		return
	}

	author := &Author{
		Name:      req.Name,
		BirthYear: *req.BirthYear,
	}

	if err := h.store.Create(c.Request.Context(), author); err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, "Author created successfully", gin.H{"newAuthor": author})
}

func (h *Handler) List(c *gin.Context) {
	authors, err := h.store.FindAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	// An empty collection is a valid success, not a 404.
	response.Success(c, "All Authors fetched successfully", gin.H{"authors": authors})
}
