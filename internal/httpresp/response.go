package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// Página de listagem com o resumo por filtro.
type PageResponse[T any] struct {
	Data       []T    `json:"data"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Busca      string `json:"busca"`
	Filtro     string `json:"filtro"`
	Resumo     any    `json:"resumo,omitempty"`
}

// Resposta das operações de escrita.
type MutationResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	RedirectURL string `json:"redirect_url,omitempty"`
	Data        any    `json:"data,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func Page[T any](c *gin.Context, resp PageResponse[T]) {
	if resp.Data == nil {
		resp.Data = []T{}
	}
	c.JSON(http.StatusOK, resp)
}

func Mutation(c *gin.Context, status int, message, redirectURL string, data any) {
	c.JSON(status, MutationResponse{
		Success:     true,
		Message:     message,
		RedirectURL: redirectURL,
		Data:        data,
	})
}
