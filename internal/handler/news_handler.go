package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/twaasoulElm3refa/editor-tool/pkg/news"
)

type NewsHandler struct {
	news     news.Searcher
	language string
}

func NewNewsHandler(searcher news.Searcher, language string) *NewsHandler {
	return &NewsHandler{news: searcher, language: language}
}

// Search is a diagnostic passthrough to the news adapter. Provider failures
// degrade to an empty result list, same as in a chat turn.
func (h *NewsHandler) Search(c *gin.Context) {
	query := c.Query("q")

	items, err := h.news.Search(query, h.language, maxNewsItems)
	if err != nil {
		slog.Warn("news search failed", "error", err, "query", query)
		items = nil
	}

	if items == nil {
		items = []news.Item{}
	}

	c.JSON(http.StatusOK, NewsSearchResponse{
		Query:   query,
		Results: items,
	})
}
