package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/poiesic/versefinder/search"
)

type recommendRequest struct {
	Text       string `json:"text"`
	K          int    `json:"k"`
	Candidates int    `json:"candidates"`
}

type passage struct {
	Book    string  `json:"book"`
	Chapter int     `json:"chapter"`
	Verse   int     `json:"verse"`
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
	Why     string  `json:"why"`
}

type recommendResponse struct {
	Query   string    `json:"query"`
	Results []passage `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"title":     apiTitle,
		"health":    "/health",
		"recommend": "/recommend",
		"models": map[string]any{
			"encoder":  s.encoderModel,
			"reranker": s.searcher.RerankerAvailable(),
		},
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"ok":       true,
		"verses":   s.searcher.VerseCount(),
		"reranker": s.searcher.RerankerAvailable(),
	})
}

func (s *Server) handleRecommend(c echo.Context) error {
	// Defaults survive bind when the field is absent from the body.
	req := recommendRequest{K: 3, Candidates: 40}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	results, err := s.searcher.Recommend(c.Request().Context(), req.Text, req.K, req.Candidates)
	if err != nil {
		switch {
		case errors.Is(err, search.ErrQueryTooShort):
			return c.JSON(http.StatusBadRequest,
				errorResponse{Error: "Please enter at least 10 words for better context."})
		case errors.Is(err, search.ErrEncodeFailed), errors.Is(err, search.ErrRerankFailed):
			s.logger.Error("AI service unavailable", "err", err)
			return c.JSON(http.StatusBadGateway,
				errorResponse{Error: "AI service unavailable, try again later"})
		default:
			s.logger.Error("recommendation failed", "err", err)
			return c.JSON(http.StatusInternalServerError,
				errorResponse{Error: "internal error"})
		}
	}

	response := recommendResponse{
		Query:   req.Text,
		Results: make([]passage, len(results)),
	}
	for i, result := range results {
		response.Results[i] = passage{
			Book:    result.Record.Book,
			Chapter: result.Record.Chapter,
			Verse:   result.Record.Verse,
			Text:    result.Record.Text,
			Score:   result.Score,
			Why:     result.Why,
		}
	}
	return c.JSON(http.StatusOK, response)
}
