package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/factlens/internal/aggregate"
	"github.com/mohammad-safakhou/factlens/models"
)

type AnalysisHandler struct {
	Analyzer Analyzer
}

func (h *AnalysisHandler) Register(g *echo.Group) {
	g.POST("/check-url", h.checkURL)
	g.POST("/ask-article", h.askArticle)
}

type checkURLRequest struct {
	URL string `json:"url"`
}

func (h *AnalysisHandler) checkURL(c echo.Context) error {
	var req checkURLRequest
	if err := c.Bind(&req); err != nil || req.URL == "" {
		return writeError(http.StatusBadRequest, "URL is required", "Please provide a valid URL", err)
	}
	report, err := h.Analyzer.CheckURL(c.Request().Context(), req.URL)
	if err != nil {
		var v *models.ValidationError
		if errors.As(err, &v) {
			return writeError(http.StatusBadRequest, v.Code, v.Message, err)
		}
		return writeError(http.StatusInternalServerError, "Analysis failed", "Failed to analyze the URL. Please try again.", err).
			withDetails(err.Error())
	}
	return c.JSON(http.StatusOK, report)
}

type askRequest struct {
	Question       string `json:"question"`
	ArticleContent string `json:"articleContent"`
}

func (h *AnalysisHandler) askArticle(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return writeError(http.StatusBadRequest, "Missing data", "Please provide both question and article content", err)
	}
	answer, err := h.Analyzer.Ask(req.Question, req.ArticleContent)
	if err != nil {
		var v *models.ValidationError
		if errors.As(err, &v) {
			return writeError(http.StatusBadRequest, v.Code, v.Message, err)
		}
		return writeError(http.StatusInternalServerError, "Failed to process question", err.Error(), err)
	}
	return c.JSON(http.StatusOK, answer)
}

type NewsHandler struct {
	News News
}

func (h *NewsHandler) Register(g *echo.Group) {
	g.GET("/trending", h.trending)
	g.GET("/search", h.search)
}

func (h *NewsHandler) trending(c echo.Context) error {
	articles, err := h.News.Trending(c.Request().Context())
	if err != nil {
		return writeError(http.StatusInternalServerError, "Failed to fetch news", err.Error(), err)
	}
	return c.JSON(http.StatusOK, articles)
}

func (h *NewsHandler) search(c echo.Context) error {
	f := aggregate.Filter{
		Query:    c.QueryParam("q"),
		Source:   c.QueryParam("source"),
		Category: c.QueryParam("category"),
	}
	articles, err := h.News.Search(c.Request().Context(), f)
	if err != nil {
		var v *models.ValidationError
		if errors.As(err, &v) {
			return writeError(http.StatusBadRequest, v.Code, v.Message, err)
		}
		return writeError(http.StatusInternalServerError, "Search failed", err.Error(), err)
	}
	return c.JSON(http.StatusOK, articles)
}
