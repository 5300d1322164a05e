package handlers

import (
	"net/http"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

type SearchHistoryHandler struct {
	history repositories.Store[models.SearchHistory]
}

func NewSearchHistoryHandler(history repositories.Store[models.SearchHistory]) *SearchHistoryHandler {
	return &SearchHistoryHandler{history: history}
}

func (h *SearchHistoryHandler) RegisterSearchHistoryRoutes(g *echo.Group) {
	g.GET("/search-history", h.GetSearchHistory)
	g.GET("/search-history/:id", h.GetSearch)
	g.POST("/search-history", h.CreateSearch)
	g.PUT("/search-history/:id", h.UpdateSearch)
	g.DELETE("/search-history/:id", h.DeleteSearch)
}

func (h *SearchHistoryHandler) GetSearchHistory(c echo.Context) error {
	return listRecords(c, h.history, hex("user_id"))
}

func (h *SearchHistoryHandler) GetSearch(c echo.Context) error {
	return getRecord(c, h.history, "Search history")
}

func (h *SearchHistoryHandler) CreateSearch(c echo.Context) error {
	var req models.CreateSearchHistoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	entry := &models.SearchHistory{UserID: req.UserID, Query: req.Query}
	if err := h.history.Create(c.Request().Context(), entry); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *SearchHistoryHandler) UpdateSearch(c echo.Context) error {
	var req models.UpdateSearchHistoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	entry, err := updateRecord(c, h.history, "Search history", &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *SearchHistoryHandler) DeleteSearch(c echo.Context) error {
	if _, err := deleteRecord(c, h.history, "Search history"); err != nil {
		return err
	}
	return deleted(c, "Search history")
}
