package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

type conversationDTO struct {
	ID        int64                `json:"id"`
	Messages  []domain.ChatMessage `json:"messages"`
	CreatedAt time.Time            `json:"created_at"`
}

func toConversationDTO(conv domain.Conversation) conversationDTO {
	return conversationDTO{ID: conv.ID, Messages: conv.Messages, CreatedAt: conv.CreatedAt}
}

type saveHistoryRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
}

func (s *Server) handleListHistory(c echo.Context) error {
	convs, err := s.auth.History(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}

	dtos := make([]conversationDTO, len(convs))
	for i, conv := range convs {
		dtos[i] = toConversationDTO(conv)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (s *Server) handleSaveHistory(c echo.Context) error {
	var req saveHistoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	conv, err := s.auth.SaveConversation(c.Request().Context(), currentUserID(c), req.Messages)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toConversationDTO(conv))
}

func (s *Server) handleDeleteHistory(c echo.Context) error {
	convID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "conversation id must be an integer")
	}

	if err := s.auth.DeleteConversation(c.Request().Context(), currentUserID(c), convID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
