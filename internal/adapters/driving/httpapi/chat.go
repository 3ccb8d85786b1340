package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

type chatRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
}

func (s *Server) handleChatStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{
		"available": s.chat.Status(c.Request().Context()),
	})
}

// handleChat streams the assistant reply as Server-Sent Events. Each
// token is one "data:" line carrying a JSON object; the final event is
// "data: [DONE]". Errors before the stream starts use the normal JSON
// error shape; a mid-stream failure is sent as an error event because
// the status line is already on the wire.
func (s *Server) handleChat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	ctx := c.Request().Context()
	tokens, errs, err := s.chat.Chat(ctx, req.Messages)
	if err != nil {
		return err
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	for token := range tokens {
		payload, err := json.Marshal(map[string]string{"token": token})
		if err != nil {
			continue
		}
		fmt.Fprintf(resp, "data: %s\n\n", payload)
		resp.Flush()
	}

	if err := <-errs; err != nil && ctx.Err() == nil {
		payload, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintf(resp, "data: %s\n\n", payload)
		resp.Flush()
		return nil
	}

	fmt.Fprint(resp, "data: [DONE]\n\n")
	resp.Flush()
	return nil
}
