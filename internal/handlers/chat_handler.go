// File: internal/handlers/chat_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-chatbot/internal/dtos"
	"github.com/iyunix/go-chatbot/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
	logger      Logger
}

func NewChatHandler(chatService *services.ChatService, logger Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, logger: logger}
}

// Home tells the client where to land.
func (h *ChatHandler) Home(w http.ResponseWriter, r *http.Request) {
	to, err := h.chatService.HomeRedirect(r.Context())
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.RedirectResponseDTO{RedirectTo: to})
}

func (h *ChatHandler) NewChat(w http.ResponseWriter, r *http.Request) {
	id, err := h.chatService.NewChat(r.Context())
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.NewChatResponseDTO{ChatID: id})
}

func (h *ChatHandler) ViewChat(w http.ResponseWriter, r *http.Request) {
	chatID, ok := parseChatID(w, r)
	if !ok {
		return
	}

	view, err := h.chatService.ViewChat(r.Context(), chatID)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	messages := make([]dtos.MessageDTO, 0, len(view.Messages))
	for _, m := range view.Messages {
		messages = append(messages, dtos.ToMessageDTO(m.Message, m.HTML))
	}

	writeJSON(w, http.StatusOK, dtos.ChatViewResponseDTO{
		CurrentChat: view.CurrentChat,
		Chats:       dtos.ToChatSummaries(view.Chats),
		Messages:    messages,
	})
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	chatID, ok := parseChatID(w, r)
	if !ok {
		return
	}

	var req dtos.SendMessageRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	result, err := h.chatService.SendMessage(r.Context(), chatID, req.Message)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.SendMessageResponseDTO{
		ChatID:      result.ChatID,
		UserMessage: result.UserMessage,
		AIMessage:   result.AIMessage,
	})
}

func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	chatID, ok := parseChatID(w, r)
	if !ok {
		return
	}

	if err := h.chatService.DeleteChat(r.Context(), chatID); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.SuccessResponseDTO{Success: true, Message: "Chat deleted successfully"})
}

func (h *ChatHandler) RenameChat(w http.ResponseWriter, r *http.Request) {
	chatID, ok := parseChatID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateChatTitleRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	title, err := h.chatService.RenameChat(r.Context(), chatID, req.Title)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.UpdateChatTitleResponseDTO{
		Success: true,
		Message: "Title updated successfully",
		Title:   title,
	})
}

func parseChatID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid chat ID")
		return 0, false
	}
	return uint(id), true
}
