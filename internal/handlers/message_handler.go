package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageHandler handles direct messaging requests
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// ListConversations handles GET /api/messages/conversations
func (h *MessageHandler) ListConversations(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	conversations, err := h.messageService.ListConversations(c.Request.Context(), v.ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, conversations)
}

// CreateConversation handles POST /api/messages/conversations.
// Returns 201 for a new conversation and 200 when one already exists.
func (h *MessageHandler) CreateConversation(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	var req models.CreateConversationRequest
	if !bindJSON(c, &req) {
		return
	}
	other, err := services.ParseID(req.ParticipantID, "participantId")
	if err != nil {
		fail(c, err)
		return
	}

	conv, isNew, err := h.messageService.CreateConversation(c.Request.Context(), v.ID, []primitive.ObjectID{v.ID, other})
	if err != nil {
		fail(c, err)
		return
	}
	if isNew {
		created(c, "Conversation created", conv)
		return
	}
	ok(c, conv)
}

// GetMessages handles GET /api/messages/:conversationId
func (h *MessageHandler) GetMessages(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	convID, valid := pathID(c, "conversationId")
	if !valid {
		return
	}
	page, limit := pageParams(c)
	thread, err := h.messageService.GetMessages(c.Request.Context(), v.ID, convID, page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, thread)
}

// SendMessage handles POST /api/messages/:conversationId
func (h *MessageHandler) SendMessage(c *gin.Context) {
	v, found := viewer(c)
	if !found {
		return
	}
	convID, valid := pathID(c, "conversationId")
	if !valid {
		return
	}
	var req models.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.messageService.SendMessage(c.Request.Context(), v.ID, convID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "Message sent", msg)
}
