package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bmccrea/courtside/internal/bot"
	"github.com/bmccrea/courtside/pkg/utils"
)

type BotHandler struct {
	dispatcher *bot.Dispatcher
}

func NewBotHandler(dispatcher *bot.Dispatcher) *BotHandler {
	return &BotHandler{dispatcher: dispatcher}
}

// Webhook accepts a chat message and returns the dispatcher's reply. A
// message without the command prefix gets 204 so transports can forward all
// traffic without filtering.
func (h *BotHandler) Webhook(c *gin.Context) {
	var msg bot.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		utils.SendValidationError(c, "Invalid message payload", err.Error())
		return
	}
	if msg.Content == "" {
		utils.SendValidationError(c, "Invalid message payload", "content is required")
		return
	}

	reply, handled := h.dispatcher.Dispatch(c.Request.Context(), msg)
	if !handled {
		c.Status(http.StatusNoContent)
		return
	}
	utils.SendSuccess(c, gin.H{"reply": reply})
}
