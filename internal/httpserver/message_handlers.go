package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/service"
)

type sendMessageRequest struct {
	Receiver int64  `json:"receiver"`
	Content  string `json:"content"`
}

// @Summary      Send a direct message
// @Tags         messages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        input body sendMessageRequest true "Message input"
// @Success      201  {object}  domain.Message
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /messages/send [post]
func handleSendMessage(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currentUser := CurrentUser(r)
		if currentUser == nil {
			writeError(w, r, domain.ErrUnauthenticated)
			return
		}
		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		msg, err := msgSvc.Send(r.Context(), currentUser, req.Receiver, req.Content)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, msg)
	}
}

// @Summary      List conversations
// @Description  One entry per counterpart, most recently active first
// @Tags         messages
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.ConversationSummary
// @Failure      401  {object}  errorResponse
// @Router       /messages/conversations [get]
func handleListConversations(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currentUser := CurrentUser(r)
		if currentUser == nil {
			writeError(w, r, domain.ErrUnauthenticated)
			return
		}
		summaries, err := convSvc.ListForUser(r.Context(), currentUser.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, summaries)
	}
}

// @Summary      List messages with a user
// @Description  Full history with the given user, oldest first
// @Tags         messages
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.Message
// @Failure      401  {object}  errorResponse
// @Router       /messages/{userId} [get]
func handleListMessages(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currentUser := CurrentUser(r)
		if currentUser == nil {
			writeError(w, r, domain.ErrUnauthenticated)
			return
		}
		counterpartID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
			return
		}

		msgs, err := msgSvc.ListBetween(r.Context(), currentUser.ID, counterpartID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if msgs == nil {
			msgs = []*domain.Message{}
		}
		writeJSON(w, http.StatusOK, msgs)
	}
}
