package adaptor

import (
	"encoding/json"
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.ModerationService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.ModerationService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// GetComments handles GET /comments?movie={id} (public)
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	movieID := r.URL.Query().Get("movie")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Query parameter 'movie' is required", nil)
		return
	}

	comments, err := h.service.ListVisibleComments(r.Context(), movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "get comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

// CreateComment handles POST /comments (authenticated)
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	// The author is always the authenticated caller
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, err := h.service.CreateComment(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "Comment submitted for moderation", comment)
}

// ModerateComment handles PUT /admin/comments/{id} (admin only)
func (h *CommentHandler) ModerateComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "id")

	var req request.ModerateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SetApproved(r.Context(), commentID, &req); err != nil {
		handleServiceError(w, h.log, err, "moderate comment")
		return
	}

	utils.ResponseSuccess(w, "OK", nil)
}

// DeleteComment handles DELETE /admin/comments/{id} (admin only)
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "id")

	if err := h.service.DeleteComment(r.Context(), commentID); err != nil {
		handleServiceError(w, h.log, err, "delete comment")
		return
	}

	utils.ResponseSuccess(w, "OK", nil)
}

// CreateVote handles POST /votes (authenticated)
func (h *CommentHandler) CreateVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.CreateVote(r.Context(), userID, &req); err != nil {
		handleServiceError(w, h.log, err, "create vote")
		return
	}

	utils.ResponseCreated(w, "Vote recorded", nil)
}
