package http

import (
	"net/http"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/service"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

type profileResponse struct {
	User             *domain.User             `json:"user"`
	VolunteerProfile *domain.VolunteerProfile `json:"volunteer_profile,omitempty"`
	Badges           []domain.UserBadge       `json:"badges"`
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	h.respondProfile(w, r, userIDFromContext(r.Context()))
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}
	h.respondProfile(w, r, userID)
}

func (h *UserHandler) respondProfile(w http.ResponseWriter, r *http.Request, userID int32) {
	user, profile, badges, err := h.userSvc.GetUserProfile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profileResponse{User: user, VolunteerProfile: profile, Badges: badges})
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	userID := userIDFromContext(r.Context())
	if err := h.userSvc.UpdateProfile(r.Context(), userID, req.Email, req.Username, req.FirstName, req.LastName); err != nil {
		respondError(w, err)
		return
	}
	h.respondProfile(w, r, userID)
}

func (h *UserHandler) CreateVolunteerProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userSvc.CreateVolunteerProfile(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, profile)
}

func (h *UserHandler) ResolveVolunteerProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}
	var req struct {
		Accept bool `json:"accept"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	staffID := userIDFromContext(r.Context())
	var err error
	if req.Accept {
		err = h.userSvc.AcceptVolunteerProfile(r.Context(), staffID, userID)
	} else {
		err = h.userSvc.RejectVolunteerProfile(r.Context(), staffID, userID)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *UserHandler) ListPendingVolunteerProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.userSvc.ListPendingVolunteerProfiles(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profiles)
}
