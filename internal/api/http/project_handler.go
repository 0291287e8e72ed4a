package http

import (
	"net/http"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/service"
)

type ProjectHandler struct {
	projSvc service.ProjectService
}

func NewProjectHandler(projSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projSvc: projSvc}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(r, "orgID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid organization id"})
		return
	}
	var project domain.Project
	if err := decodeBody(r, &project); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.projSvc.CreateProject(r.Context(), userIDFromContext(r.Context()), orgID, &project); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid project id"})
		return
	}
	project, err := h.projSvc.GetProject(r.Context(), projectID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projSvc.ListPublicProjects(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) ListByOrg(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(r, "orgID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid organization id"})
		return
	}
	projects, err := h.projSvc.ListOrganizationProjects(r.Context(), userIDFromContext(r.Context()), orgID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) ListMyDrafts(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projSvc.ListUserDraftProjects(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid project id"})
		return
	}
	var project domain.Project
	if err := decodeBody(r, &project); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	project.ID = projectID
	if err := h.projSvc.SaveProject(r.Context(), userIDFromContext(r.Context()), &project); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Publish(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid project id"})
		return
	}
	project, err := h.projSvc.PublishProject(r.Context(), userIDFromContext(r.Context()), projectID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Finish(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid project id"})
		return
	}
	project, err := h.projSvc.FinishProject(r.Context(), userIDFromContext(r.Context()), projectID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) GetChanges(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid project id"})
		return
	}
	changes, err := h.projSvc.GetProjectChanges(r.Context(), userIDFromContext(r.Context()), projectID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, changes)
}

func (h *ProjectHandler) AddStaff(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid project id"})
		return
	}
	var req struct {
		UserID int32           `json:"user_id"`
		Role   domain.ProjRole `json:"role"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Role == "" {
		req.Role = domain.ProjRoleStaff
	}
	if err := h.projSvc.AddStaffMember(r.Context(), userIDFromContext(r.Context()), projectID, req.UserID, req.Role); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, nil)
}

func (h *ProjectHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	projectID, okProj := pathID(r, "projectID")
	roleID, okRole := pathID(r, "roleID")
	if !okProj || !okRole {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	var req struct {
		Role domain.ProjRole `json:"role"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.projSvc.SaveProjectRole(r.Context(), userIDFromContext(r.Context()), projectID, roleID, req.Role); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *ProjectHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	projectID, okProj := pathID(r, "projectID")
	roleID, okRole := pathID(r, "roleID")
	if !okProj || !okRole {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	if err := h.projSvc.DeleteProjectRole(r.Context(), userIDFromContext(r.Context()), projectID, roleID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ProjectHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid project id"})
		return
	}
	roles, err := h.projSvc.ListProjectStaff(r.Context(), userIDFromContext(r.Context()), projectID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, roles)
}

func (h *ProjectHandler) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid project id"})
		return
	}
	following, err := h.projSvc.ToggleFollower(r.Context(), userIDFromContext(r.Context()), projectID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"following": following})
}
