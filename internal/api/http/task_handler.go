package http

import (
	"net/http"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/service"
)

type TaskHandler struct {
	taskSvc service.ProjectTaskService
}

func NewTaskHandler(taskSvc service.ProjectTaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

func taskPath(r *http.Request) (projectID, taskID int32, ok bool) {
	projectID, okProj := pathID(r, "projectID")
	taskID, okTask := pathID(r, "taskID")
	return projectID, taskID, okProj && okTask
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid project id"})
		return
	}
	task, err := h.taskSvc.CreateDefaultTask(r.Context(), userIDFromContext(r.Context()), projectID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	task, err := h.taskSvc.GetTask(r.Context(), projectID, taskID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid project id"})
		return
	}
	tasks, err := h.taskSvc.ListProjectTasks(r.Context(), userIDFromContext(r.Context()), projectID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	var task domain.ProjectTask
	if err := decodeBody(r, &task); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	task.ID = taskID
	task.ProjectID = projectID
	if err := h.taskSvc.SaveTask(r.Context(), userIDFromContext(r.Context()), &task); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Publish(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	if err := h.taskSvc.PublishTask(r.Context(), userIDFromContext(r.Context()), projectID, taskID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *TaskHandler) ToggleAccepting(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	if err := h.taskSvc.ToggleAcceptingVolunteers(r.Context(), userIDFromContext(r.Context()), projectID, taskID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	if err := h.taskSvc.DeleteTask(r.Context(), userIDFromContext(r.Context()), projectID, taskID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *TaskHandler) Apply(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	var req struct {
		ApplicationLetter string `json:"application_letter"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	app, err := h.taskSvc.ApplyToVolunteer(r.Context(), userIDFromContext(r.Context()), projectID, taskID, req.ApplicationLetter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, app)
}

func (h *TaskHandler) ResolveApplication(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	appID, okApp := pathID(r, "applicationID")
	if !ok || !okApp {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	var req struct {
		Accept         bool   `json:"accept"`
		PublicComment  string `json:"public_comment"`
		PrivateNotes   string `json:"private_notes"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	reviewerID := userIDFromContext(r.Context())
	var err error
	if req.Accept {
		err = h.taskSvc.AcceptVolunteer(r.Context(), reviewerID, projectID, taskID, appID, req.PublicComment, req.PrivateNotes)
	} else {
		err = h.taskSvc.RejectVolunteer(r.Context(), reviewerID, projectID, taskID, appID, req.PublicComment, req.PrivateNotes)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *TaskHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	apps, err := h.taskSvc.ListTaskApplications(r.Context(), userIDFromContext(r.Context()), projectID, taskID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, apps)
}

func (h *TaskHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	appID, okApp := pathID(r, "applicationID")
	if !ok || !okApp {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	app, err := h.taskSvc.GetTaskApplication(r.Context(), userIDFromContext(r.Context()), projectID, taskID, appID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, app)
}

func (h *TaskHandler) CancelVolunteering(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	if err := h.taskSvc.CancelVolunteering(r.Context(), userIDFromContext(r.Context()), projectID, taskID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *TaskHandler) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	var req struct {
		Comment     string `json:"comment"`
		EffortHours int32  `json:"effort_hours"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	review, err := h.taskSvc.MarkTaskAsCompleted(r.Context(), userIDFromContext(r.Context()), projectID, taskID, req.Comment, req.EffortHours)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

func (h *TaskHandler) ResolveReview(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	reviewID, okRev := pathID(r, "reviewID")
	if !ok || !okRev {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	var req struct {
		Accept  bool   `json:"accept"`
		Comment string `json:"comment"`
		Score   int32  `json:"score"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	reviewerID := userIDFromContext(r.Context())
	var err error
	if req.Accept {
		err = h.taskSvc.AcceptTaskReview(r.Context(), reviewerID, projectID, taskID, reviewID, req.Comment, req.Score)
	} else {
		err = h.taskSvc.RejectTaskReview(r.Context(), reviewerID, projectID, taskID, reviewID, req.Comment)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *TaskHandler) DeleteTaskRole(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := taskPath(r)
	roleID, okRole := pathID(r, "roleID")
	if !ok || !okRole {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	if err := h.taskSvc.DeleteProjectTaskRole(r.Context(), userIDFromContext(r.Context()), projectID, taskID, roleID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
