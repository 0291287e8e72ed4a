package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"volunteer-marketplace-backend/internal/security"
)

// Handlers groups the HTTP handlers wired into the router.
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Org          *OrgHandler
	Project      *ProjectHandler
	Task         *TaskHandler
	Notification *NotificationHandler
}

// NewRouter builds the API router. Public browsing endpoints run behind
// optional authentication so membership-aware listings can widen their
// results for signed-in users; everything mutating requires a token.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Authentication.
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)

	// Public browsing.
	public := api.NewRoute().Subrouter()
	public.Use(OptionalAuthMiddleware(tokens))
	public.HandleFunc("/organizations", h.Org.List).Methods(http.MethodGet)
	public.HandleFunc("/organizations/{orgID}", h.Org.Get).Methods(http.MethodGet)
	public.HandleFunc("/organizations/{orgID}/projects", h.Project.ListByOrg).Methods(http.MethodGet)
	public.HandleFunc("/projects", h.Project.ListPublic).Methods(http.MethodGet)
	public.HandleFunc("/projects/{projectID}", h.Project.Get).Methods(http.MethodGet)
	public.HandleFunc("/projects/{projectID}/tasks", h.Task.List).Methods(http.MethodGet)
	public.HandleFunc("/projects/{projectID}/tasks/{taskID}", h.Task.Get).Methods(http.MethodGet)
	public.HandleFunc("/users/{userID}/profile", h.User.Get).Methods(http.MethodGet)

	// Everything below requires a valid access token.
	auth := api.NewRoute().Subrouter()
	auth.Use(AuthMiddleware(tokens))

	// Users and volunteer profiles.
	auth.HandleFunc("/users/me", h.User.GetMe).Methods(http.MethodGet)
	auth.HandleFunc("/users/me", h.User.UpdateMe).Methods(http.MethodPut)
	auth.HandleFunc("/users/me/volunteer-profile", h.User.CreateVolunteerProfile).Methods(http.MethodPost)
	auth.HandleFunc("/users/{userID}/volunteer-profile/review", h.User.ResolveVolunteerProfile).Methods(http.MethodPost)
	auth.HandleFunc("/volunteer-profiles/pending", h.User.ListPendingVolunteerProfiles).Methods(http.MethodGet)

	// Organizations, membership and roles.
	auth.HandleFunc("/organizations", h.Org.Create).Methods(http.MethodPost)
	auth.HandleFunc("/organizations/{orgID}", h.Org.Update).Methods(http.MethodPut)
	auth.HandleFunc("/organizations/{orgID}/membership-requests", h.Org.CreateMembershipRequest).Methods(http.MethodPost)
	auth.HandleFunc("/organizations/{orgID}/membership-requests", h.Org.ListMembershipRequests).Methods(http.MethodGet)
	auth.HandleFunc("/organizations/{orgID}/membership-requests/{requestID}/review", h.Org.ResolveMembershipRequest).Methods(http.MethodPost)
	auth.HandleFunc("/organizations/{orgID}/members", h.Org.ListMembers).Methods(http.MethodGet)
	auth.HandleFunc("/organizations/{orgID}/roles", h.Org.AddStaff).Methods(http.MethodPost)
	auth.HandleFunc("/organizations/{orgID}/roles/{roleID}", h.Org.UpdateRole).Methods(http.MethodPut)
	auth.HandleFunc("/organizations/{orgID}/roles/{roleID}", h.Org.DeleteRole).Methods(http.MethodDelete)
	auth.HandleFunc("/organizations/{orgID}/leave", h.Org.Leave).Methods(http.MethodPost)

	// Projects and project roles.
	auth.HandleFunc("/organizations/{orgID}/projects", h.Project.Create).Methods(http.MethodPost)
	auth.HandleFunc("/projects/drafts", h.Project.ListMyDrafts).Methods(http.MethodGet)
	auth.HandleFunc("/projects/{projectID}", h.Project.Update).Methods(http.MethodPut)
	auth.HandleFunc("/projects/{projectID}/publish", h.Project.Publish).Methods(http.MethodPost)
	auth.HandleFunc("/projects/{projectID}/finish", h.Project.Finish).Methods(http.MethodPost)
	auth.HandleFunc("/projects/{projectID}/changes", h.Project.GetChanges).Methods(http.MethodGet)
	auth.HandleFunc("/projects/{projectID}/staff", h.Project.ListStaff).Methods(http.MethodGet)
	auth.HandleFunc("/projects/{projectID}/roles", h.Project.AddStaff).Methods(http.MethodPost)
	auth.HandleFunc("/projects/{projectID}/roles/{roleID}", h.Project.UpdateRole).Methods(http.MethodPut)
	auth.HandleFunc("/projects/{projectID}/roles/{roleID}", h.Project.DeleteRole).Methods(http.MethodDelete)
	auth.HandleFunc("/projects/{projectID}/follow", h.Project.ToggleFollow).Methods(http.MethodPost)

	// Tasks, applications and reviews.
	auth.HandleFunc("/projects/{projectID}/tasks", h.Task.Create).Methods(http.MethodPost)
	auth.HandleFunc("/projects/{projectID}/tasks/{taskID}", h.Task.Update).Methods(http.MethodPut)
	auth.HandleFunc("/projects/{projectID}/tasks/{taskID}", h.Task.Delete).Methods(http.MethodDelete)
	auth.HandleFunc("/projects/{projectID}/tasks/{taskID}/publish", h.Task.Publish).Methods(http.MethodPost)
	auth.HandleFunc("/projects/{projectID}/tasks/{taskID}/accepting", h.Task.ToggleAccepting).Methods(http.MethodPost)
	auth.HandleFunc("/projects/{projectID}/tasks/{taskID}/applications", h.Task.Apply).Methods(http.MethodPost)
	auth.HandleFunc("/projects/{projectID}/tasks/{taskID}/applications", h.Task.ListApplications).Methods(http.MethodGet)
	auth.HandleFunc("/projects/{projectID}/tasks/{taskID}/applications/{applicationID}", h.Task.GetApplication).Methods(http.MethodGet)
	auth.HandleFunc("/projects/{projectID}/tasks/{taskID}/applications/{applicationID}/review", h.Task.ResolveApplication).Methods(http.MethodPost)
	auth.HandleFunc("/projects/{projectID}/tasks/{taskID}/cancel", h.Task.CancelVolunteering).Methods(http.MethodPost)
	auth.HandleFunc("/projects/{projectID}/tasks/{taskID}/complete", h.Task.MarkCompleted).Methods(http.MethodPost)
	auth.HandleFunc("/projects/{projectID}/tasks/{taskID}/reviews/{reviewID}/review", h.Task.ResolveReview).Methods(http.MethodPost)
	auth.HandleFunc("/projects/{projectID}/tasks/{taskID}/roles/{roleID}", h.Task.DeleteTaskRole).Methods(http.MethodDelete)

	// Notifications.
	auth.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	auth.HandleFunc("/notifications/unread-count", h.Notification.CountUnread).Methods(http.MethodGet)
	auth.HandleFunc("/notifications/{notificationID}/read", h.Notification.MarkAsRead).Methods(http.MethodPost)

	return r
}
