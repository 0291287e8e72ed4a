package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/service"
)

type OrgHandler struct {
	orgSvc service.OrganizationService
}

func NewOrgHandler(orgSvc service.OrganizationService) *OrgHandler {
	return &OrgHandler{orgSvc: orgSvc}
}

func pathID(r *http.Request, name string) (int32, bool) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func (h *OrgHandler) Create(w http.ResponseWriter, r *http.Request) {
	var org domain.Organization
	if err := decodeBody(r, &org); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.orgSvc.CreateOrganization(r.Context(), userIDFromContext(r.Context()), &org); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, org)
}

func (h *OrgHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(r, "orgID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid organization id"})
		return
	}
	org, err := h.orgSvc.GetOrganization(r.Context(), orgID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, org)
}

func (h *OrgHandler) List(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	causesParam := r.URL.Query().Get("causes")
	if name == "" && causesParam == "" {
		orgs, err := h.orgSvc.ListOrganizations(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, orgs)
		return
	}
	var causes []domain.SocialCause
	if causesParam != "" {
		for _, c := range strings.Split(causesParam, ",") {
			causes = append(causes, domain.SocialCause(strings.TrimSpace(c)))
		}
	}
	orgs, err := h.orgSvc.SearchOrganizations(r.Context(), name, causes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orgs)
}

func (h *OrgHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(r, "orgID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid organization id"})
		return
	}
	var org domain.Organization
	if err := decodeBody(r, &org); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	org.ID = orgID
	if err := h.orgSvc.SaveOrganizationInfo(r.Context(), userIDFromContext(r.Context()), &org); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, org)
}

func (h *OrgHandler) CreateMembershipRequest(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(r, "orgID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid organization id"})
		return
	}
	var req struct {
		Role domain.OrgRole `json:"role"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Role == "" {
		req.Role = domain.OrgRoleStaff
	}
	created, err := h.orgSvc.CreateMembershipRequest(r.Context(), userIDFromContext(r.Context()), orgID, req.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *OrgHandler) ResolveMembershipRequest(w http.ResponseWriter, r *http.Request) {
	orgID, okOrg := pathID(r, "orgID")
	reqID, okReq := pathID(r, "requestID")
	if !okOrg || !okReq {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	var body struct {
		Accept bool `json:"accept"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	adminID := userIDFromContext(r.Context())
	var err error
	if body.Accept {
		err = h.orgSvc.AcceptMembershipRequest(r.Context(), adminID, orgID, reqID)
	} else {
		err = h.orgSvc.RejectMembershipRequest(r.Context(), adminID, orgID, reqID)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *OrgHandler) ListMembershipRequests(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(r, "orgID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid organization id"})
		return
	}
	reqs, err := h.orgSvc.ListMembershipRequests(r.Context(), userIDFromContext(r.Context()), orgID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reqs)
}

func (h *OrgHandler) AddStaff(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(r, "orgID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid organization id"})
		return
	}
	var req struct {
		UserID int32          `json:"user_id"`
		Role   domain.OrgRole `json:"role"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Role == "" {
		req.Role = domain.OrgRoleStaff
	}
	if err := h.orgSvc.AddStaffMember(r.Context(), userIDFromContext(r.Context()), orgID, req.UserID, req.Role); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, nil)
}

func (h *OrgHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	orgID, okOrg := pathID(r, "orgID")
	roleID, okRole := pathID(r, "roleID")
	if !okOrg || !okRole {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	var req struct {
		Role domain.OrgRole `json:"role"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.orgSvc.SaveOrganizationRole(r.Context(), userIDFromContext(r.Context()), orgID, roleID, req.Role); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *OrgHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	orgID, okOrg := pathID(r, "orgID")
	roleID, okRole := pathID(r, "roleID")
	if !okOrg || !okRole {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid path"})
		return
	}
	if err := h.orgSvc.DeleteOrganizationRole(r.Context(), userIDFromContext(r.Context()), orgID, roleID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *OrgHandler) Leave(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(r, "orgID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid organization id"})
		return
	}
	if err := h.orgSvc.LeaveOrganization(r.Context(), userIDFromContext(r.Context()), orgID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *OrgHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(r, "orgID")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid organization id"})
		return
	}
	members, err := h.orgSvc.ListMembers(r.Context(), userIDFromContext(r.Context()), orgID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, members)
}
