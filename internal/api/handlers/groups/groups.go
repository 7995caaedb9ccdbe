package groups

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"group_service/internal/apperrors"
	"group_service/internal/hateoas"
	"group_service/internal/identity"
	"group_service/internal/models"
	"group_service/internal/repositories/sqlstore"
	"group_service/internal/storage"
	"group_service/pkg/utils"
)

const (
	groupSchema  = "group_service_db"
	groupsTable  = "groups"
	membersTable = "group_members"
)

// deferredName is a protocol stub carried over for contract compatibility: a
// create request with this exact name is acknowledged with 202 and nothing
// is written. No asynchronous processing exists behind it.
const deferredName = "deferred"

type Handler struct {
	store  sqlstore.Querier
	users  identity.Resolver
	photos storage.PhotoStore
}

func NewHandler(store sqlstore.Querier, users identity.Resolver, photos storage.PhotoStore) *Handler {
	return &Handler{store: store, users: users, photos: photos}
}

type groupResponse struct {
	models.Group
	Members []string       `json:"members"`
	Links   []hateoas.Link `json:"links"`
}

// FUNC TO CREATE A GROUP
func (h *Handler) CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
	type createRequest struct {
		Name     string   `json:"name"`
		PhotoURI string   `json:"photo_uri"`
		Members  []string `json:"members"`
	}

	var req createRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid_request_body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.WriteError(w, "name_required", http.StatusBadRequest)
		return
	}

	if req.Name == deferredName {
		utils.WriteJSON(w, http.StatusAccepted, map[string]interface{}{
			"status":  "accepted",
			"message": "group creation accepted, processing asynchronously",
		})
		return
	}

	ctx := r.Context()

	// Resolve every member before touching the group tables so a bad email
	// never leaves an orphan group row behind.
	memberIDs := make([]int64, 0, len(req.Members))
	seen := make(map[int64]bool)
	for _, email := range req.Members {
		email = strings.TrimSpace(email)
		if email == "" {
			utils.WriteError(w, "member_email_required", http.StatusBadRequest)
			return
		}
		userID, err := h.users.ResolveUserID(ctx, email)
		if err != nil {
			if kind, ok := apperrors.KindOf(err); ok && kind == apperrors.NotFound {
				utils.WriteAppError(w, apperrors.Wrap(apperrors.Dependency, "member_not_found", err))
				return
			}
			utils.WriteAppError(w, err)
			return
		}
		if seen[userID] {
			continue
		}
		seen[userID] = true
		memberIDs = append(memberIDs, userID)
	}

	groupID, err := h.store.Insert(ctx, groupSchema, groupsTable, map[string]any{
		"name":        req.Name,
		"group_photo": req.PhotoURI,
	})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	for _, userID := range memberIDs {
		_, err := h.store.Insert(ctx, groupSchema, membersTable, map[string]any{
			"group_id": groupID,
			"user_id":  userID,
		})
		if err != nil {
			h.rollbackGroup(r, groupID)
			utils.WriteAppError(w, err)
			return
		}
	}

	if req.PhotoURI != "" && h.photos != nil {
		permanentKey, err := h.photos.Promote(ctx, req.PhotoURI, groupID)
		if err != nil {
			h.rollbackGroup(r, groupID)
			utils.WriteAppError(w, apperrors.Wrap(apperrors.Dependency, "photo_promote_failed", err))
			return
		}
		if _, err := h.store.Update(ctx, groupSchema, groupsTable,
			map[string]any{"group_photo": permanentKey},
			map[string]any{"group_id": groupID},
		); err != nil {
			h.rollbackGroup(r, groupID)
			utils.WriteAppError(w, err)
			return
		}
	}

	links := hateoas.LinksFor(hateoas.KindGroup, groupID)
	w.Header().Set("Link", fmt.Sprintf("<%s>; rel=\"self\"", links[0].Href))

	response := struct {
		GroupID int64          `json:"group_id"`
		Name    string         `json:"name"`
		Links   []hateoas.Link `json:"links"`
	}{
		GroupID: groupID,
		Name:    req.Name,
		Links:   links,
	}

	utils.WriteJSON(w, http.StatusCreated, response)
}

// rollbackGroup undoes a half-finished create so no partially usable group
// survives a failure after the first insert.
func (h *Handler) rollbackGroup(r *http.Request, groupID int64) {
	ctx := r.Context()
	if _, err := h.store.Delete(ctx, groupSchema, membersTable, map[string]any{"group_id": groupID}); err != nil {
		utils.Logger.Errorf("failed to roll back memberships for group %d: %v", groupID, err)
	}
	if _, err := h.store.Delete(ctx, groupSchema, groupsTable, map[string]any{"group_id": groupID}); err != nil {
		utils.Logger.Errorf("failed to roll back group %d: %v", groupID, err)
	}
}

// FUNC TO GET A SINGLE GROUP WITH ITS MEMBER EMAILS
func (h *Handler) GetGroupByIDHandler(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.WriteError(w, "invalid_group_id", http.StatusBadRequest)
		return
	}

	detail, err := h.loadGroupDetail(r, groupID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, detail)
}

// loadGroupDetail assembles the response shape shared by the fetch and list
// endpoints: the group row plus each member resolved to an email.
func (h *Handler) loadGroupDetail(r *http.Request, groupID int64) (*groupResponse, error) {
	ctx := r.Context()

	rows, err := h.store.Select(ctx, groupSchema, groupsTable, map[string]any{"group_id": groupID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.New(apperrors.NotFound, "group_not_found")
	}
	row := rows[0]

	memberRows, err := h.store.Select(ctx, groupSchema, membersTable, map[string]any{"group_id": groupID})
	if err != nil {
		return nil, err
	}

	members := make([]string, 0, len(memberRows))
	for _, memberRow := range memberRows {
		member := models.GroupMember{GroupID: groupID, UserID: memberRow.Int64("user_id")}
		profile, err := h.users.ResolveUserProfile(ctx, member.UserID)
		if err != nil {
			if kind, ok := apperrors.KindOf(err); ok && kind == apperrors.NotFound {
				return nil, apperrors.Wrap(apperrors.Dependency, "member_not_resolved", err)
			}
			return nil, err
		}
		members = append(members, profile.Email)
	}

	return &groupResponse{
		Group: models.Group{
			GroupID:    groupID,
			Name:       row.String("name"),
			GroupPhoto: row.String("group_photo"),
		},
		Members: members,
		Links:   hateoas.LinksFor(hateoas.KindGroup, groupID),
	}, nil
}

// FUNC TO GET ALL GROUPS A USER BELONGS TO, PAGINATED
func (h *Handler) GetAllGroupsHandler(w http.ResponseWriter, r *http.Request) {
	userIDStr := r.URL.Query().Get("user_id")
	if userIDStr == "" {
		utils.WriteError(w, "user_id_required", http.StatusBadRequest)
		return
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		utils.WriteError(w, "invalid_user_id", http.StatusBadRequest)
		return
	}

	limit, offset, err := paginationParams(r)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	ctx := r.Context()

	memberships, err := h.store.Select(ctx, groupSchema, membersTable, map[string]any{"user_id": userID})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	groupList := make([]*groupResponse, 0, len(memberships))
	for _, membership := range memberships {
		detail, err := h.loadGroupDetail(r, membership.Int64("group_id"))
		if err != nil {
			// A membership pointing at a deleted group is skipped; anything
			// else is a real failure and is surfaced.
			if kind, ok := apperrors.KindOf(err); ok && kind == apperrors.NotFound {
				utils.Logger.Warnf("membership references missing group %d", membership.Int64("group_id"))
				continue
			}
			utils.WriteAppError(w, err)
			return
		}
		groupList = append(groupList, detail)
	}

	links := hateoas.PaginationLinks("/groups", limit, offset, len(groupList))

	// The candidate set is user-scoped first, so the window is an in-memory
	// slice over the assembled list rather than a store-level one.
	start := offset
	if start > len(groupList) {
		start = len(groupList)
	}
	end := start + limit
	if end > len(groupList) {
		end = len(groupList)
	}

	response := struct {
		Data  []*groupResponse `json:"data"`
		Links []hateoas.Link   `json:"links"`
	}{
		Data:  groupList[start:end],
		Links: links,
	}

	utils.WriteJSON(w, http.StatusOK, response)
}

func paginationParams(r *http.Request) (limit, offset int, err error) {
	limit, offset = 10, 0

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return 0, 0, apperrors.New(apperrors.Validation, "invalid_limit")
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			return 0, 0, apperrors.New(apperrors.Validation, "invalid_offset")
		}
	}
	return limit, offset, nil
}

// FUNC TO DELETE A GROUP AND ITS MEMBERSHIPS
func (h *Handler) DeleteGroupHandler(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.WriteError(w, "invalid_group_id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if _, err := h.store.Delete(ctx, groupSchema, membersTable, map[string]any{"group_id": groupID}); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	deleted, err := h.store.Delete(ctx, groupSchema, groupsTable, map[string]any{"group_id": groupID})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if deleted == 0 {
		utils.WriteError(w, "group_not_found", http.StatusNotFound)
		return
	}
	if deleted > 1 {
		// The id is supposed to be unique; more than one row is a
		// data-integrity violation and must never pass silently.
		utils.WriteAppError(w, apperrors.New(apperrors.Integrity, "duplicate_group_rows"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FUNC TO GET THE MEMBERS OF A GROUP AS FULL PROFILES
func (h *Handler) GetGroupMembersHandler(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.WriteError(w, "invalid_group_id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	groupRows, err := h.store.Select(ctx, groupSchema, groupsTable, map[string]any{"group_id": groupID})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	if len(groupRows) == 0 {
		utils.WriteError(w, "group_not_found", http.StatusNotFound)
		return
	}

	memberRows, err := h.store.Select(ctx, groupSchema, membersTable, map[string]any{"group_id": groupID})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	type memberResponse struct {
		identity.Profile
		Links []hateoas.Link `json:"links"`
	}

	members := make([]memberResponse, 0, len(memberRows))
	for _, memberRow := range memberRows {
		member := models.GroupMember{GroupID: groupID, UserID: memberRow.Int64("user_id")}
		profile, err := h.users.ResolveUserProfile(ctx, member.UserID)
		if err != nil {
			// A member row whose user is gone must surface, never shrink
			// the list.
			if kind, ok := apperrors.KindOf(err); ok && kind == apperrors.NotFound {
				utils.WriteAppError(w, apperrors.Wrap(apperrors.Dependency, "member_not_resolved", err))
				return
			}
			utils.WriteAppError(w, err)
			return
		}
		members = append(members, memberResponse{
			Profile: profile,
			Links:   hateoas.LinksFor(hateoas.KindUser, profile.ID),
		})
	}

	response := struct {
		Members []memberResponse `json:"members"`
		Links   []hateoas.Link   `json:"links"`
	}{
		Members: members,
		Links:   hateoas.LinksFor(hateoas.KindGroupMembers, groupID),
	}

	utils.WriteJSON(w, http.StatusOK, response)
}
