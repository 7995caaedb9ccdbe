package routers

import (
	"net/http"

	"group_service/internal/api/handlers/groups"
)

func groupsRouter(h *groups.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /groups", h.CreateGroupHandler)

	mux.HandleFunc("GET /groups", h.GetAllGroupsHandler)

	mux.HandleFunc("GET /groups/{id}", h.GetGroupByIDHandler)

	mux.HandleFunc("DELETE /groups/{id}", h.DeleteGroupHandler)

	mux.HandleFunc("GET /groups/{id}/members", h.GetGroupMembersHandler)

	return mux
}
