package routers

import (
	"net/http"

	"group_service/internal/api/handlers/groups"
	"group_service/internal/api/handlers/photos"
)

func MainRouter(gh *groups.Handler, ph *photos.Handler) *http.ServeMux {

	mux := http.NewServeMux()

	gRouter := groupsRouter(gh)
	mux.Handle("/groups", gRouter)
	mux.Handle("/groups/", gRouter)

	pRouter := photosRouter(ph)
	mux.Handle("/upload-photo", pRouter)

	return mux
}
