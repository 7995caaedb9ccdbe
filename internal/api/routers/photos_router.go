package routers

import (
	"net/http"

	"group_service/internal/api/handlers/photos"
)

func photosRouter(h *photos.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /upload-photo", h.UploadPhotoHandler)

	return mux
}
