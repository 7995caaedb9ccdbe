package photos

import (
	"net/http"

	"group_service/internal/storage"
	"group_service/pkg/utils"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	photos storage.PhotoStore
}

func NewHandler(photos storage.PhotoStore) *Handler {
	return &Handler{photos: photos}
}

// FUNC TO UPLOAD A GROUP PHOTO TO A TEMPORARY OBJECT KEY
//
// The returned uri is handed back by the client on group creation, at which
// point the object is promoted under the new group id.
func (h *Handler) UploadPhotoHandler(w http.ResponseWriter, r *http.Request) {
	if h.photos == nil {
		utils.WriteError(w, "photo_store_unavailable", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.WriteError(w, "invalid_multipart_form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, "file_required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	uri, err := h.photos.UploadTemp(r.Context(), file, header.Size, contentType)
	if err != nil {
		utils.Logger.Errorf("photo upload failed: %v", err)
		utils.WriteError(w, "photo_upload_failed", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"uri": uri})
}
