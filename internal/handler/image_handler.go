package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"

	"inkblog/internal/models"
	"inkblog/internal/service"
)

// multipartOverhead is the slack allowed on top of the file for form framing.
const multipartOverhead = 1 << 20

const msgImagesDisabled = "Image uploads are disabled."

// formats image
var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

func isAllowedImage(mtype *mimetype.MIME) bool {
	for _, allowed := range allowedImageTypes {
		if mtype.Is(allowed) {
			return true
		}
	}
	return false
}

type ImageResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func newImageResponse(image *models.Image) ImageResponse {
	return ImageResponse{
		ID:        image.ID,
		PostID:    image.PostID,
		ImageURL:  image.ImageURL,
		CreatedAt: image.CreatedAt,
	}
}

func newImageResponses(images []models.Image) []ImageResponse {
	resp := make([]ImageResponse, 0, len(images))
	for i := range images {
		resp = append(resp, newImageResponse(&images[i]))
	}
	return resp
}

func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		WriteError(w, "Authorization header missing or malformed.", http.StatusUnauthorized)
		return
	}

	if !h.ImageService.Enabled() {
		WriteError(w, msgImagesDisabled, http.StatusServiceUnavailable)
		return
	}

	maxSize := h.Cfg.MaxUploadSize
	tooLarge := fmt.Sprintf("File is too large (max %s).", humanSize(maxSize))

	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			WriteError(w, tooLarge, http.StatusBadRequest)
			return
		}
		WriteError(w, "Could not parse the upload.", http.StatusBadRequest)
		return
	}

	// getting the file
	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Form field \"image\" is required.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > maxSize {
		WriteError(w, tooLarge, http.StatusBadRequest)
		return
	}

	// check formats
	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		WriteError(w, "Could not read the upload.", http.StatusBadRequest)
		return
	}
	if !isAllowedImage(mtype) {
		WriteError(w, "Unsupported file type. Allowed: JPEG, PNG, GIF, WebP.", http.StatusBadRequest)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		internalError(w, r, err)
		return
	}

	image, err := h.ImageService.UploadImage(r.Context(), user.ID, mux.Vars(r)["id"], header.Filename, file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			WriteError(w, msgPostNotOwned, http.StatusNotFound)
		case errors.Is(err, service.ErrImagesDisabled):
			WriteError(w, msgImagesDisabled, http.StatusServiceUnavailable)
		default:
			internalError(w, r, err)
		}
		return
	}

	writeSuccess(w, "Image uploaded successfully.", http.StatusCreated, Envelope{"image": newImageResponse(image)})
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		WriteError(w, "Authorization header missing or malformed.", http.StatusUnauthorized)
		return
	}

	if !h.ImageService.Enabled() {
		WriteError(w, msgImagesDisabled, http.StatusServiceUnavailable)
		return
	}

	vars := mux.Vars(r)

	err := h.ImageService.DeleteImage(r.Context(), user.ID, vars["id"], vars["imageId"])
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			WriteError(w, msgPostNotOwned, http.StatusNotFound)
		case errors.Is(err, service.ErrImageNotFound):
			WriteError(w, "Image not found.", http.StatusNotFound)
		case errors.Is(err, service.ErrImagesDisabled):
			WriteError(w, msgImagesDisabled, http.StatusServiceUnavailable)
		default:
			internalError(w, r, err)
		}
		return
	}

	writeSuccess(w, "Image deleted successfully.", http.StatusOK, nil)
}

func humanSize(size int64) string {
	if size >= 1<<20 {
		return fmt.Sprintf("%d MB", size>>20)
	}
	return fmt.Sprintf("%d KB", size>>10)
}
