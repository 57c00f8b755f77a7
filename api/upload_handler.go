package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/research-lab-backend/errs"
)

// maxMemoryUpload is how much of a multipart form is held in memory; the
// remainder spills to temporary files.
const maxMemoryUpload = 32 << 20

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	uploader  Uploader
}

func newUploadHandler(uploader Uploader) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		uploader:  uploader,
	}
}

// uploadFile relays a file to object storage
// @Summary Upload a file
// @Description Stores the multipart "file" field in the lab-website folder and returns its public location
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} services.StoredObject "Stored object"
// @Failure 400 {object} ErrorResponse "Bad Request - No file provided"
// @Failure 502 {object} ErrorResponse "Bad Gateway - Upload failed"
// @Failure 503 {object} ErrorResponse "Service Unavailable - Storage not configured"
// @Router /upload [post]
func (h uploadHandler) uploadFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.uploader == nil {
			h.responder.WriteError(w, errs.NewServiceNotConfiguredError("upload"))
			return
		}

		if err := r.ParseMultipartForm(maxMemoryUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		object, err := h.uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
		if err != nil {
			h.responder.WriteError(w, errs.NewUploadError(err))
			return
		}

		h.logger.Info().
			Str("admin", adminFromContext(r.Context())).
			Str("key", object.Key).
			Int64("size", object.Size).
			Msg("file uploaded")

		h.responder.WriteJSON(w, http.StatusCreated, object)
	}
}
