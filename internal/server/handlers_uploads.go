package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/intelliresume/internal/ingestion"
	"github.com/jonathan/intelliresume/internal/types"
)

// maxUploadBody leaves room for multipart framing around a 5 MB file.
const maxUploadBody = types.MaxUploadedResumeBytes + 64<<10

// handleUpload accepts a plain-text resume in the multipart field "file" and
// returns its cleaned text for use as uploadedResumeText.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			s.errorResponse(w, r, err)
			return
		}
		s.errorResponse(w, r, &ErrValidation{Field: "file", Message: "a multipart file field named \"file\" is required"})
		return
	}
	defer func() { _ = file.Close() }()

	upload, err := ingestion.ReadUpload(header.Filename, header.Size, file)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, upload)
}
