package server

import (
	"context"
	"mime"
	"net/http"

	"github.com/jonathan/intelliresume/internal/ingestion"
	"github.com/jonathan/intelliresume/internal/logging"
	"github.com/jonathan/intelliresume/internal/rendering"
	"github.com/jonathan/intelliresume/internal/types"
)

// GenerateRequest is the body of POST /resumes/generate.
type GenerateRequest struct {
	types.GenerateRequest
	// SaveToHistory defaults to true when omitted.
	SaveToHistory *bool `json:"save_to_history,omitempty"`
}

// GenerateResponse is the body returned by POST /resumes/generate.
type GenerateResponse struct {
	Resume       *types.ResumeDocument `json:"resume"`
	HistoryEntry *types.HistoryEntry   `json:"history_entry,omitempty"`
}

// FeedbackResponse is the body returned by POST /resumes/feedback.
type FeedbackResponse struct {
	Feedback string `json:"feedback"`
}

// handleGenerate builds a resume from the form input with one model call.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	req.JobDescription = ingestion.CleanJobDescription(req.JobDescription)
	if err := validationError(req.GenerateRequest.Validate()); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	// A client disconnect does not abort a model call already in flight.
	ctx := context.WithoutCancel(r.Context())

	doc, err := s.generator.GenerateResume(ctx, req.GenerateRequest)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	resp := GenerateResponse{Resume: doc}
	if req.SaveToHistory == nil || *req.SaveToHistory {
		entry, err := s.history.Add(ctx, *doc)
		if err != nil {
			// The entry is kept in memory; only persistence failed.
			logging.FromContext(ctx).Error("failed to persist history", "error", err)
		}
		resp.HistoryEntry = &entry
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleFeedback asks the model to critique a generated resume.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req types.FeedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	req.JobDescription = ingestion.CleanJobDescription(req.JobDescription)
	if err := validationError(req.Validate()); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	feedback, err := s.generator.GetFeedback(context.WithoutCancel(r.Context()), req)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, FeedbackResponse{Feedback: feedback})
}

// handleExport renders the posted resume as an attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := types.ParseExportFormat(r.PathValue("format"))
	if err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "format", Message: err.Error()})
		return
	}

	templateID := s.defaultTemplate
	if q := r.URL.Query().Get("template"); q != "" {
		if templateID, err = types.ParseTemplateID(q); err != nil {
			s.errorResponse(w, r, &ErrValidation{Field: "template", Message: err.Error()})
			return
		}
	}

	var doc types.ResumeDocument
	if err := decodeJSON(w, r, &doc); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	data, err := rendering.Render(r.Context(), &doc, format, templateID, s.pdf)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	writeAttachment(w, format.ContentType(), rendering.FileName(&doc, string(format)), data)
}

func writeAttachment(w http.ResponseWriter, contentType, fileName string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
