// Package httpx provides the HTTP surface of the text2ture job service.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/target/text2ture/internal/service"
)

// JobSubmitter accepts new jobs. *service.Submitter satisfies it.
type JobSubmitter interface {
	Submit(ctx context.Context, req service.SubmitRequest) (service.SubmitResponse, error)
}

// StatusProvider reports job status. *service.StatusReader satisfies it.
type StatusProvider interface {
	Status(ctx context.Context, uid string) (service.StatusResponse, error)
}

// JobHandlers provides HTTP handlers for job submission and status.
type JobHandlers struct {
	Submitter    JobSubmitter
	Status       StatusProvider
	MaxBodyBytes int64
}

// Submit handles POST /submit. The body may be JSON or a form; in a form the
// structured parameters are JSON-encoded strings.
func (h *JobHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	if h.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	}

	req, ok := h.decodeSubmit(w, r)
	if !ok {
		return
	}

	resp, err := h.Submitter.Submit(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h *JobHandlers) decodeSubmit(w http.ResponseWriter, r *http.Request) (service.SubmitRequest, bool) {
	var req service.SubmitRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := parseForm(r, mediaType, h.MaxBodyBytes); err != nil {
			code := http.StatusBadRequest
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				code = http.StatusRequestEntityTooLarge
			}
			WriteError(w, ErrorParams{Code: code, ErrCode: "invalid_form", Err: err})
			return req, false
		}
		req = service.SubmitRequest{
			UID:             r.PostFormValue("uid"),
			Text:            r.PostFormValue("text"),
			AudioURL:        r.PostFormValue("audio_url"),
			InferenceParams: formJSON(r.PostFormValue("inference_params")),
			CustomArg:       formJSON(r.PostFormValue("custom_arg")),
		}
		return req, true
	default:
		return req, DecodeJSON(w, r, &req)
	}
}

func parseForm(r *http.Request, mediaType string, maxBytes int64) error {
	if mediaType == "multipart/form-data" {
		if maxBytes <= 0 {
			maxBytes = 1 << 20
		}
		return r.ParseMultipartForm(maxBytes)
	}
	return r.ParseForm()
}

// formJSON carries a form value as raw JSON; malformed values are tolerated downstream.
func formJSON(v string) json.RawMessage {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return json.RawMessage(v)
}

// GetStatus handles GET /status/{uid}.
func (h *JobHandlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Status.Status(r.Context(), r.PathValue("uid"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}
