package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/utils/errutil"
	"github.com/secmon-lab/dossier/pkg/utils/safe"
)

type errorResponse struct {
	Error      string   `json:"error"`
	Message    string   `json:"message"`
	Reason     string   `json:"reason,omitempty"`
	SuspectIDs []string `json:"suspect_ids,omitempty"`
	Capability string   `json:"capability,omitempty"`
	Status     string   `json:"status,omitempty"`
	Action     string   `json:"action,omitempty"`
}

// statusClientClosedRequest reports a request the caller abandoned
const statusClientClosedRequest = 499

var errorCodes = []struct {
	err    error
	code   string
	status int
}{
	{model.ErrNotFound, "not_found", http.StatusNotFound},
	{model.ErrForbidden, "forbidden", http.StatusForbidden},
	{model.ErrInvalidTransition, "invalid_transition", http.StatusConflict},
	{model.ErrConflict, "conflict", http.StatusConflict},
	{model.ErrPreconditionFailed, "precondition_failed", http.StatusUnprocessableEntity},
	{model.ErrAlreadyScored, "already_scored", http.StatusUnprocessableEntity},
	{model.ErrAlreadyDecided, "already_decided", http.StatusUnprocessableEntity},
	{model.ErrInvalidScore, "invalid_score", http.StatusBadRequest},
	{model.ErrInvalidDecision, "invalid_decision", http.StatusBadRequest},
	{model.ErrInvalidPayload, "invalid_payload", http.StatusBadRequest},
	{model.ErrUnknownAction, "unknown_action", http.StatusBadRequest},
	{model.ErrBusy, "busy", http.StatusServiceUnavailable},
	{context.Canceled, "cancelled", statusClientClosedRequest},
}

// toErrorResponse maps a workflow error onto its HTTP status and body
func toErrorResponse(err error) (int, *errorResponse) {
	resp := &errorResponse{Error: "internal", Message: "internal server error"}
	status := http.StatusInternalServerError

	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			resp.Error = c.code
			resp.Message = err.Error()
			status = c.status
			break
		}
	}

	var pre *model.PreconditionError
	if errors.As(err, &pre) {
		resp.Reason = string(pre.Reason)
		for _, id := range pre.SuspectIDs {
			resp.SuspectIDs = append(resp.SuspectIDs, id.String())
		}
	}
	var forbidden *model.ForbiddenError
	if errors.As(err, &forbidden) {
		resp.Capability = forbidden.Capability.String()
	}
	var transition *model.TransitionError
	if errors.As(err, &transition) {
		resp.Status = transition.Status.String()
		resp.Action = transition.Action.String()
	}

	return status, resp
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := toErrorResponse(err)
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "1")
	}
	errutil.HandleHTTP(r.Context(), w, err, status, resp)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError,
			&errorResponse{Error: "internal", Message: "failed to encode response"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}
