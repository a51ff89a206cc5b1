package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
	"github.com/secmon-lab/dossier/pkg/usecase"
)

type actionRequest struct {
	Action  string        `json:"action"`
	Payload model.Payload `json:"payload"`
}

type openCaseRequest struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Origin        string `json:"origin"`
	CrimeSeverity *int   `json:"crime_severity"`
}

type attachSuspectRequest struct {
	SuspectID string `json:"suspect_id"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(model.ErrInvalidPayload, "failed to decode request body", goerr.V("error", err.Error()))
	}
	return nil
}

func caseIDParam(r *http.Request) (types.CaseID, error) {
	id := types.CaseID(chi.URLParam(r, "caseID"))
	if err := id.Validate(); err != nil {
		return "", goerr.Wrap(model.ErrInvalidPayload, "invalid case ID",
			goerr.V(model.CaseIDKey, id), goerr.V("error", err.Error()))
	}
	return id, nil
}

func (s *Server) listCasesHandler(w http.ResponseWriter, r *http.Request) {
	var status *types.CaseStatus
	if v := r.URL.Query().Get("status"); v != "" {
		st := types.CaseStatus(v)
		status = &st
	}

	cases, err := s.uc.ListCases(r.Context(), status)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]*caseResponse, len(cases))
	for i, c := range cases {
		resp[i] = toCaseResponse(c, nil)
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"cases": resp})
}

func (s *Server) openCaseHandler(w http.ResponseWriter, r *http.Request) {
	var req openCaseRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.CrimeSeverity == nil {
		handleError(w, r, goerr.Wrap(model.ErrInvalidPayload, "crime_severity is required"))
		return
	}

	file, err := s.uc.OpenCase(r.Context(), usecase.OpenCaseInput{
		ID:       types.CaseID(req.ID),
		Title:    req.Title,
		Origin:   types.CaseOrigin(req.Origin),
		Severity: types.CrimeSeverity(*req.CrimeSeverity),
		Actor:    actorFromContext(r.Context()),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toCaseResponse(file.Case, file.Suspects))
}

func (s *Server) caseStateHandler(w http.ResponseWriter, r *http.Request) {
	caseID, err := caseIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	file, err := s.uc.GetCaseState(r.Context(), caseID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toCaseResponse(file.Case, file.Suspects))
}

func (s *Server) attachSuspectHandler(w http.ResponseWriter, r *http.Request) {
	caseID, err := caseIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req attachSuspectRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	link, err := s.uc.AttachSuspect(r.Context(), usecase.AttachSuspectInput{
		CaseID:    caseID,
		SuspectID: types.SuspectID(req.SuspectID),
		FullName:  req.FullName,
		Role:      types.SuspectRole(req.Role),
		Actor:     actorFromContext(r.Context()),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toSuspectResponse(link))
}

func (s *Server) applyActionHandler(w http.ResponseWriter, r *http.Request) {
	caseID, err := caseIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req actionRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.uc.Apply(r.Context(), model.Command{
		CaseID:  caseID,
		Action:  types.Action(req.Action),
		Actor:   actorFromContext(r.Context()),
		Payload: req.Payload,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := &actionResponse{
		Case:  toCaseResponse(result.Case, result.Suspects),
		Entry: toHistoryResponse(result.Entry),
	}
	if result.Suspect != nil {
		sr := toSuspectResponse(result.Suspect)
		resp.Suspect = &sr
	}
	writeJSON(w, r, http.StatusOK, resp)
}
