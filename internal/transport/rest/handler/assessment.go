package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"mindhaven/internal/assessment"
	"mindhaven/internal/model"
	"mindhaven/internal/unlock"
)

// AssessmentHandler handles the assessment and unlock endpoints
type AssessmentHandler struct {
	sessions   *assessment.Manager
	visibility *unlock.Hub
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(sessions *assessment.Manager, visibility *unlock.Hub) *AssessmentHandler {
	return &AssessmentHandler{
		sessions:   sessions,
		visibility: visibility,
	}
}

// StartRequest is the request body for starting an assessment
type StartRequest struct {
	Mode model.Mode `json:"mode"`
}

// SessionResponse is the progress view of a session
type SessionResponse struct {
	SessionID string           `json:"sessionId"`
	State     assessment.State `json:"state"`
	Mode      model.Mode       `json:"mode,omitempty"`
	Position  int              `json:"position"`
	Total     int              `json:"total"`
	Question  *model.Question  `json:"question,omitempty"`
}

func sessionView(snap assessment.Snapshot) SessionResponse {
	return SessionResponse{
		SessionID: snap.ID,
		State:     snap.State,
		Mode:      snap.Mode,
		Position:  snap.Position,
		Total:     snap.Total,
		Question:  snap.Current,
	}
}

// Create handles POST /v1/assessments
func (h *AssessmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.sessions.Create(req.Mode, assessment.IsMobileUserAgent(r.UserAgent()))
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, sessionView(sess.Snapshot()))
}

// Get handles GET /v1/assessments/{id}
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, sessionView(sess.Snapshot()))
}

// Restart handles POST /v1/assessments/{id}/start after a reset
func (h *AssessmentHandler) Restart(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.sessions.Restart(mux.Vars(r)["id"], req.Mode)
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, sessionView(sess.Snapshot()))
}

// AnswerRequest is the request body for answering the current question
type AnswerRequest struct {
	Score int `json:"score"`
}

// Answer handles POST /v1/assessments/{id}/answers
func (h *AssessmentHandler) Answer(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := sess.Answer(req.Score); err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, sessionView(sess.Snapshot()))
}

// Back handles POST /v1/assessments/{id}/back
func (h *AssessmentHandler) Back(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	if err := sess.GoBack(); err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, sessionView(sess.Snapshot()))
}

// Reset handles POST /v1/assessments/{id}/reset
func (h *AssessmentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.sessions.Reset(id); err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	sess, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sessionView(sess.Snapshot()))
}

// ResultResponse is the report view. While locked only the level and the
// warm intro are exposed; the detailed sections appear once unlocked.
type ResultResponse struct {
	Locked                bool                               `json:"locked"`
	UnlockMethod          unlock.Method                      `json:"unlockMethod,omitempty"`
	Level                 string                             `json:"level"`
	WarmIntro             string                             `json:"warmIntro"`
	DetailedAnalysis      string                             `json:"detailedAnalysis,omitempty"`
	FactorScores          map[model.Factor]model.FactorScore `json:"factorScores,omitempty"`
	ComprehensiveAnalysis []model.FactorInsight              `json:"comprehensiveAnalysis,omitempty"`
}

// Result handles GET /v1/assessments/{id}/result
func (h *AssessmentHandler) Result(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	snap := sess.Snapshot()
	if snap.State != assessment.StateCompleted || snap.Result == nil {
		writeError(w, http.StatusBadRequest, "assessment not completed")
		return
	}

	resp := ResultResponse{
		Locked:    !snap.Unlocked,
		Level:     snap.Result.Level,
		WarmIntro: snap.Result.WarmIntro,
	}
	if snap.Unlocked {
		resp.DetailedAnalysis = snap.Result.DetailedAnalysis
		resp.FactorScores = snap.Result.FactorScores
		resp.ComprehensiveAnalysis = snap.Result.ComprehensiveAnalysis
	} else if gate, err := h.sessions.Gate(id); err == nil {
		resp.UnlockMethod = gate.Method()
	}

	writeJSON(w, http.StatusOK, resp)
}

// CopyShare handles POST /v1/assessments/{id}/unlock/share/copy
func (h *AssessmentHandler) CopyShare(w http.ResponseWriter, r *http.Request) {
	gate, err := h.sessions.Gate(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	text, err := gate.CopyShare()
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"shareText": text})
}

// VisibilityRegained handles POST /v1/assessments/{id}/unlock/visibility.
// The client reports that it returned to the foreground; subscribers for
// this session, if any, decide what that means.
func (h *AssessmentHandler) VisibilityRegained(w http.ResponseWriter, r *http.Request) {
	h.visibility.Publish(mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ChooseChannelRequest is the request body for picking a payment channel
type ChooseChannelRequest struct {
	Channel model.Channel `json:"channel"`
}

// ChooseChannel handles POST /v1/assessments/{id}/unlock/pay
func (h *AssessmentHandler) ChooseChannel(w http.ResponseWriter, r *http.Request) {
	gate, err := h.sessions.Gate(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	var req ChooseChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := gate.ChooseChannel(r.Context(), req.Channel)
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// CancelPayment handles POST /v1/assessments/{id}/unlock/pay/cancel
func (h *AssessmentHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	gate, err := h.sessions.Gate(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	if err := gate.Cancel(); err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ConfirmPayment handles POST /v1/assessments/{id}/unlock/pay/confirm
func (h *AssessmentHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	gate, err := h.sessions.Gate(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	if err := gate.Confirm(r.Context()); err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
