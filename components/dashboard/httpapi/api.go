package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-metrics-dashboard/components/dashboard"
	"github.com/goliatone/go-metrics-dashboard/components/dashboard/commands"
)

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	API Executor
	// Viewer resolves the authenticated viewer; commands run anonymously
	// when nil.
	Viewer func(*http.Request) dashboard.ViewerContext
}

func (h *Handlers) actor(r *http.Request) commands.Actor {
	if h.Viewer == nil {
		return commands.Actor{}
	}
	return commands.ActorFromViewer(h.Viewer(r))
}

// StatusFor maps dashboard errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, dashboard.ErrPanelNotFound):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrProtectedPanel):
		return http.StatusConflict
	case dashboard.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) HandleCreatePanel(w http.ResponseWriter, r *http.Request) {
	var input commands.CreatePanelInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	input.Actor = h.actor(r)
	input.Result = &commands.PanelResult{}
	if err := h.API.CreatePanel(r.Context(), input); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, input.Result)
}

func (h *Handlers) HandleClonePanel(w http.ResponseWriter, r *http.Request, panelID string) {
	input := commands.ClonePanelInput{PanelID: panelID, Actor: h.actor(r), Result: &commands.PanelResult{}}
	if err := h.API.ClonePanel(r.Context(), input); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, input.Result)
}

func (h *Handlers) HandleDeletePanel(w http.ResponseWriter, r *http.Request, panelID string) {
	input := commands.DeletePanelInput{PanelID: panelID, Actor: h.actor(r)}
	if err := h.API.DeletePanel(r.Context(), input); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": panelID})
}

func (h *Handlers) HandleUpdateLayout(w http.ResponseWriter, r *http.Request) {
	var input commands.UpdateLayoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	input.Actor = h.actor(r)
	if err := h.API.UpdateLayout(r.Context(), input); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// HandleSaveSettings accepts url-encoded form posts.
func (h *Handlers) HandleSaveSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var saved dashboard.Settings
	input := commands.SaveSettingsInput{Form: r.PostForm, Result: &saved}
	if err := h.API.SaveSettings(r.Context(), input); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
