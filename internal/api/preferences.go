package api

import (
	"encoding/json"
	"net/http"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

var emptyPreferences = json.RawMessage("[]")

// handlePreferences echoes the submitted preferences. Nothing is stored.
func (h *Handler) handlePreferences(w http.ResponseWriter, r *http.Request) int {
	if r.Method != http.MethodPost {
		return h.writeJSON(w, http.StatusMethodNotAllowed, preferencesResponse{
			Status:  statusError,
			Message: errMsgMethodNotAllow,
		})
	}

	var req preferencesRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return h.writeJSON(w, http.StatusBadRequest, preferencesResponse{
			Status:  statusError,
			Message: "Request failed. Please try again.: " + err.Error(),
		})
	}

	prefs := req.Preferences
	if len(prefs) == 0 || string(prefs) == "null" {
		prefs = emptyPreferences
	}

	loggerFrom(r.Context()).Info().RawJSON("preferences", prefs).Msg("preferences saved")

	return h.writeJSON(w, http.StatusOK, preferencesResponse{
		Status:      statusSuccess,
		Message:     "Preferences saved",
		Preferences: prefs,
	})
}
