package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/lueurxax/glint/internal/core/speech"
)

func (h *Handler) handleTextToSpeech(w http.ResponseWriter, r *http.Request) int {
	var req textToSpeechRequest
	if status := h.decodePOST(w, r, &req); status != 0 {
		return status
	}

	if strings.TrimSpace(req.Text) == "" {
		return h.writeError(w, http.StatusBadRequest, errMsgTextRequired)
	}

	artifact, err := h.speech.SynthesizeToTemp(r.Context(), speech.Request{
		Text:   req.Text,
		Voice:  req.Voice,
		Model:  req.Model,
		Format: req.Format,
		Speed:  req.Speed,
	})
	if err != nil {
		loggerFrom(r.Context()).Warn().Err(err).Msg("text to speech failed")

		return h.writeError(w, statusFor(err, http.StatusInternalServerError), err.Error())
	}

	defer func() {
		if rmErr := os.Remove(artifact.Path); rmErr != nil {
			loggerFrom(r.Context()).Debug().Err(rmErr).Str("path", artifact.Path).Msg("removing temp audio")
		}
	}()

	f, err := os.Open(artifact.Path)
	if err != nil {
		return h.writeError(w, http.StatusInternalServerError, err.Error())
	}
	defer f.Close()

	if info, statErr := f.Stat(); statErr == nil {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	}

	w.Header().Set(contentTypeHeader, artifact.Format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "speech"+artifact.Format.Extension()))
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, f); err != nil {
		loggerFrom(r.Context()).Warn().Err(err).Msg("streaming audio failed")
	}

	return http.StatusOK
}
