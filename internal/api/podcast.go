package api

import (
	"net/http"

	"github.com/lueurxax/glint/internal/process/podcast"
)

func (h *Handler) handleGeneratePodcast(w http.ResponseWriter, r *http.Request) int {
	var req generatePodcastRequest
	if status := h.decodePOST(w, r, &req); status != 0 {
		return status
	}

	result := h.podcast.Generate(r.Context(), podcast.Request{
		Categories: req.Category,
		Style:      req.Style,
		Career:     req.Career,
		Voice:      req.Voice,
		Speed:      req.Speed,
		Model:      req.Model,
		Provider:   req.Provider,
		NewsAPIKey: req.NewsAPI,
		LLMAPIKey:  req.ModelAPI,
	})

	if !result.OK {
		return h.writeJSON(w, http.StatusNotFound, pipelineErrorResponse{
			Result: false,
			Error:  result.Error(),
			Stage:  result.Stage(),
		})
	}

	episode := result.Value

	if wantsHTML(r) {
		w.Header().Set(contentTypeHeader, contentTypeHTML)
		w.WriteHeader(http.StatusOK)

		if err := h.renderer.RenderPodcast(w, episode, audioURL(episode.AudioPath)); err != nil {
			loggerFrom(r.Context()).Error().Err(err).Msg("failed to render podcast page")
		}

		return http.StatusOK
	}

	return h.writeJSON(w, http.StatusOK, generatePodcastResponse{
		Result:    true,
		AudioPath: episode.AudioPath,
		AudioURL:  audioURL(episode.AudioPath),
		Script:    episode.Script,
	})
}
