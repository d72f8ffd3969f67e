package api

import (
	"net/http"
	"strings"

	"github.com/lueurxax/glint/internal/process/analysis"
	"github.com/lueurxax/glint/internal/process/summary"
)

const (
	errMsgSummaryRequired = "Summary is required"
	errMsgTextRequired    = "Text is required"
	defaultContentType    = "general"
	defaultNumBullets     = 5
)

func (h *Handler) handleAnalyzeText(w http.ResponseWriter, r *http.Request) int {
	var req analyzeTextRequest
	if status := h.decodePOST(w, r, &req); status != 0 {
		return status
	}

	if strings.TrimSpace(req.Summary) == "" {
		return h.writeError(w, http.StatusBadRequest, errMsgSummaryRequired)
	}

	svc := analysis.New(h.invoker, req.target(), loggerFrom(r.Context()))

	result, err := svc.AnalyzeAll(r.Context(), req.Summary, req.personalization())
	if err != nil {
		loggerFrom(r.Context()).Warn().Err(err).Msg("analysis failed")

		return h.writeError(w, http.StatusBadRequest, err.Error())
	}

	return h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleSummarizeText(w http.ResponseWriter, r *http.Request) int {
	var req summarizeTextRequest
	if status := h.decodePOST(w, r, &req); status != 0 {
		return status
	}

	if strings.TrimSpace(req.Text) == "" {
		return h.writeError(w, http.StatusBadRequest, errMsgTextRequired)
	}

	contentType := strings.TrimSpace(req.ContentType)
	if contentType == "" {
		contentType = defaultContentType
	}

	svc := summary.New(h.invoker, req.target(), loggerFrom(r.Context()))

	if req.BulletFormat {
		numBullets := defaultNumBullets
		if req.NumBullets != nil {
			numBullets = *req.NumBullets
		}

		bullets, err := svc.BulletSummary(r.Context(), req.Text, numBullets, contentType, req.personalization())
		if err != nil {
			loggerFrom(r.Context()).Warn().Err(err).Msg("bullet summary failed")

			return h.writeError(w, statusFor(err, http.StatusInternalServerError), err.Error())
		}

		return h.writeJSON(w, http.StatusOK, bulletSummaryResponse{BulletSummary: bullets})
	}

	result, err := svc.Summarize(r.Context(), req.Text, req.MaxLength, req.WithKeyPoints, contentType, req.personalization())
	if err != nil {
		loggerFrom(r.Context()).Warn().Err(err).Msg("summary failed")

		return h.writeError(w, statusFor(err, http.StatusInternalServerError), err.Error())
	}

	return h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleClassifyNews(w http.ResponseWriter, r *http.Request) int {
	var req classifyNewsRequest
	if status := h.decodePOST(w, r, &req); status != 0 {
		return status
	}

	svc := summary.New(h.invoker, req.target(), loggerFrom(r.Context()))

	result, err := svc.ClassifyNews(r.Context(), req.NewsList, req.personalization())
	if err != nil {
		loggerFrom(r.Context()).Warn().Err(err).Msg("classification failed")

		return h.writeError(w, statusFor(err, http.StatusInternalServerError), err.Error())
	}

	return h.writeJSON(w, http.StatusOK, result)
}
