package httpapi

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/riskibarqy/match-predictor/internal/domain/standing"
	"github.com/valyala/bytebufferpool"
)

//go:embed templates/standings.html
var standingsHTML string

var standingsTemplate = template.Must(template.New("standings").Parse(standingsHTML))

type standingsView struct {
	Standings []standing.Standing
}

// Standings renders the page into a pooled buffer before any byte is written.
func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Standings")
	defer span.End()

	items, err := h.standingService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := h.standingsPage.Execute(buf, standingsView{Standings: items}); err != nil {
		h.logger.ErrorContext(ctx, "render standings failed", "error", err)
		writeInternalError(ctx, w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.B)
}
