package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	position := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("position")))

	players := h.registry.All()
	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		if position != "" && p.Position != position {
			continue
		}
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
