package get_booked_slots

import (
	"net/http"

	"github.com/kmlvnk/ST-BookingService/internal/api/handlers"
)

type Handler struct {
	reservations ReservationStore
	logger       Logger
}

func NewHandler(reservations ReservationStore, logger Logger) *Handler {
	return &Handler{
		reservations: reservations,
		logger:       logger,
	}
}

// Handle GET /api/v1/slots/booked
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservations.ListReserved(r.Context())
	if err != nil {
		h.logger.Error("GET /slots/booked - Failed to list reservations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromReservations(reservations))
}
