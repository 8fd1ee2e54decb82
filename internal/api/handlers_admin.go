package api

import (
	"net/http"
	"strings"
	"time"

	"ammarstationary/internal/models"
	"ammarstationary/internal/worker"
)

func (s *HTTPServer) handleAdminCards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in models.CardInsert
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	card, err := s.catalog.CreateCard(r.Context(), &in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (s *HTTPServer) handleAdminCardByID(w http.ResponseWriter, r *http.Request) {
	id, sub, ok := splitResource(r.URL.Path, "/api/v1/admin/cards/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if sub == "availability" {
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req struct {
			Available bool `json:"available"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := s.catalog.SetCardAvailability(r.Context(), id, req.Available); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "available": req.Available})
		return
	}
	if sub != "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var in models.CardInsert
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		card, err := s.catalog.UpdateCard(r.Context(), id, &in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, card)
	case http.MethodDelete:
		if err := s.catalog.DeleteCard(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleAdminCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in models.CategoryInsert
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	category, err := s.catalog.CreateCategory(r.Context(), &in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (s *HTTPServer) handleAdminCategoryByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTail(r.URL.Path, "/api/v1/admin/categories/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch r.Method {
	case http.MethodPut:
		var in models.CategoryInsert
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		category, err := s.catalog.UpdateCategory(r.Context(), id, &in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, category)
	case http.MethodDelete:
		if err := s.catalog.DeleteCategory(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleAdminServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in models.ServiceInsert
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	svc, err := s.catalog.CreateService(r.Context(), &in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, svc)
}

func (s *HTTPServer) handleAdminServiceByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTail(r.URL.Path, "/api/v1/admin/services/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch r.Method {
	case http.MethodPut:
		var in models.ServiceInsert
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		svc, err := s.catalog.UpdateService(r.Context(), id, &in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, svc)
	case http.MethodDelete:
		if err := s.catalog.DeleteService(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// promoView decorates a promo code with its derived admin label.
type promoView struct {
	*models.PromoCode
	DisplayStatus string `json:"display_status"`
}

func promoViews(promos []*models.PromoCode, now time.Time) []promoView {
	views := make([]promoView, 0, len(promos))
	for _, p := range promos {
		views = append(views, promoView{PromoCode: p, DisplayStatus: p.DisplayStatus(now)})
	}
	return views
}

func (s *HTTPServer) handleAdminPromos(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		promos, err := s.promos.List(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"promo_codes": promoViews(promos, time.Now())})
	case http.MethodPost:
		var in models.PromoCodeInsert
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		promo, err := s.promos.Create(r.Context(), &in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, promoView{PromoCode: promo, DisplayStatus: promo.DisplayStatus(time.Now())})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleAdminPromoByID(w http.ResponseWriter, r *http.Request) {
	id, sub, ok := splitResource(r.URL.Path, "/api/v1/admin/promo-codes/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if sub == "toggle" {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		promo, err := s.promos.Toggle(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, promoView{PromoCode: promo, DisplayStatus: promo.DisplayStatus(time.Now())})
		return
	}
	if sub != "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		promo, err := s.promos.Get(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, promoView{PromoCode: promo, DisplayStatus: promo.DisplayStatus(time.Now())})
	case http.MethodPut:
		var up models.PromoCodeUpdate
		if err := decodeJSON(r, &up); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		promo, err := s.promos.Update(r.Context(), id, &up)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, promoView{PromoCode: promo, DisplayStatus: promo.DisplayStatus(time.Now())})
	case http.MethodDelete:
		if err := s.promos.Delete(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleAdminBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	bookings, err := s.bookings.ListBookingRequests(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (s *HTTPServer) handleAdminBookingStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	counts, err := s.bookings.CountByStatus(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"counts": counts})
}

func (s *HTTPServer) handleAdminBookingByID(w http.ResponseWriter, r *http.Request) {
	id, sub, ok := splitResource(r.URL.Path, "/api/v1/admin/bookings/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if sub == "status" {
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req struct {
			Status string `json:"status"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		booking, err := s.bookings.ChangeStatus(r.Context(), id, req.Status)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
		return
	}
	if sub != "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		booking, err := s.bookings.GetBookingRequest(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	case http.MethodDelete:
		if err := s.bookings.DeleteBookingRequest(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleAdminContact(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		settings, err := s.catalog.ListContactSettings(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"contact": settings})
		return
	}
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.catalog.SetContactSetting(r.Context(), req.Key, req.Value); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": req.Key, "value": req.Value})
}

// handleAdminExports triggers a full workbook export through the background
// queue; completion is asynchronous.
func (s *HTTPServer) handleAdminExports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.exports == nil {
		writeError(w, http.StatusServiceUnavailable, "exports are not configured")
		return
	}
	if err := s.exports.EnqueueFullExport(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("enqueue full export failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued", "task_type": worker.TaskFullExport})
}

// splitResource parses "<prefix><id>" or "<prefix><id>/<sub>" paths.
func splitResource(path, prefix string) (id, sub string, ok bool) {
	if !strings.HasPrefix(path, prefix) {
		return "", "", false
	}
	parts := strings.Split(strings.TrimPrefix(path, prefix), "/")
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return "", "", false
		}
		return parts[0], "", true
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return "", "", false
		}
		return parts[0], parts[1], true
	default:
		return "", "", false
	}
}
