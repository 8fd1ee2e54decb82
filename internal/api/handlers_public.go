package api

import (
	"errors"
	"net/http"

	"ammarstationary/internal/database"
	"ammarstationary/internal/metrics"
	"ammarstationary/internal/models"
)

func (s *HTTPServer) handleCards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	filter := models.CardFilter{
		CategoryID: r.URL.Query().Get("category"),
		Rarity:     r.URL.Query().Get("rarity"),
		Query:      r.URL.Query().Get("q"),
	}
	if v := r.URL.Query().Get("available"); v != "" {
		available := v == "true" || v == "1"
		filter.Available = &available
	}
	if v := r.URL.Query().Get("featured"); v != "" {
		featured := v == "true" || v == "1"
		filter.Featured = &featured
	}

	cards, err := s.catalog.ListCards(r.Context(), filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("list cards failed")
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cards": cards})
}

func (s *HTTPServer) handleCardByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id, ok := pathTail(r.URL.Path, "/api/v1/cards/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	card, err := s.catalog.GetCard(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *HTTPServer) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	categories, err := s.catalog.ListCategories(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list categories failed")
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *HTTPServer) handleServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	services, err := s.catalog.ListServices(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

func (s *HTTPServer) handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	settings, err := s.catalog.ListContactSettings(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contact": settings})
}

type quoteRequest struct {
	CardID    string `json:"card_id"`
	CardPrice int64  `json:"card_price"`
	Quantity  int64  `json:"quantity"`
	PromoCode string `json:"promo_code"`
}

type quoteResponse struct {
	Subtotal        int64  `json:"subtotal"`
	DiscountAmount  int64  `json:"discount_amount"`
	FinalPrice      int64  `json:"final_price"`
	PromoApplied    bool   `json:"promo_applied"`
	PromoCode       string `json:"promo_code,omitempty"`
	DiscountPercent int    `json:"discount_percent,omitempty"`
	PromoError      string `json:"promo_error,omitempty"`
}

// handleQuote prices a prospective booking. A rejected promo code is not an
// HTTP error: the base quote is returned with promo_error set, so the
// storefront can show the total and the rejection together.
func (s *HTTPServer) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.allowWrite(r) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CardPrice < 0 {
		writeError(w, http.StatusBadRequest, "card_price must not be negative")
		return
	}

	// card_id wins over a client-supplied price
	if req.CardID != "" {
		card, err := s.catalog.GetCard(r.Context(), req.CardID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		req.CardPrice = card.Price
	}

	quote, promo, err := s.bookings.Quote(r.Context(), req.CardPrice, req.Quantity, req.PromoCode)
	resp := quoteResponse{
		Subtotal:       quote.Subtotal,
		DiscountAmount: quote.DiscountAmount,
		FinalPrice:     quote.FinalPrice,
	}
	switch {
	case err != nil && errors.Is(err, database.ErrPromoNotUsable):
		resp.PromoError = "promo code is not valid"
		metrics.IncPromoValidation("rejected")
	case err != nil:
		writeDomainError(w, err)
		return
	case promo != nil:
		resp.PromoApplied = true
		resp.PromoCode = promo.Code
		resp.DiscountPercent = promo.DiscountPercent
		metrics.IncPromoValidation("applied")
	default:
		metrics.IncPromoValidation("none")
	}
	writeJSON(w, http.StatusOK, resp)
}

type createBookingRequest struct {
	CardID    *string `json:"card_id"`
	CardName  string  `json:"card_name"`
	CardPrice int64   `json:"card_price"`
	FullName  string  `json:"full_name"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	Quantity  int64   `json:"quantity"`
	Message   string  `json:"message"`
	PromoCode string  `json:"promo_code"`
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.allowWrite(r) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}
	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// card_id wins over client-supplied name and price, same as handleQuote
	if req.CardID != nil && *req.CardID != "" {
		card, err := s.catalog.GetCard(r.Context(), *req.CardID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		req.CardName = card.Name
		req.CardPrice = card.Price
	}

	in := &models.BookingRequestInsert{
		CardID:    req.CardID,
		CardName:  req.CardName,
		CardPrice: req.CardPrice,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Email:     req.Email,
		Quantity:  req.Quantity,
		Message:   req.Message,
	}

	booking, err := s.bookings.CreateBookingRequest(r.Context(), in, req.PromoCode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}
