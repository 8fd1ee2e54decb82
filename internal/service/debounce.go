package service

import (
	"context"
	"sync"
	"time"

	"ammarstationary/internal/domain"
	"ammarstationary/internal/models"
)

// ValidationResult is delivered once per settled input.
type ValidationResult struct {
	Code  string
	Promo *models.PromoCode
	Err   error
}

// DebouncedValidator coalesces rapid promo code input into one validation.
// Each Submit restarts the settle timer; only the latest code is validated
// and only its result is delivered. Used by interactive sessions where the
// code arrives keystroke by keystroke.
type DebouncedValidator struct {
	promos  domain.PromoService
	delay   time.Duration
	results chan ValidationResult

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	seq     uint64
	closed  bool
}

func NewDebouncedValidator(promos domain.PromoService, delay time.Duration) *DebouncedValidator {
	if delay <= 0 {
		delay = models.PromoDebounceDelayMs * time.Millisecond
	}
	return &DebouncedValidator{
		promos:  promos,
		delay:   delay,
		results: make(chan ValidationResult, 1),
	}
}

// Results yields at most one result per settled input. Superseded inputs are
// dropped without a result.
func (d *DebouncedValidator) Results() <-chan ValidationResult {
	return d.results
}

// Submit records the latest raw input and restarts the settle timer.
func (d *DebouncedValidator) Submit(ctx context.Context, rawCode string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	d.pending = rawCode
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(ctx, seq)
	})
}

// Flush validates the pending input immediately, bypassing the timer. Used
// when the caller commits (submits the form) before the delay lapses.
func (d *DebouncedValidator) Flush(ctx context.Context) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	d.fire(ctx, seq)
}

// Close stops the timer and closes the results channel. No Submit may follow.
func (d *DebouncedValidator) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	close(d.results)
}

func (d *DebouncedValidator) fire(ctx context.Context, seq uint64) {
	d.mu.Lock()
	if d.closed || seq != d.seq {
		// A newer submission superseded this one.
		d.mu.Unlock()
		return
	}
	code := d.pending
	d.mu.Unlock()

	promo, err := d.promos.Validate(ctx, code)

	// The staleness check and the send share one critical section: Close
	// closes d.results under the same mutex, so a send can never race a close.
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || seq != d.seq {
		return
	}

	result := ValidationResult{Code: models.NormalizePromoCode(code), Promo: promo, Err: err}
	select {
	case d.results <- result:
	default:
		// Drop the unread previous result; latest wins.
		select {
		case <-d.results:
		default:
		}
		select {
		case d.results <- result:
		default:
		}
	}
}
