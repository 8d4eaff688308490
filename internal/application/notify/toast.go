package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
)

const (
	// ToastStagger separa a exibição de toasts consecutivos.
	ToastStagger = 200 * time.Millisecond
	// ToastLifetime é quanto tempo um toast fica visível.
	ToastLifetime = 8 * time.Second
)

// Toast is a notification scheduled for display.
type Toast struct {
	ID           string              `json:"id"`
	Notification entity.Notification `json:"notification"`
	Color        string              `json:"color"`
	Delay        time.Duration       `json:"delay"`
	ExpiresAt    time.Time           `json:"expires_at"`
}

// BuildToasts converts a batch of notifications into staggered toasts.
func BuildToasts(items []entity.Notification, now time.Time) []Toast {
	toasts := make([]Toast, 0, len(items))
	for i, n := range items {
		delay := time.Duration(i) * ToastStagger
		toasts = append(toasts, Toast{
			ID:           uuid.NewString(),
			Notification: n,
			Color:        n.Priority.Color(),
			Delay:        delay,
			ExpiresAt:    now.Add(delay + ToastLifetime),
		})
	}
	return toasts
}

// Sink displays toasts. Clear runs before every batch.
type Sink interface {
	Clear()
	Show(toasts []Toast)
}

// ToastBoard keeps the current toasts in memory for the HTML dashboard.
type ToastBoard struct {
	mu     sync.Mutex
	toasts []Toast
	now    func() time.Time
}

// NewToastBoard cria um quadro de toasts vazio.
func NewToastBoard() *ToastBoard {
	return &ToastBoard{now: time.Now}
}

func (b *ToastBoard) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.toasts = nil
}

func (b *ToastBoard) Show(toasts []Toast) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.toasts = append(b.toasts, toasts...)
}

// Active returns the toasts that have not expired, ordered by display delay.
func (b *ToastBoard) Active() []Toast {
	now := b.now()
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.toasts[:0]
	for _, t := range b.toasts {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	b.toasts = kept

	out := append([]Toast(nil), kept...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Delay < out[j].Delay })
	return out
}

// Dismiss fecha um toast antes de expirar.
func (b *ToastBoard) Dismiss(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, t := range b.toasts {
		if t.ID == id {
			b.toasts = append(b.toasts[:i], b.toasts[i+1:]...)
			return true
		}
	}
	return false
}
