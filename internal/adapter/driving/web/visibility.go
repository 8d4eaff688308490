package web

import (
	"sync"
	"time"
)

// Visibility registra quando a página foi vista pela última vez. O poller só consulta
// notificações enquanto algum navegador estiver com o dashboard aberto.
type Visibility struct {
	mu       sync.Mutex
	lastSeen time.Time
	window   time.Duration
	now      func() time.Time
}

// NewVisibility considera a página visível por window após o último acesso.
func NewVisibility(window time.Duration) *Visibility {
	return &Visibility{window: window, now: time.Now}
}

// Touch marks the page as seen now.
func (v *Visibility) Touch() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = v.now()
}

// Visible reports whether the page was seen within the window.
func (v *Visibility) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.lastSeen.IsZero() && v.now().Sub(v.lastSeen) <= v.window
}
