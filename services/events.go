package services

import (
	"errors"
	"sync"
)

const (
	EventUserConfirmed = "event.user.confirmed"
	EventUserDeclined  = "event.user.declined"
)

// SeshRSVP chỉ mang id, handler tự resolve bản ghi khi chạy
type SeshRSVP struct {
	UserID uint
	SeshID uint
}

type RSVPHandler func(SeshRSVP) error

// Dispatcher: pub/sub trong process. Emit chạy tuần tự hết các handler
// đã đăng ký rồi mới trả về; lỗi handler trả ngược cho caller.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]RSVPHandler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]RSVPHandler)}
}

func (d *Dispatcher) Subscribe(event string, h RSVPHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[event] = append(d.handlers[event], h)
}

func (d *Dispatcher) Emit(event string, payload SeshRSVP) error {
	d.mu.RLock()
	hs := make([]RSVPHandler, len(d.handlers[event]))
	copy(hs, d.handlers[event])
	d.mu.RUnlock()

	var errs []error
	for _, h := range hs {
		if err := h(payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
