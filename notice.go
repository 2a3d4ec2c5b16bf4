package xlpanel

import "sync"

// NoticeLevel classifies user-visible notices.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

func (l NoticeLevel) String() string {
	if l == NoticeError {
		return "error"
	}
	return "info"
}

// Notice is a user-visible message produced by a trigger.
type Notice struct {
	Level   NoticeLevel
	Action  string // "refresh" or "export"
	Message string
}

// Notifier receives notices from a Session.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notice)

// Notify calls f.
func (f NotifierFunc) Notify(n Notice) { f(n) }

// NoticeBoard is a Notifier that keeps the most recent notice for display.
type NoticeBoard struct {
	mu   sync.Mutex
	last *Notice
}

// Notify implements Notifier.
func (b *NoticeBoard) Notify(n Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = &n
}

// Last returns the most recent notice, if any.
func (b *NoticeBoard) Last() (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.last == nil {
		return Notice{}, false
	}
	return *b.last, true
}

// Clear drops the stored notice.
func (b *NoticeBoard) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = nil
}
