package viewstate

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NajimuddinS/ChatMate/internal/domain"
)

// Sender is the transport the view sends through. Satisfied by
// chatclient.Client.
type Sender interface {
	History(peerID string) ([]*domain.Message, error)
	SendMessage(peerID, text, image string) (*domain.Message, error)
	SendToAssistant(text string) (*domain.Message, *domain.Message, error)
}

// Entry is one row of the visible conversation. A pending entry is an
// optimistic placeholder for an in-flight send, identified by its
// correlation id until the server confirms or rejects it.
type Entry struct {
	Message       *domain.Message
	Pending       bool
	CorrelationID string
}

// View holds the conversation state for the currently selected peer:
// the loaded history plus optimistic placeholders for in-flight sends.
// All mutation goes through its methods; subscribers are notified
// after every visible change.
type View struct {
	mu          sync.Mutex
	sender      Sender
	selfID      string
	assistantID string

	peerID  string
	epoch   int
	entries []Entry
	lastErr error

	subscribers []func()
}

// New creates a view for the given user. assistantID routes sends to
// that peer through the assistant endpoint.
func New(sender Sender, selfID, assistantID string) *View {
	return &View{sender: sender, selfID: selfID, assistantID: assistantID}
}

// Subscribe registers fn to run after every visible change. fn is
// called outside the view's lock.
func (v *View) Subscribe(fn func()) {
	v.mu.Lock()
	v.subscribers = append(v.subscribers, fn)
	v.mu.Unlock()
}

// Peer returns the currently selected peer id, or "" if none.
func (v *View) Peer() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.peerID
}

// Entries returns a snapshot of the visible conversation.
func (v *View) Entries() []Entry {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Entry, len(v.entries))
	copy(out, v.entries)
	return out
}

// Err returns and clears the last send or load error.
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	err := v.lastErr
	v.lastErr = nil
	return err
}

// SelectPeer switches the conversation to peerID: the sequence is
// cleared immediately and replaced when the history load completes. A
// load finishing after another SelectPeer is discarded.
func (v *View) SelectPeer(peerID string) {
	v.mu.Lock()
	v.peerID = peerID
	v.epoch++
	epoch := v.epoch
	v.entries = nil
	v.mu.Unlock()
	v.notify()

	go func() {
		history, err := v.sender.History(peerID)

		v.mu.Lock()
		if v.epoch != epoch {
			v.mu.Unlock()
			return
		}
		if err != nil {
			v.lastErr = err
			v.mu.Unlock()
			v.notify()
			return
		}
		entries := make([]Entry, 0, len(history))
		for _, m := range history {
			entries = append(entries, Entry{Message: m})
		}
		v.entries = entries
		v.mu.Unlock()
		v.notify()
	}()
}

// SendText optimistically appends a pending entry and sends in the
// background. On confirmation the placeholder is swapped for the
// stored record(s): one for a human peer, two for the assistant. On
// failure the placeholder is removed and the error surfaced via Err.
// With no peer selected the call is a no-op.
func (v *View) SendText(text string) {
	v.mu.Lock()
	peerID := v.peerID
	if peerID == "" {
		v.mu.Unlock()
		return
	}
	correlationID := uuid.NewString()
	placeholder := &domain.Message{
		SenderID:   v.selfID,
		ReceiverID: peerID,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}
	v.entries = append(v.entries, Entry{Message: placeholder, Pending: true, CorrelationID: correlationID})
	toAssistant := peerID == v.assistantID
	v.mu.Unlock()
	v.notify()

	go func() {
		var confirmed []*domain.Message
		var err error
		if toAssistant {
			var userMsg, aiMsg *domain.Message
			userMsg, aiMsg, err = v.sender.SendToAssistant(text)
			if err == nil {
				confirmed = []*domain.Message{userMsg, aiMsg}
			}
		} else {
			var msg *domain.Message
			msg, err = v.sender.SendMessage(peerID, text, "")
			if err == nil {
				confirmed = []*domain.Message{msg}
			}
		}
		v.resolve(correlationID, confirmed, err)
	}()
}

// resolve settles a pending entry. The placeholder is found by
// correlation id; if the user switched peers meanwhile the sequence
// was cleared and this is a no-op on the visible state.
func (v *View) resolve(correlationID string, confirmed []*domain.Message, err error) {
	v.mu.Lock()
	idx := -1
	for i, e := range v.entries {
		if e.Pending && e.CorrelationID == correlationID {
			idx = i
			break
		}
	}
	if idx == -1 {
		if err != nil {
			v.lastErr = err
		}
		v.mu.Unlock()
		return
	}

	if err != nil {
		v.entries = append(v.entries[:idx], v.entries[idx+1:]...)
		v.lastErr = err
		v.mu.Unlock()
		v.notify()
		return
	}

	replacement := make([]Entry, 0, len(confirmed))
	for _, m := range confirmed {
		replacement = append(replacement, Entry{Message: m})
	}
	rest := append(replacement, v.entries[idx+1:]...)
	v.entries = append(v.entries[:idx], rest...)
	v.mu.Unlock()
	v.notify()
}

// OnPush appends a pushed message iff it belongs to the selected
// conversation; anything else is ignored.
func (v *View) OnPush(message *domain.Message) {
	v.mu.Lock()
	if v.peerID == "" || (message.SenderID != v.peerID && message.ReceiverID != v.peerID) {
		v.mu.Unlock()
		return
	}
	v.entries = append(v.entries, Entry{Message: message})
	v.mu.Unlock()
	v.notify()
}

func (v *View) notify() {
	v.mu.Lock()
	subscribers := make([]func(), len(v.subscribers))
	copy(subscribers, v.subscribers)
	v.mu.Unlock()
	for _, fn := range subscribers {
		fn()
	}
}
