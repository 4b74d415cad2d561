package session_models

import "time"

// Session is everything one browser session owns.
type Session struct {
	ID        string    `json:"id"`
	Form      FormState `json:"form"`
	Plan      string    `json:"plan,omitempty"`
	Notice    string    `json:"notice,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`

	// IssuedSeq numbers plan requests; AppliedSeq is the newest one whose plan was stored.
	IssuedSeq  uint64 `json:"issued_seq"`
	AppliedSeq uint64 `json:"applied_seq"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		Form:      NewFormState(),
		UpdatedAt: time.Now(),
	}
}

// TakeNotice returns the pending notice and clears it.
func (s *Session) TakeNotice() string {
	n := s.Notice
	s.Notice = ""
	return n
}
