package model

// Stage is the current step of a user's order dialogue.
type Stage string

const (
	StageIdle            Stage = "idle"
	StageAwaitingName    Stage = "awaiting_name"
	StageAwaitingPhone   Stage = "awaiting_phone"
	StageAwaitingAddress Stage = "awaiting_address"
)

// Draft holds the order fields accumulated so far. ProductID is zero until
// a product has been selected; the string fields are empty until their
// stage has been passed.
type Draft struct {
	ProductID int
	Name      string
	Phone     string
	Address   string
}

// Session is one user's conversation state. Sessions are owned by the
// session store and mutated only through its Apply entry point.
type Session struct {
	UserID string
	Stage  Stage
	Draft  Draft
}

// NewSession returns a fresh idle session for the given user.
func NewSession(userID string) Session {
	return Session{UserID: userID, Stage: StageIdle}
}

// Reset clears the draft and returns the session to idle.
func (s Session) Reset() Session {
	return NewSession(s.UserID)
}
