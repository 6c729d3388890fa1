package models

import "fmt"

// Mode selects one of the two independent streak tracks.
type Mode string

const (
	ModeKeyword Mode = "keyword"
	ModeCompare Mode = "compare"
)

var Modes = []Mode{ModeKeyword, ModeCompare}

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeKeyword, ModeCompare:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown game mode %q", s)
	}
}

// Track is the streak state for one mode.
type Track struct {
	// Current counts consecutive calendar days with at least one win.
	Current int
	// Best is the highest Current ever observed.
	Best int
	// Consecutive counts an unbroken run of wins, ignoring day boundaries.
	Consecutive int
	// LastPlayed is the epoch-millisecond time of the last recorded win; 0 means never.
	LastPlayed int64
}

// IdentityKind tells which user table an identity lives in.
type IdentityKind string

const (
	// IdentityAccount is an externally authenticated account keyed by an opaque id.
	IdentityAccount IdentityKind = "account"
	// IdentityLocal is a locally registered account keyed by email.
	IdentityLocal IdentityKind = "local"
)

// Identity names the signed-in user.
type Identity struct {
	Kind IdentityKind
	ID   string
}

func (i Identity) String() string {
	return string(i.Kind) + ":" + i.ID
}

// StreakRecord holds both streak tracks of one user. ID is the account id or
// the email, depending on which table the record came from.
type StreakRecord struct {
	ID       string
	UserName string
	Keyword  Track
	Compare  Track
}

// Track returns a pointer to the track for mode, or nil for an unknown mode.
func (r *StreakRecord) Track(mode Mode) *Track {
	switch mode {
	case ModeKeyword:
		return &r.Keyword
	case ModeCompare:
		return &r.Compare
	default:
		return nil
	}
}

// LocalUser is a locally registered account.
type LocalUser struct {
	Email        string
	UserName     string
	PasswordHash string
}
