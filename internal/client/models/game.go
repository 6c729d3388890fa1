// Package models holds the catalog and streak types shared by the client
// packages.
package models

import "encoding/json"

// RawGame is a game record exactly as the remote catalog API returns it.
// The identifier may arrive as "id", as a bare "_id" string or as an
// "_id" object carrying "$oid"; list fields may be null or absent.
type RawGame struct {
	ID            string          `json:"id"`
	MongoID       json.RawMessage `json:"_id,omitempty"`
	Name          string          `json:"name"`
	Genre         string          `json:"genre"`
	Platforms     []string        `json:"platforms"`
	ReleaseYear   int             `json:"releaseYear"`
	Developer     string          `json:"developer"`
	Publisher     string          `json:"publisher"`
	Description   string          `json:"description"`
	CoverImageURL string          `json:"coverImageUrl"`
	Budget        string          `json:"budget"`
	Saga          string          `json:"saga"`
	POV           string          `json:"pov"`
	Clues         []string        `json:"clues"`
	Keywords      []string        `json:"keywords"`
}

// Game is a normalized catalog record. ID is never empty and list fields
// are never nil once a Game has passed through normalization.
type Game struct {
	ID            string
	OID           string
	Name          string
	Genre         string
	Platforms     []string
	ReleaseYear   int
	Developer     string
	Publisher     string
	Description   string
	CoverImageURL string
	Budget        string
	Saga          string
	POV           string
	Clues         []string
	Keywords      []string
}

// MatchKind classifies how a keyword relates to a compare-game guess.
type MatchKind string

const (
	MatchExact   MatchKind = "exact"
	MatchPartial MatchKind = "partial"
)

// GuessResult is the outcome of a keyword-game guess.
type GuessResult struct {
	Correct bool   `json:"correct"`
	Hint    string `json:"hint,omitempty"`
}

// CompareRequest asks whether GuessName is the game identified by GameID.
type CompareRequest struct {
	GameID    string `json:"gameId"`
	GuessName string `json:"guessName"`
}

// Comparison is the outcome of a compare-game guess.
type Comparison struct {
	Correct bool                 `json:"correct"`
	Matches map[string]MatchKind `json:"matches"`
}
