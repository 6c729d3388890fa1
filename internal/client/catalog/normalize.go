package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/dmitrijs2005/gameguesser/internal/client/models"
)

// Normalize turns a remote record into a cacheable Game. The primary key is
// the explicit id, else the nested "_id" value, else a hash of name and
// release year. List fields come out non-nil.
func Normalize(raw models.RawGame) models.Game {
	oid := nestedID(raw.MongoID)

	id := raw.ID
	switch {
	case strings.TrimSpace(id) != "":
	case oid != "":
		id = oid
	default:
		id = FallbackID(raw.Name, raw.ReleaseYear)
	}

	return models.Game{
		ID:            id,
		OID:           oid,
		Name:          raw.Name,
		Genre:         raw.Genre,
		Platforms:     orEmpty(raw.Platforms),
		ReleaseYear:   raw.ReleaseYear,
		Developer:     raw.Developer,
		Publisher:     raw.Publisher,
		Description:   raw.Description,
		CoverImageURL: raw.CoverImageURL,
		Budget:        raw.Budget,
		Saga:          raw.Saga,
		POV:           raw.POV,
		Clues:         orEmpty(raw.Clues),
		Keywords:      orEmpty(raw.Keywords),
	}
}

func NormalizeAll(raws []models.RawGame) []models.Game {
	out := make([]models.Game, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r))
	}
	return out
}

// FallbackID is the decimal form of the 32-bit Java string hash of name
// followed by year, so keys agree with ones minted by the mobile app.
func FallbackID(name string, year int) string {
	return strconv.FormatInt(int64(javaHash(name+strconv.Itoa(year))), 10)
}

func javaHash(s string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(u)
	}
	return h
}

// nestedID accepts {"$oid": "..."} or a bare string; anything else yields "".
func nestedID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(obj.OID)
	}
	return ""
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
