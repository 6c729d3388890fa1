package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UnmarshalJSON accepts scalar fields in the loose shapes the catalog API
// has been seen to send: numbers or booleans where text is expected, a
// quoted year, and null anywhere. List fields stay strict.
func (g *RawGame) UnmarshalJSON(data []byte) error {
	type plain RawGame
	aux := struct {
		*plain
		ID            json.RawMessage `json:"id"`
		Name          json.RawMessage `json:"name"`
		Genre         json.RawMessage `json:"genre"`
		ReleaseYear   json.RawMessage `json:"releaseYear"`
		Developer     json.RawMessage `json:"developer"`
		Publisher     json.RawMessage `json:"publisher"`
		Description   json.RawMessage `json:"description"`
		CoverImageURL json.RawMessage `json:"coverImageUrl"`
		Budget        json.RawMessage `json:"budget"`
		Saga          json.RawMessage `json:"saga"`
		POV           json.RawMessage `json:"pov"`
	}{plain: (*plain)(g)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	for _, f := range []struct {
		name string
		raw  json.RawMessage
		dst  *string
	}{
		{"id", aux.ID, &g.ID},
		{"name", aux.Name, &g.Name},
		{"genre", aux.Genre, &g.Genre},
		{"developer", aux.Developer, &g.Developer},
		{"publisher", aux.Publisher, &g.Publisher},
		{"description", aux.Description, &g.Description},
		{"coverImageUrl", aux.CoverImageURL, &g.CoverImageURL},
		{"budget", aux.Budget, &g.Budget},
		{"saga", aux.Saga, &g.Saga},
		{"pov", aux.POV, &g.POV},
	} {
		s, err := looseString(f.raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.name, err)
		}
		*f.dst = s
	}

	year, err := looseInt(aux.ReleaseYear)
	if err != nil {
		return fmt.Errorf("field releaseYear: %w", err)
	}
	g.ReleaseYear = year
	return nil
}

func looseString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("unexpected %s", raw)
	}
}

func looseInt(raw json.RawMessage) (int, error) {
	if isNull(raw) || bytes.Equal(bytes.TrimSpace(raw), []byte(`""`)) {
		return 0, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	v, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return 0, err
		}
		v = int64(f)
	}
	return int(v), nil
}

func isNull(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}
