package save

import (
	"fmt"

	"github.com/goccy/go-json"
)

// envelope is the JSON dump layout. Type carries the archive kind so the
// dump can be loaded back without knowing the original extension.
type envelope struct {
	Type    string          `json:"type"`
	Archive json.RawMessage `json:"archive"`
}

// WriteJSON renders a as an indented JSON dump.
func WriteJSON(a Archive) ([]byte, error) {
	env := struct {
		Type    string  `json:"type"`
		Archive Archive `json:"archive"`
	}{a.Type().String(), a}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s archive: %w", a.Type(), err)
	}
	return data, nil
}

// ReadJSON loads a dump written by WriteJSON.
func ReadJSON(data []byte) (Archive, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshalling envelope: %w", err)
	}
	t, err := ParseType(env.Type)
	if err != nil {
		return nil, err
	}

	var a Archive
	switch t {
	case TypeMetadata:
		a = &Metadata{}
	case TypeWorld:
		a = &World{}
	case TypeCharacter:
		a = &Character{}
	default:
		return nil, fmt.Errorf("%w: %q is not an archive kind", ErrUnknownType, env.Type)
	}
	if err := json.Unmarshal(env.Archive, a); err != nil {
		return nil, fmt.Errorf("unmarshalling %s archive: %w", t, err)
	}
	return a, nil
}
