package blueprint

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Read decodes a JSON spec from r.
func Read(r io.Reader) (*Spec, error) {
	var s Spec
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode spec: %w", err)
	}
	if s.Rooms == nil {
		s.Rooms = []Room{}
	}
	return &s, nil
}

// ReadFile decodes a JSON spec from the named file.
func ReadFile(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Marshal encodes s as indented JSON.
func Marshal(s *Spec) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Write encodes s as indented JSON to w.
func Write(w io.Writer, s *Spec) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteFile encodes s as indented JSON to the named file.
func WriteFile(path string, s *Spec) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
