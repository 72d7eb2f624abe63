package genesis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/evmosup/evmosup/internal/fileutils"
)

// ErrNotAnObject is returned when a path crosses a value that is not a JSON object
var ErrNotAnObject = errors.New("not a JSON object")

// Document is a genesis.json file held in memory. Numbers keep their exact
// textual form so amounts larger than a float64 survive a load/save cycle.
type Document struct {
	root map[string]interface{}
}

// Parse decodes a genesis document
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root map[string]interface{}
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("invalid genesis: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("invalid genesis: %w", ErrNotAnObject)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("invalid genesis: unexpected data after the top-level object")
	}
	return &Document{root: root}, nil
}

// Load reads the genesis document at path
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Bytes encodes the document
func (d *Document) Bytes() ([]byte, error) {
	return json.MarshalIndent(d.root, "", "  ")
}

// Save writes the document to path, replacing the previous content
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	return fileutils.WriteFileAtomic(path, append(data, '\n'), 0644)
}

// Get returns the value at path
func (d *Document) Get(path ...string) (interface{}, bool) {
	var cur interface{} = d.root
	for _, key := range path {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if cur, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Has reports whether a value exists at path
func (d *Document) Has(path ...string) bool {
	_, ok := d.Get(path...)
	return ok
}

// String returns the string or number at path in its textual form
func (d *Document) String(path ...string) (string, bool) {
	v, ok := d.Get(path...)
	if !ok {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	}
	return "", false
}

// Set assigns value at path, creating missing intermediate objects.
// Only the addressed field changes.
func (d *Document) Set(value interface{}, path ...string) error {
	if len(path) == 0 {
		return errors.New("empty genesis path")
	}
	obj := d.root
	for i, key := range path[:len(path)-1] {
		next, ok := obj[key]
		if !ok || next == nil {
			child := make(map[string]interface{})
			obj[key] = child
			obj = child
			continue
		}
		if obj, ok = next.(map[string]interface{}); !ok {
			return fmt.Errorf("%s: %w", strings.Join(path[:i+1], "."), ErrNotAnObject)
		}
	}
	obj[path[len(path)-1]] = value
	return nil
}
