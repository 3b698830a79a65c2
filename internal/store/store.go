// Package store holds the task store data model: the on-disk JSON codec,
// per-user records, and the pure operations commands are built from.
package store

import (
	"bytes"
	"encoding/json"
	"time"
)

// TimeLayout is the format used for task creation timestamps. A task's
// creation timestamp doubles as its identity for the current-task reference,
// so sub-second precision keeps tasks created back to back distinguishable.
const TimeLayout = time.RFC3339Nano

// Store maps usernames to their records. Usernames are case-sensitive.
type Store map[string]*Record

// Decode parses the persisted store representation. Legacy values, where a
// username maps directly to a bare task array, are normalized into a Record
// with an empty current reference (see Record.UnmarshalJSON).
func Decode(data []byte) (Store, error) {
	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s == nil {
		s = Store{}
	}
	return s, nil
}

// Encode serializes the full store, pretty-printed for human readability.
func Encode(s Store) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Ensure returns the record for user, creating an empty one if absent.
func (s Store) Ensure(user string) *Record {
	rec, ok := s[user]
	if !ok || rec == nil {
		rec = &Record{Tasks: []Task{}}
		s[user] = rec
	}
	if rec.Tasks == nil {
		rec.Tasks = []Task{}
	}
	return rec
}

// Users returns all usernames present in the store, unsorted.
func (s Store) Users() []string {
	users := make([]string, 0, len(s))
	for u := range s {
		users = append(users, u)
	}
	return users
}
