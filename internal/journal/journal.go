// Package journal keeps an append-only audit trail of the commands a shell
// session applied. It is never replayed into a store.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Op names a store mutation.
type Op string

const (
	OpAdd    Op = "ADD"
	OpRemove Op = "REMOVE"
)

// Entry is one line of the journal.
type Entry struct {
	Op      Op        `json:"op"`
	Session string    `json:"session,omitempty"`
	Title   string    `json:"title"`
	Author  string    `json:"author,omitempty"`
	Year    int       `json:"year,omitempty"`
	Found   *bool     `json:"found,omitempty"` // REMOVE only
	At      time.Time `json:"at"`
}

// Recorder is what the shell needs to record applied commands.
type Recorder interface {
	Record(e Entry) error
}

// Journal appends JSON lines to a file.
type Journal struct {
	file *os.File
	now  func() time.Time
}

var _ Recorder = (*Journal)(nil)

// Open opens path for appending, creating it if needed.
func Open(path string) (*Journal, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "open journal %s", path)
	}
	return &Journal{
		file: file,
		now:  time.Now,
	}, nil
}

// Record writes e and syncs the file. A zero At is stamped with the current time.
func (j *Journal) Record(e Entry) error {
	if e.At.IsZero() {
		e.At = j.now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "encode journal entry")
	}
	if _, err := j.file.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "write journal entry")
	}
	return j.file.Sync()
}

// Close closes the underlying file.
func (j *Journal) Close() error {
	return j.file.Close()
}

// Read calls fn for every entry in the journal at path, oldest first.
// A missing file yields no entries.
func Read(path string, fn func(Entry) error) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "open journal %s", path)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return errors.Wrapf(err, "decode journal line %d", line)
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Found returns a pointer suitable for Entry.Found.
func Found(ok bool) *bool {
	return &ok
}

// String renders e for the history listing.
func (e Entry) String() string {
	ts := e.At.Format(time.RFC3339)
	switch e.Op {
	case OpAdd:
		return fmt.Sprintf("%s ADD '%s' by %s (%d)", ts, e.Title, e.Author, e.Year)
	case OpRemove:
		if e.Found != nil && !*e.Found {
			return fmt.Sprintf("%s REMOVE '%s' (not found)", ts, e.Title)
		}
		return fmt.Sprintf("%s REMOVE '%s'", ts, e.Title)
	default:
		return fmt.Sprintf("%s %s '%s'", ts, e.Op, e.Title)
	}
}
