// Package workload parses the newline-delimited JSON log format the
// simulator replays: one timestamped Action per line. The action field is
// a tagged union (Download, RefreshMetadata, Publish, or Goodbye) and is
// decoded by hand, since each variant carries a different payload shape.
package workload

import (
	"bufio"
	"encoding/json"
	"io"
	"time"

	"github.com/repoauth/sssim/internal/authenticator"
	"golang.org/x/xerrors"
)

// ErrParse wraps the offending line number in a workload file.
var ErrParse = xerrors.New("workload: parse error")

// Action is the tagged union of the four replayable events.
type Action interface {
	isAction()
}

type Download struct {
	User    authenticator.UserID
	Package authenticator.Package
}

type RefreshMetadata struct {
	User authenticator.UserID
}

type Publish struct {
	Package authenticator.Package
}

type Goodbye struct {
	User authenticator.UserID
}

func (Download) isAction()        {}
func (RefreshMetadata) isAction() {}
func (Publish) isAction()         {}
func (Goodbye) isAction()         {}

// Entry is one replayable line: a timestamp (monotone non-decreasing,
// carried through for output but not load-bearing for correctness) plus
// its action.
type Entry struct {
	Timestamp time.Time
	Action    Action
}

// wirePackage mirrors the JSON shape of a Package: {"id": ..., "length":
// ...?}.
type wirePackage struct {
	ID     authenticator.PackageID `json:"id"`
	Length *uint64                 `json:"length,omitempty"`
}

func toWirePackage(p authenticator.Package) wirePackage {
	return wirePackage{ID: p.ID, Length: p.Length}
}

func (p wirePackage) toPackage() authenticator.Package {
	return authenticator.Package{ID: p.ID, Length: p.Length}
}

type wireEntry struct {
	Timestamp time.Time       `json:"timestamp"`
	Action    json.RawMessage `json:"action"`
}

// actionEnvelope holds every possible field across the four action kinds;
// exactly one top-level key is present in the wire form, dispatched on by
// name below.
type actionEnvelope struct {
	Download        *downloadPayload        `json:"Download,omitempty"`
	RefreshMetadata *refreshMetadataPayload `json:"RefreshMetadata,omitempty"`
	Publish         *publishPayload         `json:"Publish,omitempty"`
	Goodbye         *goodbyePayload         `json:"Goodbye,omitempty"`
}

type downloadPayload struct {
	User    authenticator.UserID `json:"user"`
	Package wirePackage          `json:"package"`
}

type refreshMetadataPayload struct {
	User authenticator.UserID `json:"user"`
}

type publishPayload struct {
	Package wirePackage `json:"package"`
}

type goodbyePayload struct {
	User authenticator.UserID `json:"user"`
}

// UnmarshalJSON decodes {"timestamp": ..., "action": {"Download": {...}}}
// (or RefreshMetadata/Publish/Goodbye) into an Entry.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w wireEntry
	if err := json.Unmarshal(data, &w); err != nil {
		return xerrors.Errorf("%w: %v", ErrParse, err)
	}

	var env actionEnvelope
	if err := json.Unmarshal(w.Action, &env); err != nil {
		return xerrors.Errorf("%w: decoding action: %v", ErrParse, err)
	}

	var action Action
	switch {
	case env.Download != nil:
		action = Download{User: env.Download.User, Package: env.Download.Package.toPackage()}
	case env.RefreshMetadata != nil:
		action = RefreshMetadata{User: env.RefreshMetadata.User}
	case env.Publish != nil:
		action = Publish{Package: env.Publish.Package.toPackage()}
	case env.Goodbye != nil:
		action = Goodbye{User: env.Goodbye.User}
	default:
		return xerrors.Errorf("%w: action has no recognized variant", ErrParse)
	}

	e.Timestamp = w.Timestamp
	e.Action = action
	return nil
}

// MarshalJSON is the inverse of UnmarshalJSON, used when re-emitting the
// original entry alongside a result record.
func (e Entry) MarshalJSON() ([]byte, error) {
	var env actionEnvelope
	switch a := e.Action.(type) {
	case Download:
		env.Download = &downloadPayload{User: a.User, Package: toWirePackage(a.Package)}
	case RefreshMetadata:
		env.RefreshMetadata = &refreshMetadataPayload{User: a.User}
	case Publish:
		env.Publish = &publishPayload{Package: toWirePackage(a.Package)}
	case Goodbye:
		env.Goodbye = &goodbyePayload{User: a.User}
	default:
		return nil, xerrors.Errorf("workload: unknown action type %T", a)
	}

	actionBytes, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireEntry{Timestamp: e.Timestamp, Action: actionBytes})
}

// ReadEntries parses one Entry per line from r, in order. A blank line is
// skipped; any other parse failure reports its 1-indexed line number.
func ReadEntries(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var entries []Entry
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(text, &e); err != nil {
			return nil, xerrors.Errorf("%w: line %d: %v", ErrParse, line, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Errorf("workload: reading: %w", err)
	}
	return entries, nil
}
