package pds

import (
	"encoding/gob"
	"encoding/json"
)

func init() {
	gob.Register(Listing{})
}

// Repo is one entry of a com.atproto.sync.listRepos response.
type Repo struct {
	DID  string
	Head string
	Rev  string

	// Raw is the object exactly as the server sent it.
	Raw json.RawMessage
}

// MarshalJSON re-emits the server's object when available so that fields the
// model does not name survive persistence.
func (r Repo) MarshalJSON() ([]byte, error) {
	if len(r.Raw) > 0 {
		return r.Raw, nil
	}
	out := struct {
		DID  string `json:"did"`
		Head string `json:"head,omitempty"`
		Rev  string `json:"rev,omitempty"`
	}{r.DID, r.Head, r.Rev}
	return json.Marshal(out)
}

// Listing is a decoded listRepos page.
type Listing struct {
	Repos []Repo
	// Cursor is set when the server has more repos than it returned.
	Cursor string
}

// Total returns the number of repos in the listing.
func (l *Listing) Total() int {
	if l == nil {
		return 0
	}
	return len(l.Repos)
}
