package pds

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bluesky-social/indigo/atproto/syntax"
)

type listReposBody struct {
	Repos  []json.RawMessage `json:"repos"`
	Cursor *string           `json:"cursor"`
}

type repoFields struct {
	DID  *string `json:"did"`
	Head *string `json:"head"`
	Rev  *string `json:"rev"`
}

var jsonNull = []byte("null")

// ParseListing decodes and validates a listRepos response body. A missing or
// null repos field yields an empty listing.
func ParseListing(body []byte) (*Listing, error) {
	var raw listReposBody
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &DecodeError{Index: -1, Err: err}
	}

	listing := &Listing{Repos: make([]Repo, 0, len(raw.Repos))}
	if raw.Cursor != nil {
		listing.Cursor = *raw.Cursor
	}
	for i, entry := range raw.Repos {
		repo, err := parseRepo(entry)
		if err != nil {
			return nil, &DecodeError{Index: i, Err: err}
		}
		listing.Repos = append(listing.Repos, repo)
	}
	return listing, nil
}

func parseRepo(entry json.RawMessage) (Repo, error) {
	trimmed := bytes.TrimSpace(entry)
	if bytes.Equal(trimmed, jsonNull) {
		return Repo{}, errors.New("entry is null")
	}

	var f repoFields
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return Repo{}, err
	}
	if f.DID == nil || *f.DID == "" {
		return Repo{}, errors.New("missing did")
	}
	if _, err := syntax.ParseDID(*f.DID); err != nil {
		return Repo{}, fmt.Errorf("invalid did %q: %w", *f.DID, err)
	}

	repo := Repo{DID: *f.DID, Raw: append(json.RawMessage(nil), trimmed...)}
	if f.Head != nil {
		repo.Head = *f.Head
	}
	if f.Rev != nil {
		repo.Rev = *f.Rev
	}
	return repo, nil
}
