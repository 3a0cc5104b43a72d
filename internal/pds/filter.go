package pds

import "strings"

// DIDWebPrefix marks identifiers that use the did:web method.
const DIDWebPrefix = "did:web:"

// FilterDIDWeb returns the repos whose DID uses did:web, in their original order.
func FilterDIDWeb(repos []Repo) []Repo {
	matches := []Repo{}
	for _, r := range repos {
		if strings.HasPrefix(r.DID, DIDWebPrefix) {
			matches = append(matches, r)
		}
	}
	return matches
}
