package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeUsername canonicalizes a username for lookup and storage.
//
// Usernames are the primary key of the users collection, so two visually
// identical names must compare equal. NFC normalization collapses
// composed/decomposed Unicode forms; surrounding whitespace is stripped.
func NormalizeUsername(username string) string {
	return norm.NFC.String(strings.TrimSpace(username))
}
