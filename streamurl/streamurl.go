// Package streamurl decodes the obfuscated stream tokens served by Rezka-style CDN players.
//
// A token is the base64 of the real URL with junk spliced in: the literal
// marker "#2", the separator "//_//" and base64-encoded strings built from
// the junk alphabet. Decrypt strips all three and decodes what is left.
package streamurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
)

const (
	// Marker is removed verbatim before anything else.
	Marker = "#2"

	// Separator splits the token into chunks that are concatenated back.
	Separator = "//_//"
)

// Alphabet is the set of symbols junk masks are built from.
var Alphabet = []string{"@", "#", "!", "^", "$"}

// MaskLengths are the junk mask lengths the players inject.
var MaskLengths = []int{2, 3}

// ErrMalformedInput is returned when the cleaned token is not valid base64.
var ErrMalformedInput = errors.New("malformed stream token")

var (
	masksOnce sync.Once
	masks     []string
	encoded   []string
)

func build() {
	masksOnce.Do(func() {
		for _, n := range MaskLengths {
			masks = append(masks, Combinations(Alphabet, n)...)
		}

		encoded = make([]string, len(masks))
		for i, mask := range masks {
			encoded[i] = base64.StdEncoding.EncodeToString([]byte(mask))
		}
	})
}

// Combinations returns every string of length n over alphabet (the n-th Cartesian power),
// ordered by alphabet position with the last symbol varying fastest.
func Combinations(alphabet []string, n int) []string {
	if n < 1 || len(alphabet) == 0 {
		return nil
	}

	out := append([]string(nil), alphabet...)
	for i := 1; i < n; i++ {
		next := make([]string, 0, len(out)*len(alphabet))
		for _, prefix := range out {
			for _, symbol := range alphabet {
				next = append(next, prefix+symbol)
			}
		}
		out = next
	}

	return out
}

// JunkMasks returns the 150 junk masks: all length-2 then all length-3 strings over Alphabet.
// The set is computed once per process; callers get their own copy.
func JunkMasks() []string {
	build()
	return append([]string(nil), masks...)
}

// EncodedJunkMasks returns the standard base64 form of every junk mask, in JunkMasks order.
func EncodedJunkMasks() []string {
	build()
	return append([]string(nil), encoded...)
}

// Clean strips the marker, the separators and every encoded junk mask, in that order.
// Raw junk symbols are left alone: only their base64 forms are injected by the players.
func Clean(token string) string {
	build()

	cleaned := strings.ReplaceAll(token, Marker, "")
	cleaned = strings.Join(strings.Split(cleaned, Separator), "")

	for _, junk := range encoded {
		cleaned = strings.ReplaceAll(cleaned, junk, "")
	}

	return cleaned
}

// Decrypt recovers the stream URL hidden in token.
// It is pure and safe for concurrent use.
func Decrypt(token string) (string, error) {
	cleaned := Clean(token)

	decoded, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	return string(decoded), nil
}
