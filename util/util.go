// Package util holds small helpers shared across the CLI and providers.
package util

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kurasora/kurasora/filesystem"
	"golang.org/x/term"
)

// Quantify prefixes the singular or plural noun with count.
func Quantify(count int, singular, plural string) string {
	noun := plural
	if count == 1 {
		noun = singular
	}
	return strconv.Itoa(count) + " " + noun
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// TerminalSize returns the stdout terminal dimensions.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ReGroups maps the named groups of the first match of pattern in str to
// their values. No match yields an empty map.
func ReGroups(pattern *regexp.Regexp, str string) map[string]string {
	groups := map[string]string{}

	match := pattern.FindStringSubmatch(str)
	for i, name := range pattern.SubexpNames() {
		if name == "" || i >= len(match) {
			continue
		}
		groups[name] = match[i]
	}

	return groups
}

// PrintErasable writes msg over the current stdout line. The returned func
// blanks it again.
func PrintErasable(msg string) (erase func()) {
	fmt.Print("\r" + msg)
	return func() {
		fmt.Print("\r" + strings.Repeat(" ", len(msg)) + "\r")
	}
}

// Ignore calls f and drops its error, for deferred Close calls.
func Ignore(f func() error) {
	_ = f()
}

// Delete removes a file or a whole directory through the filesystem backend.
// A missing path is not an error.
func Delete(path string) error {
	fs := filesystem.API()

	info, err := fs.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return err
	case info.IsDir():
		return fs.RemoveAll(path)
	default:
		return fs.Remove(path)
	}
}
