// Package provider is the registry of built-in sources.
package provider

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kurasora/kurasora/provider/kuramanime"
	"github.com/kurasora/kurasora/provider/sorastream"
	"github.com/kurasora/kurasora/source"
	"github.com/samber/lo"
)

// ErrUnknown is returned by Create for names no provider answers to.
var ErrUnknown = errors.New("unknown provider")

// Provider describes a source without constructing it.
type Provider struct {
	ID           string
	Name         string
	Lang         string
	CreateSource func() (source.Source, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns built-in providers.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:           kuramanime.ID,
			Name:         kuramanime.Name,
			Lang:         "id",
			CreateSource: kuramanime.New,
		},
		{
			ID:           sorastream.ID,
			Name:         sorastream.Name,
			Lang:         "en",
			CreateSource: sorastream.New,
		},
	}
}

// Get finds a provider by id or display name, ignoring case.
func Get(name string) (*Provider, bool) {
	return lo.Find(Builtins(), func(p *Provider) bool {
		return strings.EqualFold(p.ID, name) || strings.EqualFold(p.Name, name)
	})
}

// Create looks up name and constructs its source.
func Create(name string) (source.Source, error) {
	p, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknown, name, strings.Join(Names(), ", "))
	}

	src, err := p.CreateSource()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	return src, nil
}

// Names returns the provider ids, sorted.
func Names() []string {
	names := lo.Map(Builtins(), func(p *Provider, _ int) string {
		return p.ID
	})
	sort.Strings(names)
	return names
}
