// Package mount turns host-supplied attributes into a running label widget.
package mount

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/thenoetrevino/labelpick/internal/catalog"
	"github.com/thenoetrevino/labelpick/internal/config"
	"github.com/thenoetrevino/labelpick/internal/models"
	"github.com/thenoetrevino/labelpick/internal/selection"
	"github.com/thenoetrevino/labelpick/internal/tui"
)

// Attribute names read from the host element
const (
	AttrLabels = "data-labels"
	AttrTicket = "data-ticket"
)

// Element is the host the widget mounts into
type Element interface {
	Attr(name string) (string, bool)
}

// Attributes is an Element backed by a plain map
type Attributes map[string]string

// Attr implements Element
func (a Attributes) Attr(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// Params are the arguments of a mount call
type Params struct {
	URL     string
	Element Element
}

// Factory mounts a widget for the given params
type Factory func(ctx context.Context, p Params) (*tui.Widget, error)

// ParseLabelIDs splits a comma-separated id list, keeping only tokens that
// parse as integers, in order.
func ParseLabelIDs(s string) []int {
	ids := []int{}
	for _, tok := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// ParseTicket reads the ticket id from the element
func ParseTicket(el Element) (int, error) {
	raw, ok := el.Attr(AttrTicket)
	if !ok {
		return 0, fmt.Errorf("%w: %s attribute missing", models.ErrInvalidTicket, AttrTicket)
	}
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidTicket, raw)
	}
	return id, nil
}

// Namespace is the integration surface handed to a host. It carries the
// configuration every widget is mounted with; there is no package-level
// registry.
type Namespace struct {
	cfg       *config.Config
	csrfToken string
}

// NewNamespace creates the namespace for a host. csrfToken, when set, seeds
// the cookie jar of each widget's client.
func NewNamespace(cfg *config.Config, csrfToken string) *Namespace {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Namespace{cfg: cfg, csrfToken: csrfToken}
}

// Labels mounts a label widget. It is a Factory.
func (n *Namespace) Labels(ctx context.Context, p Params) (*tui.Widget, error) {
	if p.Element == nil {
		return nil, fmt.Errorf("mount: element is required")
	}

	url := p.URL
	if url == "" {
		url = n.cfg.URL
	}

	client, err := catalog.NewClient(catalog.Config{
		URL:        url,
		CSRFCookie: n.cfg.CSRFCookie,
		Timeout:    n.cfg.RequestTimeout(),
	})
	if err != nil {
		return nil, err
	}
	if n.csrfToken != "" {
		client.SetCSRFToken(n.csrfToken)
	}

	ticket, err := ParseTicket(p.Element)
	if err != nil {
		return nil, err
	}
	raw, _ := p.Element.Attr(AttrLabels)

	policy := selection.DropMissing
	if n.cfg.KeepMissing {
		policy = selection.KeepMissing
	}

	return tui.New(tui.Options{
		Context:  ctx,
		Fetcher:  client,
		Saver:    client,
		Ticket:   ticket,
		Initial:  ParseLabelIDs(raw),
		Policy:   policy,
		Debounce: n.cfg.Debounce(),
		Keys:     n.cfg.KeyMappings,
		Theme:    n.cfg.ColorScheme,
	}), nil
}

// Factories returns the factories a host can register under its own names
func (n *Namespace) Factories() map[string]Factory {
	return map[string]Factory{
		"labels": n.Labels,
	}
}
