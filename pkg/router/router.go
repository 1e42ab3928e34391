package router

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

const LandingPage = "dashboard"

// Initializer produces the data a page fragment is executed with.
type Initializer func(ctx context.Context, params url.Values) (any, error)

type NavItem struct {
	Page   string
	Label  string
	Icon   string
	Active bool
}

var DefaultNav = []NavItem{
	{Page: "dashboard", Label: "Dashboard", Icon: "fa-house"},
	{Page: "keuangan", Label: "Keuangan", Icon: "fa-wallet"},
	{Page: "lomba", Label: "Lomba", Icon: "fa-trophy"},
	{Page: "doorprize", Label: "Doorprize", Icon: "fa-gift"},
	{Page: "jadwal", Label: "Jadwal", Icon: "fa-calendar-days"},
}

// Screen is the result of one navigation. Content replaces whatever the
// previous navigation showed.
type Screen struct {
	Page    string
	Content template.HTML
	Nav     []NavItem
	Failed  bool
}

type Router struct {
	mu           sync.RWMutex
	source       FragmentSource
	initializers map[string]Initializer
	nav          []NavItem
	funcs        template.FuncMap
}

func New(source FragmentSource, nav []NavItem, funcs template.FuncMap) *Router {
	return &Router{
		source:       source,
		initializers: map[string]Initializer{},
		nav:          nav,
		funcs:        funcs,
	}
}

func (r *Router) Register(page string, initializer Initializer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initializers[page] = initializer
}

// ParseLocation extracts the page name from a hash ("#keuangan"), a path
// ("/p/keuangan") or a bare name. An empty location is the landing page.
func ParseLocation(location string) string {
	page := strings.TrimSpace(location)
	if i := strings.IndexAny(page, "?"); i >= 0 {
		page = page[:i]
	}
	page = strings.TrimPrefix(page, "#")
	page = strings.TrimPrefix(page, "/")
	page = strings.TrimPrefix(page, "p/")
	page = strings.Trim(page, "/")
	if page == "" {
		return LandingPage
	}
	return page
}

func validPageName(page string) bool {
	for _, c := range page {
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' || c == '_') {
			return false
		}
	}
	return page != ""
}

// Navigate fetches the fragment of the page named by location, runs the
// page's initializer and renders the fragment with its data. Any failure
// yields the error block instead; the navigation highlight is computed
// either way.
func (r *Router) Navigate(ctx context.Context, location string, params url.Values) Screen {
	page := ParseLocation(location)
	screen := Screen{Page: page, Nav: r.highlight(page)}

	content, err := r.render(ctx, page, params)
	if err != nil {
		log.Errorf("Error loading page %s: %v", page, err)
		screen.Content = ErrorBlock(page)
		screen.Failed = true
		return screen
	}
	screen.Content = content
	return screen
}

func (r *Router) render(ctx context.Context, page string, params url.Values) (template.HTML, error) {
	if !validPageName(page) {
		return "", fmt.Errorf("%w: invalid page name %q", ErrFragmentNotFound, page)
	}
	fragment, err := r.source.Fetch(ctx, page)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(page).Funcs(r.funcs).Parse(string(fragment))
	if err != nil {
		return "", fmt.Errorf("failed to parse fragment %s: %w", page, err)
	}

	r.mu.RLock()
	initializer := r.initializers[page]
	r.mu.RUnlock()
	var data any
	if initializer != nil {
		if data, err = initializer(ctx, params); err != nil {
			return "", fmt.Errorf("failed to initialize page %s: %w", page, err)
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render page %s: %w", page, err)
	}
	return template.HTML(buf.String()), nil
}

func (r *Router) highlight(page string) []NavItem {
	nav := make([]NavItem, len(r.nav))
	for i, item := range r.nav {
		item.Active = item.Page == page
		nav[i] = item
	}
	return nav
}

// ErrorBlock is shown in place of a page that could not be loaded.
func ErrorBlock(page string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<div class="error-message soft-ui-card"><h3>Error Loading Page</h3><p>Could not load content for "%s". Please try again.</p></div>`,
		template.HTMLEscapeString(page)))
}
