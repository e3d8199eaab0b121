// Package beehive acquires build error logs from an ALT beehive HTML index:
// a directory listing of per-package log files, each downloadable as plain
// text.
package beehive

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/crimson-sun/sawmill/internal/connector"
	"github.com/crimson-sun/sawmill/internal/connector/httpclient"
	"github.com/crimson-sun/sawmill/internal/model"
)

const (
	defaultBaseURL      = "https://git.altlinux.org/beehive/logs/Sisyphus"
	defaultArchitecture = "x86_64"
)

func init() {
	connector.Register("beehive", func() connector.Source {
		return &Source{}
	})
}

// Source implements connector.Source over a beehive error-log index.
type Source struct{}

// endpoint resolves the index URL for the configured architecture.
func endpoint(cfg connector.SourceConfig) (base, arch string) {
	arch = cfg.Architecture
	if arch == "" {
		arch = defaultArchitecture
	}
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/", arch
	}
	return fmt.Sprintf("%s/%s/latest/error/", defaultBaseURL, arch), arch
}

// List downloads the index page and returns the log hrefs it links to,
// sorted ascending.
func (s *Source) List(ctx context.Context, cfg connector.SourceConfig) ([]string, error) {
	base, _ := endpoint(cfg)
	client := httpclient.New(base)

	page, err := client.GetText(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("beehive source: list: %w", err)
	}

	names, err := parseIndex(page)
	if err != nil {
		return nil, fmt.Errorf("beehive source: list: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Fetch downloads one log by its index href.
func (s *Source) Fetch(ctx context.Context, cfg connector.SourceConfig, name string) (model.LogRecord, error) {
	base, arch := endpoint(cfg)
	client := httpclient.New(base)

	text, err := client.GetText(ctx, name)
	if err != nil {
		return model.LogRecord{}, fmt.Errorf("beehive source: fetch %s: %w", name, err)
	}

	return model.LogRecord{
		PacketName:   strings.ReplaceAll(name, "/", "_"),
		Architecture: arch,
		Date:         strconv.FormatInt(time.Now().Unix(), 10),
		Error:        true,
		Log:          text,
	}, nil
}

// parseIndex extracts href values of <a class="link"> anchors inside the
// index's project_list table, skipping the parent-directory entry.
func parseIndex(page string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	var names []string
	var inTable bool

	var walk func(n *html.Node, inside bool)
	walk = func(n *html.Node, inside bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "table":
				if hasClass(n, "project_list") {
					inside = true
					inTable = true
				}
			case "a":
				if inside && hasClass(n, "link") {
					if href := attr(n, "href"); href != "" && href != ".." {
						names = append(names, href)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inside)
		}
	}
	walk(doc, false)

	if !inTable {
		return nil, fmt.Errorf("no project_list table in index page")
	}
	return names, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
