package webapp

import (
	"bytes"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// page holds what deskit reads from a fetched document
type page struct {
	title string
	// iconHrefs are the non-empty hrefs of <link rel="...icon..."> elements
	// in <head>, in document order
	iconHrefs []string
}

func parsePage(body []byte) (*page, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	p := &page{}
	head := findElement(doc, atom.Head)
	if head == nil {
		return p, nil
	}

	titleSeen := false
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if !titleSeen {
					titleSeen = true
					p.title = textContent(n)
				}
			case atom.Link:
				rel := strings.ToLower(attr(n, "rel"))
				href := strings.TrimSpace(attr(n, "href"))
				if strings.Contains(rel, "icon") && href != "" {
					p.iconHrefs = append(p.iconHrefs, href)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(head)

	return p, nil
}

// appName derives the shortcut name from a page title. Branded titles such
// as "Inbox | Example | MyApp" use the last segment; an empty title falls
// back to the host.
func appName(title string, u *url.URL) string {
	name := strings.Join(strings.Fields(title), " ")
	if strings.Contains(name, "|") {
		parts := strings.Split(name, "|")
		name = strings.TrimSpace(parts[len(parts)-1])
	}
	if name == "" {
		name = u.Hostname()
	}
	return name
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
