package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"github.com/flexihtml/flexihtml/flexihtml"
)

//DetailResponse is the payload a detail endpoint answers with.
type DetailResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

//DetailPane drives the one shared detail container of a page. Every Open
//bumps an epoch; a response only lands when its epoch is still current, so
//a pane reopened for another record never shows the content of the first.
type DetailPane struct {
	root   *html.Node
	client *http.Client

	mu    sync.Mutex
	epoch uint64
}

func NewDetailPane(root *html.Node, client *http.Client) *DetailPane {
	if client == nil {
		client = http.DefaultClient
	}
	return &DetailPane{root: root, client: client}
}

func (p *DetailPane) pane() *html.Node {
	return findByID(p.root, flexihtml.PaneID)
}

func (p *DetailPane) setContent(title string, content string) {
	pane := p.pane()
	if pane == nil {
		return
	}
	for _, node := range findByClass(pane, "flexipane-title") {
		setText(node, title)
	}
	for _, node := range findByClass(pane, "flexipane-content") {
		setMarkup(node, content)
	}
}

//Close hides the pane and invalidates any fetch still in flight.
func (p *DetailPane) Close() {
	p.mu.Lock()
	p.epoch++
	p.mu.Unlock()
	if pane := p.pane(); pane != nil {
		setDisplayed(pane, false)
	}
}

//Title returns the pane's current title text.
func (p *DetailPane) Title() string {
	pane := p.pane()
	if pane == nil {
		return ""
	}
	for _, node := range findByClass(pane, "flexipane-title") {
		if node.FirstChild != nil && node.FirstChild.Type == html.TextNode {
			return node.FirstChild.Data
		}
	}
	return ""
}

//Open shows the pane in its loading state and fetches the detail content
//from the endpoint. The loading state is set before the request goes out,
//so the pane never shows the previous record while the next one loads.
func (p *DetailPane) Open(ctx context.Context, endpoint string, payload interface{}) error {
	p.mu.Lock()
	p.epoch++
	epoch := p.epoch
	p.mu.Unlock()

	p.setContent(flexihtml.PaneLoadingTitle, flexihtml.PaneLoadingBody)
	if pane := p.pane(); pane != nil {
		setDisplayed(pane, true)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encode detail request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build detail request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.apply(epoch, "Request failed", "Could not load "+endpoint+": "+err.Error())
		return errors.Wrap(err, "detail lookup")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.apply(epoch, resp.Status, "Could not load "+req.URL.String()+": "+resp.Status)
		return errors.Errorf("detail lookup: %s", resp.Status)
	}

	var answer DetailResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		p.apply(epoch, "Request failed", "Could not load "+req.URL.String()+": "+err.Error())
		return errors.Wrap(err, "decode detail response")
	}

	p.apply(epoch, answer.Title, answer.Content)
	return nil
}

func (p *DetailPane) apply(epoch uint64, title string, content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if epoch != p.epoch {
		//the pane moved on while this fetch was in flight
		return
	}
	p.setContent(title, content)
}
