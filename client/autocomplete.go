package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"github.com/flexihtml/flexihtml/flexihtml"
)

//SuggestMinLength is the hard gate on suggestion lookups. Shorter input
//never reaches the backend.
const SuggestMinLength = 3

//SuggestRequest is the payload the suggestion endpoint expects.
type SuggestRequest struct {
	Model  string `json:"model"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

//SuggestResponse is what the suggestion endpoint answers. Items is absent
//when Status is false.
type SuggestResponse struct {
	Status  bool                     `json:"status"`
	Message string                   `json:"message,omitempty"`
	Items   []map[string]interface{} `json:"items,omitempty"`
}

//Autocomplete feeds one searchbox value input from the backend. Responses
//carry the sequence number of their request; anything but the newest
//issued number is discarded, so a slow early answer can never overwrite a
//fast late one.
type Autocomplete struct {
	root     *html.Node
	client   *http.Client
	endpoint string
	model    string
	column   string

	//ValueOf and LabelOf pick the option value and label out of one item.
	//When unset, both fall back to the queried column's field.
	ValueOf func(item map[string]interface{}) string
	LabelOf func(item map[string]interface{}) string

	//OnExactMatch fires when one returned item's value equals the typed
	//text exactly.
	OnExactMatch func(item map[string]interface{})

	mu  sync.Mutex
	seq uint64
}

func NewAutocomplete(root *html.Node, client *http.Client, endpoint string, model string, column string) *Autocomplete {
	if client == nil {
		client = http.DefaultClient
	}
	return &Autocomplete{
		root:     root,
		client:   client,
		endpoint: endpoint,
		model:    model,
		column:   column,
	}
}

func (a *Autocomplete) itemValue(item map[string]interface{}) string {
	if a.ValueOf != nil {
		return a.ValueOf(item)
	}
	return flexihtml.CellString(item[a.column])
}

func (a *Autocomplete) itemLabel(item map[string]interface{}) string {
	if a.LabelOf != nil {
		return a.LabelOf(item)
	}
	return flexihtml.CellString(item[a.column])
}

//Query looks up suggestions for the typed text and replaces the searchbox
//suggestion list with the answer. Input below the minimum length returns
//without any request. A backend refusal comes back as an error and leaves
//the current list untouched.
func (a *Autocomplete) Query(ctx context.Context, text string) error {
	trimmed := []rune(strings.TrimSpace(text))
	if len(trimmed) < SuggestMinLength {
		return nil
	}

	a.mu.Lock()
	a.seq++
	seq := a.seq
	a.mu.Unlock()

	body, err := json.Marshal(SuggestRequest{Model: a.model, Column: a.column, Value: string(trimmed)})
	if err != nil {
		return errors.Wrap(err, "encode suggest request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build suggest request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "suggest lookup")
	}
	defer resp.Body.Close()

	var answer SuggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return errors.Wrap(err, "decode suggest response")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.seq {
		//a newer lookup is already underway, this answer is stale
		return nil
	}
	if !answer.Status {
		return errors.New(answer.Message)
	}

	a.replaceOptions(answer.Items)
	if a.OnExactMatch != nil {
		for _, item := range answer.Items {
			if a.itemValue(item) == string(trimmed) {
				a.OnExactMatch(item)
			}
		}
	}
	return nil
}

func (a *Autocomplete) replaceOptions(items []map[string]interface{}) {
	list := findByID(a.root, a.model+"-"+a.column)
	if list == nil {
		return
	}
	removeChildren(list)
	for _, item := range items {
		option := &html.Node{
			Type: html.ElementNode,
			Data: "option",
			Attr: []html.Attribute{{Key: "value", Val: a.itemValue(item)}},
		}
		option.AppendChild(&html.Node{Type: html.TextNode, Data: a.itemLabel(item)})
		list.AppendChild(option)
	}
}

//Suggestions returns the values currently offered by the suggestion list.
func (a *Autocomplete) Suggestions() []string {
	list := findByID(a.root, a.model+"-"+a.column)
	if list == nil {
		return nil
	}
	var values []string
	for child := list.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == "option" {
			values = append(values, attrValue(child, "value"))
		}
	}
	return values
}
