// Package nettest provides a scripted network.Transport for adapter tests.
package nettest

import (
	"context"
	"fmt"
	"sync"

	"github.com/mediathek-cli/mediathek/network"
	"github.com/mediathek-cli/mediathek/source"
)

// Call records one request.
type Call struct {
	URL     string
	Headers map[string]string
}

// Transport answers requests from scripted responses keyed by exact URL. Each URL
// serves its queue in order and keeps repeating the last entry. Unknown URLs
// answer 404.
type Transport struct {
	mu     sync.Mutex
	queues map[string][]reply
	calls  []Call
}

type reply struct {
	resp *network.Response
	err  error
}

// New returns an empty transport.
func New() *Transport {
	return &Transport{queues: make(map[string][]reply)}
}

// Reply queues a response for url.
func (t *Transport) Reply(url string, status int, body string) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queues[url] = append(t.queues[url], reply{resp: &network.Response{StatusCode: status, Body: body}})
	return t
}

// OK queues a 200 response for url.
func (t *Transport) OK(url, body string) *Transport {
	return t.Reply(url, 200, body)
}

// Fail queues a transport failure for url.
func (t *Transport) Fail(url string) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queues[url] = append(t.queues[url], reply{err: source.Fail(source.NetworkError, url, "connection refused")})
	return t
}

// Request implements network.Transport.
func (t *Transport) Request(_ context.Context, url string, headers map[string]string) (*network.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	copied := make(map[string]string, len(headers))
	for k, v := range headers {
		copied[k] = v
	}
	t.calls = append(t.calls, Call{URL: url, Headers: copied})

	queue, ok := t.queues[url]
	if !ok || len(queue) == 0 {
		return &network.Response{StatusCode: 404, Body: fmt.Sprintf("no reply scripted for %s", url)}, nil
	}

	r := queue[0]
	if len(queue) > 1 {
		t.queues[url] = queue[1:]
	}
	return r.resp, r.err
}

// Calls returns every request made so far.
func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Call(nil), t.calls...)
}

// CallsTo counts requests made to url.
func (t *Transport) CallsTo(url string) int {
	n := 0
	for _, c := range t.Calls() {
		if c.URL == url {
			n++
		}
	}
	return n
}

var _ network.Transport = (*Transport)(nil)
