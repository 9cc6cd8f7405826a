package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// pageIterator walks a paginated list endpoint by following the Link
// header's rel="next" URL.
type pageIterator[T any] struct {
	client  *Client
	nextURL string
	accept  string
	// field names the array inside an object envelope, for endpoints like
	// actions/workflows that answer {"total_count": n, "workflows": [...]}.
	field string
}

func newPageIterator[T any](c *Client, firstURL string) *pageIterator[T] {
	return &pageIterator[T]{client: c, nextURL: firstURL, accept: acceptJSON}
}

func (it *pageIterator[T]) withAccept(accept string) *pageIterator[T] {
	it.accept = accept
	return it
}

func (it *pageIterator[T]) within(field string) *pageIterator[T] {
	it.field = field
	return it
}

// next returns the following page, or nil, nil once every page was read.
func (it *pageIterator[T]) next(ctx context.Context) ([]T, error) {
	if it.nextURL == "" {
		return nil, nil
	}
	resp, err := it.client.doAccept(ctx, it.nextURL, it.accept)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp)
	}
	items, err := it.decode(resp.Body)
	if err != nil {
		return nil, err
	}
	it.nextURL = parseLinkNext(resp.Header.Get("Link"))
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (it *pageIterator[T]) decode(body io.Reader) ([]T, error) {
	var items []T
	if it.field == "" {
		if err := json.NewDecoder(body).Decode(&items); err != nil {
			return nil, fmt.Errorf("github: decode page: %w", err)
		}
		return items, nil
	}
	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("github: decode page: %w", err)
	}
	raw, ok := envelope[it.field]
	if !ok {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("github: decode page %s: %w", it.field, err)
	}
	return items, nil
}

func (it *pageIterator[T]) collect(ctx context.Context) ([]T, error) {
	var all []T
	for {
		items, err := it.next(ctx)
		if err != nil {
			return all, err
		}
		if items == nil {
			return all, nil
		}
		all = append(all, items...)
	}
}

// parseLinkNext extracts the rel="next" URL from an RFC 5988 Link header.
//
//	<https://api.github.com/...?page=2>; rel="next", <...>; rel="last"
func parseLinkNext(header string) string {
	for _, part := range strings.Split(header, ",") {
		segments := strings.SplitN(strings.TrimSpace(part), ";", 2)
		if len(segments) != 2 {
			continue
		}
		if !strings.Contains(segments[1], `rel="next"`) {
			continue
		}
		u := strings.TrimSpace(segments[0])
		if strings.HasPrefix(u, "<") && strings.HasSuffix(u, ">") {
			return u[1 : len(u)-1]
		}
	}
	return ""
}
