// Package paginator shapes any countable, ordered result source into the
// {count, next, previous, results} envelope returned by list endpoints.
package paginator

import (
	"context"
	"errors"
	"moviereviews/proj/internal/domain/filters"
	"net/url"
	"strconv"
)

const PageParam = "page"

var ErrPageOutOfRange = errors.New("invalid page")

type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

type Source[T any] interface {
	Count(ctx context.Context) (int, error)
	Fetch(ctx context.Context, f filters.Filters) ([]T, error)
}

// SourceFuncs adapts a pair of functions to Source.
type SourceFuncs[T any] struct {
	CountFunc func(ctx context.Context) (int, error)
	FetchFunc func(ctx context.Context, f filters.Filters) ([]T, error)
}

func (s SourceFuncs[T]) Count(ctx context.Context) (int, error) {
	return s.CountFunc(ctx)
}

func (s SourceFuncs[T]) Fetch(ctx context.Context, f filters.Filters) ([]T, error) {
	return s.FetchFunc(ctx, f)
}

// Paginate fetches the requested page of src. pageURL is the absolute url of
// the current request, next/previous links are built from it by rewriting the
// page query parameter.
func Paginate[T any](ctx context.Context, src Source[T], page int, pageURL *url.URL) (*Page[T], error) {
	if page < 1 {
		return nil, ErrPageOutOfRange
	}
	f := filters.New(page)
	count, err := src.Count(ctx)
	if err != nil {
		return nil, err
	}
	lastPage := f.LastPage(count)
	if page > lastPage {
		return nil, ErrPageOutOfRange
	}
	results, err := src.Fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []T{}
	}
	p := &Page[T]{Count: count, Results: results}
	if page < lastPage {
		p.Next = pageLink(pageURL, page+1)
	}
	if page > 1 {
		p.Previous = pageLink(pageURL, page-1)
	}
	return p, nil
}

func pageLink(base *url.URL, page int) *string {
	u := *base
	q := u.Query()
	if page == 1 {
		q.Del(PageParam)
	} else {
		q.Set(PageParam, strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}
