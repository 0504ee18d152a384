package paginator

import (
	"context"
	"errors"
	"moviereviews/proj/internal/domain/filters"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sliceSource(items []int) SourceFuncs[int] {
	return SourceFuncs[int]{
		CountFunc: func(ctx context.Context) (int, error) {
			return len(items), nil
		},
		FetchFunc: func(ctx context.Context, f filters.Filters) ([]int, error) {
			start := min(f.Offset(), len(items))
			end := min(start+f.Limit(), len(items))
			return items[start:end], nil
		},
	}
}

func mustParse(t *testing.T, raw string) *url.URL {
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestPaginate(t *testing.T) {
	ctx := context.Background()
	src := sliceSource([]int{1, 2, 3, 4})

	t.Run("first page", func(t *testing.T) {
		page, err := Paginate[int](ctx, src, 1, mustParse(t, "http://localhost:8000/api/movies/"))
		require.NoError(t, err)
		assert.Equal(t, 4, page.Count)
		assert.Equal(t, []int{1, 2, 3}, page.Results)
		require.NotNil(t, page.Next)
		assert.Equal(t, "http://localhost:8000/api/movies/?page=2", *page.Next)
		assert.Contains(t, *page.Next, "/?page=2")
		assert.Nil(t, page.Previous)
	})

	t.Run("last page", func(t *testing.T) {
		page, err := Paginate[int](ctx, src, 2, mustParse(t, "http://localhost:8000/api/movies/?page=2"))
		require.NoError(t, err)
		assert.Equal(t, 4, page.Count)
		assert.Equal(t, []int{4}, page.Results)
		assert.Nil(t, page.Next)
		require.NotNil(t, page.Previous)
		assert.Equal(t, "http://localhost:8000/api/movies/", *page.Previous)
	})

	t.Run("keeps other query params", func(t *testing.T) {
		page, err := Paginate[int](ctx, sliceSource(make([]int, 9)), 2, mustParse(t, "http://h/api/reviews/?page=2&x=1"))
		require.NoError(t, err)
		assert.Equal(t, "http://h/api/reviews/?page=3&x=1", *page.Next)
		assert.Equal(t, "http://h/api/reviews/?x=1", *page.Previous)
	})

	t.Run("empty source", func(t *testing.T) {
		page, err := Paginate[int](ctx, sliceSource(nil), 1, mustParse(t, "http://h/api/reviews/"))
		require.NoError(t, err)
		assert.Equal(t, 0, page.Count)
		assert.NotNil(t, page.Results)
		assert.Empty(t, page.Results)
		assert.Nil(t, page.Next)
		assert.Nil(t, page.Previous)
	})

	t.Run("out of range", func(t *testing.T) {
		for _, p := range []int{0, -1, 3} {
			_, err := Paginate[int](ctx, src, p, mustParse(t, "http://h/api/movies/"))
			assert.ErrorIs(t, err, ErrPageOutOfRange, "page %d", p)
		}
	})

	t.Run("source error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Paginate[int](ctx, SourceFuncs[int]{
			CountFunc: func(ctx context.Context) (int, error) { return 0, boom },
		}, 1, mustParse(t, "http://h/"))
		assert.ErrorIs(t, err, boom)
	})
}
