package book

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, pageSize int) *Service {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepository(ctrl)
	mockRepo.EXPECT().Load(gomock.Any()).Return(newTestCatalog(t, pageSize), nil)

	s, err := NewService(context.Background(), mockRepo)
	require.NoError(t, err)
	return s
}

func TestNewService(t *testing.T) {
	t.Run("load error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockRepo := NewMockRepository(ctrl)
		mockRepo.EXPECT().Load(gomock.Any()).Return(nil, errors.New("db error"))

		_, err := NewService(context.Background(), mockRepo)
		assert.ErrorContains(t, err, "load catalog")
	})
}

func TestService_Resolve(t *testing.T) {
	s := newTestService(t, 2)

	t.Run("found", func(t *testing.T) {
		b, err := s.Resolve("a")
		require.NoError(t, err)
		assert.Equal(t, "Dune", b.Title)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.Resolve("zzz")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("every id resolves to itself", func(t *testing.T) {
		for _, want := range testBooks() {
			got, err := s.Resolve(want.ID)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})
}

func TestService_Search(t *testing.T) {
	s := newTestService(t, 2)
	assert.Equal(t, []string{"b", "c"}, ids(s.Search(Criteria{Genre: "fantasy"})))
	assert.Len(t, s.Search(MatchAll), 5)
}

func TestService_Page(t *testing.T) {
	s := newTestService(t, 2)

	t.Run("walks the whole set", func(t *testing.T) {
		p, err := s.Page(MatchAll, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ids(p.Books))
		assert.Equal(t, 5, p.Total)
		assert.Equal(t, 3, p.Remaining)
		require.NotEmpty(t, p.NextCursor)

		p, err = s.Page(MatchAll, p.NextCursor)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "d"}, ids(p.Books))
		assert.Equal(t, 4, p.Revealed)
		assert.Equal(t, 1, p.Remaining)

		p, err = s.Page(MatchAll, p.NextCursor)
		require.NoError(t, err)
		assert.Equal(t, []string{"e"}, ids(p.Books))
		assert.Equal(t, 0, p.Remaining)
		assert.Empty(t, p.NextCursor)
	})

	t.Run("pages the filtered set", func(t *testing.T) {
		c := Criteria{Genre: "sci-fi"}
		p, err := s.Page(c, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "d"}, ids(p.Books))

		p, err = s.Page(c, p.NextCursor)
		require.NoError(t, err)
		assert.Equal(t, []string{"e"}, ids(p.Books))
		assert.Equal(t, 3, p.Total)
	})

	t.Run("criteria change resets", func(t *testing.T) {
		p, err := s.Page(MatchAll, "")
		require.NoError(t, err)

		p, err = s.Page(Criteria{Author: "A3"}, p.NextCursor)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "e"}, ids(p.Books))
		assert.Equal(t, 2, p.Revealed)
		assert.Equal(t, 0, p.Remaining)
	})

	t.Run("no matches", func(t *testing.T) {
		p, err := s.Page(Criteria{Title: "zzz"}, "")
		require.NoError(t, err)
		assert.Empty(t, p.Books)
		assert.Equal(t, 0, p.Remaining)
		assert.Empty(t, p.NextCursor)
	})

	t.Run("oversized token", func(t *testing.T) {
		for _, revealed := range []int{5, 6, math.MaxInt - 1, math.MaxInt} {
			tok := EncodeCursor(CursorData{Author: Wildcard, Genre: Wildcard, Revealed: revealed})
			assert.NotPanics(t, func() {
				_, err := s.Page(MatchAll, tok)
				assert.ErrorIs(t, err, ErrInvalidCursor)
			})
		}
	})

	t.Run("oversized token for other criteria resets", func(t *testing.T) {
		tok := EncodeCursor(CursorData{Title: "zzz", Revealed: math.MaxInt})
		p, err := s.Page(MatchAll, tok)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ids(p.Books))
	})

	t.Run("bad token", func(t *testing.T) {
		_, err := s.Page(MatchAll, "!!!")
		assert.ErrorIs(t, err, ErrInvalidCursor)
	})
}
