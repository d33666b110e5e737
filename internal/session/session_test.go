package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"bookbrowser/internal/book"
	"bookbrowser/internal/browser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRepo struct {
	catalog *book.Catalog
}

func (r staticRepo) Load(context.Context) (*book.Catalog, error) {
	return r.catalog, nil
}

func newTestService(t *testing.T) *book.Service {
	t.Helper()
	published := time.Date(1937, 9, 21, 0, 0, 0, 0, time.UTC)
	c, err := book.NewCatalog([]book.Book{
		{ID: "a", Title: "Dune", AuthorID: "A1", GenreIDs: []string{"sci-fi"}, Published: published},
		{ID: "b", Title: "The Hobbit", AuthorID: "A2", GenreIDs: []string{"fantasy"}, Published: published},
		{ID: "c", Title: "Dune Messiah", AuthorID: "A1", GenreIDs: []string{"sci-fi"}, Published: published},
	}, map[string]string{"A1": "Frank Herbert", "A2": "J.R.R. Tolkien"},
		map[string]string{"sci-fi": "Science Fiction", "fantasy": "Fantasy"}, 2)
	require.NoError(t, err)

	svc, err := book.NewService(context.Background(), staticRepo{catalog: c})
	require.NoError(t, err)
	return svc
}

func TestStore_CreateGetDelete(t *testing.T) {
	store := NewStore(newTestService(t), 0)
	defer store.Close()

	sess := store.Create(browser.Night)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	_ = got.Do(func(b *browser.Browser) error {
		assert.Equal(t, browser.Night, b.State().Theme)
		assert.Len(t, b.State().Visible, 2)
		return nil
	})

	require.NoError(t, store.Delete(sess.ID))
	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(sess.ID), ErrNotFound)
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	store := NewStore(newTestService(t), 0)
	defer store.Close()

	one := store.Create(browser.Day)
	two := store.Create(browser.Day)

	_ = one.Do(func(b *browser.Browser) error {
		_, err := b.Dispatch(browser.RevealMore{})
		return err
	})

	_ = two.Do(func(b *browser.Browser) error {
		assert.Equal(t, 2, b.State().Revealed)
		return nil
	})
	_ = one.Do(func(b *browser.Browser) error {
		assert.Equal(t, 3, b.State().Revealed)
		return nil
	})
}

func TestStore_Sweep(t *testing.T) {
	store := NewStore(newTestService(t), 0)
	defer store.Close()

	stale := store.Create(browser.Day)
	time.Sleep(5 * time.Millisecond)
	cutoff := time.Now()
	fresh := store.Create(browser.Day)

	assert.Equal(t, 1, store.Sweep(cutoff))
	_, err := store.Get(stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	store := NewStore(newTestService(t), time.Minute)
	defer store.Close()
	sess := store.Create(browser.Day)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sess.Do(func(b *browser.Browser) error {
				_, err := b.Dispatch(browser.ToggleTheme{})
				return err
			})
		}()
	}
	wg.Wait()

	_ = sess.Do(func(b *browser.Browser) error {
		assert.Equal(t, browser.Day, b.State().Theme)
		return nil
	})
}

func TestStore_CloseIsIdempotent(t *testing.T) {
	store := NewStore(newTestService(t), time.Minute)
	store.Close()
	assert.NotPanics(t, store.Close)
}

func TestSweepInterval(t *testing.T) {
	assert.Equal(t, time.Second, sweepInterval(time.Millisecond))
	assert.Equal(t, 15*time.Minute, sweepInterval(30*time.Minute))
}
