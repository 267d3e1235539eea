package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu    sync.Mutex
	files map[string][]byte
	calls map[string]int
}

func (f *fakeFetcher) Load(_ context.Context, ref string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[ref]++
	data, ok := f.files[ref]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

type fakeUploader struct {
	next    uint32
	deleted []uint32
}

func (u *fakeUploader) Upload(*image.RGBA) uint32 {
	u.next++
	return u.next
}

func (u *fakeUploader) Delete(id uint32) {
	u.deleted = append(u.deleted, id)
}

func pngData(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

// pollUntil polls c until ref leaves the pending state.
func pollUntil(t *testing.T, c *Cache, ref string) (Texture, State) {
	t.Helper()
	var (
		tex   Texture
		state State
	)
	require.Eventually(t, func() bool {
		c.Poll()
		tex, state = c.Get(ref)
		return state != StatePending
	}, 2*time.Second, 5*time.Millisecond)
	return tex, state
}

func TestGetLoadsAndUploads(t *testing.T) {
	f := &fakeFetcher{files: map[string][]byte{"a.png": pngData(t, 4, 3)}}
	up := &fakeUploader{}
	c := New(f, up, 2)
	defer c.Close()

	_, state := c.Get("a.png")
	assert.Equal(t, StatePending, state)

	tex, state := pollUntil(t, c, "a.png")
	assert.Equal(t, StateReady, state)
	assert.Equal(t, Texture{ID: 1, Width: 4, Height: 3}, tex)
}

func TestFailedLoad(t *testing.T) {
	c := New(&fakeFetcher{files: map[string][]byte{"bad.png": []byte("nope")}}, &fakeUploader{}, 1)
	defer c.Close()

	_, state := c.Get("missing.png")
	require.Equal(t, StatePending, state)
	_, state = pollUntil(t, c, "missing.png")
	assert.Equal(t, StateFailed, state)

	c.Request("bad.png")
	_, state = pollUntil(t, c, "bad.png")
	assert.Equal(t, StateFailed, state)
}

func TestRequestDeduplicates(t *testing.T) {
	f := &fakeFetcher{files: map[string][]byte{"a.png": pngData(t, 1, 1)}}
	c := New(f, &fakeUploader{}, 4)
	defer c.Close()

	c.Prefetch([]string{"a.png", "a.png", "", "a.png"})
	pollUntil(t, c, "a.png")
	c.Get("a.png")

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, 1, f.calls["a.png"])
	assert.Len(t, f.calls, 1)
}

func TestEmptyReference(t *testing.T) {
	c := New(&fakeFetcher{}, &fakeUploader{}, 1)
	defer c.Close()
	_, state := c.Get("")
	assert.Equal(t, StateMissing, state)
}

func TestCloseDeletesTextures(t *testing.T) {
	f := &fakeFetcher{files: map[string][]byte{
		"a.png": pngData(t, 1, 1),
		"b.png": pngData(t, 1, 1),
	}}
	up := &fakeUploader{}
	c := New(f, up, 2)
	c.Prefetch([]string{"a.png", "b.png"})
	pollUntil(t, c, "a.png")
	pollUntil(t, c, "b.png")

	c.Close()
	assert.ElementsMatch(t, []uint32{1, 2}, up.deleted)

	// Closed caches ignore new requests.
	_, state := c.Get("a.png")
	assert.Equal(t, StateMissing, state)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "missing", StateMissing.String())
}
