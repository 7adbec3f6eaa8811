package motd_test

import (
	"fmt"
	"io/fs"
	"sync"
	"testing"

	"github.com/servertools/servertools/motd"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	name     string
	messages []string
}

func (p *fakePlayer) Name() string { return p.name }

func (p *fakePlayer) Message(a ...any) {
	p.messages = append(p.messages, fmt.Sprint(a...))
}

// failingFs fails every read while fail is set.
type failingFs struct {
	afero.Fs
	fail bool
}

func (f *failingFs) Open(name string) (afero.File, error) {
	if f.fail {
		return nil, fs.ErrPermission
	}
	return f.Fs.Open(name)
}

const path = "servertools/motd.txt"

func TestLoadWritesDefault(t *testing.T) {
	afs := afero.NewMemMapFs()
	s := motd.New(afs, path)

	assert.Equal(t, motd.DefaultText, s.Text())
	data, err := afero.ReadFile(afs, path)
	require.NoError(t, err)
	assert.Equal(t, motd.DefaultText, string(data))
}

func TestServeReplacesPlaceholder(t *testing.T) {
	afs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(afs, path, []byte("Hi $PLAYER$, $PLAYER$!\r\nNo placeholder here\n$PLAYER$"), 0o644))
	s := motd.New(afs, path)

	p := &fakePlayer{name: "Steve"}
	s.Serve(p)
	assert.Equal(t, []string{"Hi Steve, Steve!", "No placeholder here", "Steve"}, p.messages)
}

func TestLoadReflectsExternalEdit(t *testing.T) {
	afs := afero.NewMemMapFs()
	s := motd.New(afs, path)

	require.NoError(t, afero.WriteFile(afs, path, []byte("Server restarts at 6pm"), 0o644))
	assert.Equal(t, motd.DefaultText, s.Text())

	require.NoError(t, s.Load())
	assert.Equal(t, []string{"Server restarts at 6pm"}, s.Render("Alex"))
}

func TestFailedLoadKeepsText(t *testing.T) {
	afs := &failingFs{Fs: afero.NewMemMapFs()}
	require.NoError(t, afero.WriteFile(afs, path, []byte("first"), 0o644))
	s := motd.New(afs, path)
	require.Equal(t, "first", s.Text())

	afs.fail = true
	require.NoError(t, afero.WriteFile(afs.Fs, path, []byte("second"), 0o644))
	assert.ErrorIs(t, s.Load(), fs.ErrPermission)
	assert.Equal(t, "first", s.Text())
}

func TestFailedInitialLoad(t *testing.T) {
	afs := &failingFs{Fs: afero.NewMemMapFs(), fail: true}
	require.NoError(t, afero.WriteFile(afs.Fs, path, []byte("unreadable"), 0o644))
	s := motd.New(afs, path)

	assert.Empty(t, s.Text())
	p := &fakePlayer{name: "Steve"}
	s.Serve(p)
	assert.Empty(t, p.messages)
}

func TestHooks(t *testing.T) {
	var served, loaded, failed int
	afs := afero.NewMemMapFs()
	s := motd.New(afs, path, motd.WithHooks(func() { served++ }, func(err error) {
		loaded++
		if err != nil {
			failed++
		}
	}))
	s.Serve(&fakePlayer{name: "Steve"})
	require.NoError(t, s.Load())

	assert.Equal(t, 1, served)
	assert.Equal(t, 2, loaded)
	assert.Zero(t, failed)
}

func TestConcurrentServeAndLoad(t *testing.T) {
	s := motd.New(afero.NewMemMapFs(), path)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Load()
		}()
		go func(i int) {
			defer wg.Done()
			s.Serve(&fakePlayer{name: fmt.Sprintf("player%d", i)})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, motd.DefaultText, s.Text())
}

func TestServeSkipsTrailingNewlines(t *testing.T) {
	tests := []struct {
		text     string
		expected []string
	}{
		{text: "Hello $PLAYER$\nRules: be nice\n", expected: []string{"Hello Steve", "Rules: be nice"}},
		{text: "a\r\nb\r\n\r\n", expected: []string{"a", "b"}},
		{text: "a\n\nb", expected: []string{"a", "", "b"}},
		{text: "\n", expected: nil},
	}
	for _, tt := range tests {
		afs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(afs, path, []byte(tt.text), 0o644))
		s := motd.New(afs, path)

		p := &fakePlayer{name: "Steve"}
		s.Serve(p)
		assert.Equal(t, tt.expected, p.messages, "%q", tt.text)
	}
}
