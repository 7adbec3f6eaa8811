package command

import (
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type noop struct{}

func (noop) Run(cmd.Source, *cmd.Output) {}

type pingCommand struct{}

func (pingCommand) DefaultName() string       { return "ping" }
func (pingCommand) Description() string       { return "Replies with pong" }
func (pingCommand) Runnables() []cmd.Runnable { return []cmd.Runnable{noop{}} }

type healCommand struct{}

func (healCommand) DefaultName() string       { return "heal" }
func (healCommand) Description() string       { return "Heals a player" }
func (healCommand) Runnables() []cmd.Runnable { return []cmd.Runnable{noop{}} }
func (healCommand) Aliases() []string         { return []string{"h"} }

type recorder struct {
	cmds []cmd.Command
}

func (r *recorder) Register(c cmd.Command) {
	r.cmds = append(r.cmds, c)
}

func (r *recorder) names() []string {
	names := make([]string, 0, len(r.cmds))
	for _, c := range r.cmds {
		names = append(names, c.Name())
	}
	return names
}

const configPath = "servertools/command.yml"

var (
	pingKey = "github.com/servertools/servertools/command.pingCommand"
	healKey = "github.com/servertools/servertools/command.healCommand"
)

func newManager(t *testing.T, afs afero.Fs, opts ...Option) *Manager {
	t.Helper()
	m, err := NewManager(afs, configPath, opts...)
	require.NoError(t, err)
	return m
}

func TestKey(t *testing.T) {
	assert.Equal(t, pingKey, Key(pingCommand{}))
	assert.Equal(t, healKey, Key(&healCommand{}))
}

func TestLoadRegistersEnabledCommands(t *testing.T) {
	afs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(afs, configPath, []byte(`
enableCommand:
    `+healKey+`: false
`), 0o644))

	m := newManager(t, afs)
	require.NoError(t, m.Register(pingCommand{}))
	require.NoError(t, m.Register(healCommand{}))

	r := &recorder{}
	n := m.Load(r)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"ping"}, r.names())
	assert.True(t, m.Loaded())

	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "heal", entries[0].Name)
	assert.False(t, entries[0].Enabled)
	assert.Equal(t, "ping", entries[1].Name)
	assert.True(t, entries[1].Enabled)
}

func TestLoadUsesConfiguredNames(t *testing.T) {
	afs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(afs, configPath, []byte(`
commandName:
    `+pingKey+`: pong
`), 0o644))

	m := newManager(t, afs)
	require.NoError(t, m.Register(pingCommand{}))
	require.NoError(t, m.Register(healCommand{}))

	r := &recorder{}
	m.Load(r)
	assert.Equal(t, []string{"heal", "pong"}, r.names())
	assert.Contains(t, r.cmds[0].Aliases(), "h")
	assert.Equal(t, "Heals a player", r.cmds[0].Description())
}

func TestRegisterWritesDefaults(t *testing.T) {
	afs := afero.NewMemMapFs()
	m := newManager(t, afs)
	require.NoError(t, m.Register(pingCommand{}))

	data, err := afero.ReadFile(afs, configPath)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, "Allows you to disable any command registered with ServerTools")
	assert.Contains(t, s, "Allows you to rename any command registered with ServerTools")
	assert.Contains(t, s, pingKey+": true")
	assert.Contains(t, s, pingKey+": ping")

	// loading the file again keeps it as is
	m2 := newManager(t, afs)
	require.NoError(t, m2.Register(pingCommand{}))
	data2, err := afero.ReadFile(afs, configPath)
	require.NoError(t, err)
	assert.Equal(t, s, string(data2))
	assert.Equal(t, 1, strings.Count(string(data2), "Allows you to disable"))
}

func TestRegisterAfterLoad(t *testing.T) {
	m := newManager(t, afero.NewMemMapFs())
	require.NoError(t, m.Register(pingCommand{}))
	m.Load(&recorder{})

	err := m.Register(healCommand{})
	require.ErrorIs(t, err, ErrAlreadyLoaded)

	m.Reset()
	assert.False(t, m.Loaded())
	assert.Empty(t, m.Entries())

	require.NoError(t, m.Register(healCommand{}))
	r := &recorder{}
	m.Load(r)
	assert.Equal(t, []string{"heal"}, r.names())
}

func TestRegisterTwiceReplaces(t *testing.T) {
	m := newManager(t, afero.NewMemMapFs())
	require.NoError(t, m.Register(pingCommand{}))
	require.NoError(t, m.Register(pingCommand{}))

	r := &recorder{}
	m.Load(r)
	assert.Equal(t, []string{"ping"}, r.names())
}

func TestLoadHelpOverride(t *testing.T) {
	m := newManager(t, afero.NewMemMapFs(), WithHelpOverride(true))
	require.NoError(t, m.Register(pingCommand{}))

	r := &recorder{}
	assert.Equal(t, 1, m.Load(r))
	assert.Equal(t, []string{"ping", "help"}, r.names())
}

func TestStoreInvalidValues(t *testing.T) {
	afs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(afs, configPath, []byte(`
enableCommand:
    `+pingKey+`: maybe
commandName:
    `+pingKey+`: ""
`), 0o644))

	m := newManager(t, afs)
	require.NoError(t, m.Register(pingCommand{}))
	r := &recorder{}
	m.Load(r)
	assert.Equal(t, []string{"ping"}, r.names())
}

func TestStoreRejectsNonMapping(t *testing.T) {
	afs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(afs, configPath, []byte("- a\n- b\n"), 0o644))

	_, err := NewManager(afs, configPath)
	assert.Error(t, err)
}

// readOnlyFs fails every file opened for writing while fail is set.
type readOnlyFs struct {
	afero.Fs
	fail bool
}

func (f *readOnlyFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if f.fail && flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		return nil, fs.ErrPermission
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func TestRegisterSaveFailure(t *testing.T) {
	afs := &readOnlyFs{Fs: afero.NewMemMapFs()}
	m := newManager(t, afs)

	afs.fail = true
	err := m.Register(pingCommand{})
	require.ErrorIs(t, err, fs.ErrPermission)
	assert.Empty(t, m.Entries())

	afs.fail = false
	require.NoError(t, m.Register(pingCommand{}))
	r := &recorder{}
	assert.Equal(t, 1, m.Load(r))
	assert.Equal(t, []string{"ping"}, r.names())
}
