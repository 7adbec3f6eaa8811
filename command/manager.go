package command

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/servertools/servertools/locale"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// ErrAlreadyLoaded is returned by Register once the commands were handed to the server.
var ErrAlreadyLoaded = errors.New("commands are already loaded")

// Entry is a command known to a Manager together with its settings from the config file.
type Entry struct {
	Key     string
	Name    string
	Enabled bool
	Command Command
}

type Manager struct {
	mu sync.Mutex

	store   *store
	seen    map[string]*Entry
	pending map[string]*Entry
	loaded  bool

	helpOverride bool
	log          *logrus.Entry
}

type Option func(*Manager)

func WithLogger(log *logrus.Entry) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// WithHelpOverride makes Load register a help command that lists commands sorted by name.
func WithHelpOverride(enabled bool) Option {
	return func(m *Manager) {
		m.helpOverride = enabled
	}
}

// NewManager loads the command config at path, creating it if it does not exist yet.
func NewManager(afs afero.Fs, path string, opts ...Option) (*Manager, error) {
	st, err := loadStore(afs, path)
	if err != nil {
		return nil, err
	}
	m := &Manager{
		store:   st,
		seen:    make(map[string]*Entry),
		pending: make(map[string]*Entry),
		log:     logrus.WithField("component", "commands"),
	}
	for _, opt := range opts {
		opt(m)
	}

	st.setComment(enableCategory, "Allows you to disable any command registered with ServerTools")
	st.setComment(nameCategory, "Allows you to rename any command registered with ServerTools")
	if err := st.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// Register adds c to the commands loaded on startup if it is enabled in the config. Settings missing
// from the config are written with their defaults. Registering after Load is a programming error and
// returns ErrAlreadyLoaded.
func (m *Manager) Register(c Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key(c)
	if m.loaded {
		m.log.Error(locale.Loc("register_after_load", locale.Strmap{"Key": key}))
		return fmt.Errorf("register %s: %w", key, ErrAlreadyLoaded)
	}

	e := &Entry{
		Key:     key,
		Enabled: m.store.getBool(enableCategory, key, true),
		Name:    m.store.getString(nameCategory, key, c.DefaultName()),
		Command: c,
	}
	if err := m.store.save(); err != nil {
		return fmt.Errorf("register %s: %w", key, err)
	}

	m.seen[key] = e
	if e.Enabled {
		m.pending[key] = e
	} else {
		delete(m.pending, key)
	}
	return nil
}

// Load registers every enabled command with d and marks the manager as loaded. It returns the
// number of commands registered, not counting the help override.
func (m *Manager) Load(d Dispatcher) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := sortEntries(m.pending)
	for _, e := range entries {
		m.log.Tracef("Command: %s , has name: %s", e.Key, e.Name)
		m.log.Info(locale.Loc("registering_command", locale.Strmap{"Name": e.Name}))
		d.Register(e.build())
	}

	if m.helpOverride {
		d.Register(newHelpCommand())
	}

	m.loaded = true
	return len(entries)
}

// Reset forgets every registered command and allows registering again. It is called when the
// server stops.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loaded = false
	clear(m.pending)
	clear(m.seen)
}

func (m *Manager) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// Entries returns every command registered since the last Reset, enabled or not, sorted by name.
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	sorted := sortEntries(m.seen)
	entries := make([]Entry, 0, len(sorted))
	for _, e := range sorted {
		entries = append(entries, *e)
	}
	return entries
}

func (e *Entry) build() cmd.Command {
	var aliases []string
	if a, ok := e.Command.(Aliaser); ok {
		aliases = a.Aliases()
	}
	return cmd.New(e.Name, e.Command.Description(), aliases, e.Command.Runnables()...)
}

func sortEntries(m map[string]*Entry) []*Entry {
	entries := make([]*Entry, 0, len(m))
	for _, e := range m {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name == entries[j].Name {
			return entries[i].Key < entries[j].Key
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
