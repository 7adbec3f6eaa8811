// Package motd serves the message of the day to players.
package motd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Placeholder is replaced by the name of the player the MOTD is sent to.
const Placeholder = "$PLAYER$"

// DefaultText is written to disk when no MOTD file exists yet.
const DefaultText = "Welcome to the server, " + Placeholder + "!\nEdit motd.txt in the servertools folder to change this message."

// Recipient receives the MOTD. *player.Player implements it.
type Recipient interface {
	Name() string
	Message(a ...any)
}

type Service struct {
	fs   afero.Fs
	path string
	log  *logrus.Entry

	mu   sync.RWMutex
	text string

	onServe func()
	onLoad  func(err error)
}

type Option func(*Service)

func WithLogger(log *logrus.Entry) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithHooks sets functions called after the MOTD was served and after every load.
func WithHooks(onServe func(), onLoad func(err error)) Option {
	return func(s *Service) {
		s.onServe = onServe
		s.onLoad = onLoad
	}
}

// New creates a Service for the file at path and loads it.
func New(afs afero.Fs, path string, opts ...Option) *Service {
	s := &Service{
		fs:   afs,
		path: path,
		log:  logrus.WithField("component", "motd"),
	}
	for _, opt := range opts {
		opt(s)
	}
	_ = s.Load()
	return s
}

// Load reads the MOTD file, writing DefaultText to it first if it does not exist. On failure the
// previously loaded text is kept and the error is logged and returned.
func (s *Service) Load() (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if err != nil {
			s.log.WithError(err).Warn("Failed to read MOTD from disk")
		}
		if s.onLoad != nil {
			s.onLoad(err)
		}
	}()

	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return fmt.Errorf("create motd dir: %w", err)
		}
		if err := afero.WriteFile(s.fs, s.path, []byte(DefaultText), 0o644); err != nil {
			return fmt.Errorf("write default motd: %w", err)
		}
		s.text = DefaultText
		return nil
	}
	if err != nil {
		return fmt.Errorf("read motd: %w", err)
	}
	s.text = string(data)
	return nil
}

// Text returns the MOTD as loaded, without substitutions.
func (s *Service) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// Render returns the lines of the MOTD for the player called name.
func (s *Service) Render(name string) []string {
	text := strings.ReplaceAll(s.Text(), "\r\n", "\n")
	// trailing newlines would show up as empty chat messages
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.ReplaceAll(line, Placeholder, name)
	}
	return lines
}

// Serve sends the MOTD to r, one chat message per line.
func (s *Service) Serve(r Recipient) {
	for _, line := range s.Render(r.Name()) {
		r.Message(line)
	}
	if s.onServe != nil {
		s.onServe()
	}
}
