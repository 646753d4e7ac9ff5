package clientconfig

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"

	"github.com/tansive/mcpconf/internal/common/logtrace"
	"github.com/tansive/mcpconf/internal/common/uuid"
)

const defaultFileMode fs.FileMode = 0o644

// Session is the client config selected for one run of the tool. It is created once
// and passed to everything that reads or writes the client's servers.
type Session struct {
	ID     string
	Client Client
	Doc    *Document
	// Backup keeps a copy of the previous file at <path>.bak on Save.
	Backup bool

	created bool
	logger  zerolog.Logger
}

// OpenSession loads the config file of client. A missing file is created holding an
// empty mcpServers object.
func OpenSession(client Client) (*Session, error) {
	s := &Session{
		ID:     uuid.New().String(),
		Client: client,
	}
	s.logger = logtrace.WithSession(s.ID).With().Str("client", client.Slug).Logger()
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenSessionAt loads the config file at path without a known client.
func OpenSessionAt(path string) (*Session, error) {
	return OpenSession(Client{
		Name:        "Custom",
		Slug:        CustomSlug,
		Description: "explicit config path",
		Path:        path,
	})
}

// Path is the client config file.
func (s *Session) Path() string {
	return s.Client.Path
}

// Created reports whether the file did not exist when the session was opened.
func (s *Session) Created() bool {
	return s.created
}

// Logger returns the session-scoped logger.
func (s *Session) Logger() *zerolog.Logger {
	return &s.logger
}

func (s *Session) load() error {
	raw, err := os.ReadFile(s.Path())
	if err == nil {
		doc, err := ParseDocument(raw)
		if err != nil {
			return ErrInvalidDocument.MsgErr("unable to load "+s.Path(), err)
		}
		s.Doc = doc
		s.logger.Debug().Str("path", s.Path()).Int("servers", len(doc.Names())).Msg("client config loaded")
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return ErrInvalidDocument.MsgErr("unable to read "+s.Path(), err)
	}

	s.Doc = NewDocument()
	s.created = true
	if err := os.MkdirAll(filepath.Dir(s.Path()), 0o755); err != nil {
		return ErrWrite.MsgErr("unable to create config directory", err)
	}
	if err := s.write(s.Doc.Bytes()); err != nil {
		return err
	}
	s.logger.Info().Str("path", s.Path()).Msg("created client config")
	return nil
}

// Save writes the document back to the client's file, replacing it atomically.
func (s *Session) Save() error {
	if s.Backup {
		if err := s.backup(); err != nil {
			return err
		}
	}
	if err := s.write(s.Doc.Bytes()); err != nil {
		return err
	}
	s.logger.Debug().Str("path", s.Path()).Msg("client config saved")
	return nil
}

func (s *Session) backup() error {
	prev, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return ErrWrite.MsgErr("unable to read config for backup", err)
	}
	if err := os.WriteFile(s.Path()+".bak", prev, fileMode(s.Path())); err != nil {
		return ErrWrite.MsgErr("unable to write backup", err)
	}
	return nil
}

// write stores data in <path>.tmp and renames it over the config file.
func (s *Session) write(data []byte) error {
	path := s.Path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, fileMode(path)); err != nil {
		return ErrWrite.MsgErr("unable to write "+tmp, err)
	}
	err := retry.Do(func() error {
		return os.Rename(tmp, path)
	},
		retry.Attempts(3),
		retry.Delay(50*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warn().Err(err).Uint("attempt", n+1).Msg("retrying config rename")
		}),
	)
	if err != nil {
		os.Remove(tmp)
		return ErrWrite.MsgErr("unable to replace "+path, err)
	}
	return nil
}

func fileMode(path string) fs.FileMode {
	if fi, err := os.Stat(path); err == nil {
		return fi.Mode().Perm()
	}
	return defaultFileMode
}
