// Package sessionstore persists the CLI session in a local JSON file.
package sessionstore

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/educamais/educamais/core/session"
)

const (
	keyTeacherID   = "professor_id"
	keyTeacherName = "professor_nome"
)

// FileStore keeps the session at path, readable by its owner only.
type FileStore struct {
	path string
}

var _ session.Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(fs.path)
	v.SetConfigType("json")
	return v
}

func (fs *FileStore) Set(s session.Session) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return errors.Wrap(err, "creating session dir")
	}
	v := fs.newViper()
	v.Set(keyTeacherID, s.TeacherID)
	v.Set(keyTeacherName, s.TeacherName)
	if err := v.WriteConfigAs(fs.path); err != nil {
		return errors.Wrap(err, "writing session")
	}
	return errors.Wrap(os.Chmod(fs.path, 0o600), "securing session file")
}

func (fs *FileStore) Get() (session.Session, error) {
	v := fs.newViper()
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return session.Session{}, session.ErrNoSession
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return session.Session{}, session.ErrNoSession
		}
		return session.Session{}, errors.Wrap(err, "reading session")
	}
	s := session.Session{
		TeacherID:   v.GetInt(keyTeacherID),
		TeacherName: v.GetString(keyTeacherName),
	}
	if s.IsZero() {
		return session.Session{}, session.ErrNoSession
	}
	return s, nil
}

func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session")
	}
	return nil
}
