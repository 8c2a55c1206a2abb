package teacher

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/educamais/educamais/core"
)

// Resource is the storage table of teachers.
const Resource = "professores"

type Teacher struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash []byte `json:"-"`
}

func (t *Teacher) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	t.PasswordHash = hash
	return nil
}

func (t *Teacher) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(t.PasswordHash, []byte(pwd))
}

// record is a row of the professores table.
type record struct {
	ID    int    `db:"id" json:"id"`
	Nome  string `db:"nome" json:"nome"`
	Email string `db:"email" json:"email"`
	Senha string `db:"senha" json:"senha"`
}

func (r record) toTeacher() Teacher {
	return Teacher{
		ID:           r.ID,
		Name:         r.Nome,
		Email:        r.Email,
		PasswordHash: []byte(r.Senha),
	}
}

// NewTeacher contains information needed to register a new Teacher.
type NewTeacher struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (nt *NewTeacher) Clean() {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
}

// Credentials are what a teacher logs in with.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Clean() {
	c.Email = core.CleanString(c.Email, true /* lower */)
}

// ResetPassword sets a new password for the teacher identified by Email.
type ResetPassword struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`

	// used by the password policy
	name string
}
