package note

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// MaxTitleLength is the longest title, in runes, a note may carry.
const MaxTitleLength = 256

// Note is a single to-do item.
type Note struct {
	ID         uuid.UUID `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	IsComplete bool      `json:"is_complete" yaml:"is_complete"`
	DueDate    time.Time `json:"due_date" yaml:"due_date"`
	Note       *string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// New creates an incomplete note with a fresh id. Title and body are trimmed;
// an empty body is stored as no body at all.
func New(title, body string, due time.Time) (Note, error) {
	n := Note{
		ID:      uuid.New(),
		Title:   strings.TrimSpace(title),
		DueDate: due,
	}
	if body = strings.TrimSpace(body); body != "" {
		n.Note = &body
	}
	if err := n.Validate(); err != nil {
		return Note{}, err
	}
	return n, nil
}

// Validate checks the note against the domain rules.
func (n Note) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.ID, validation.By(notNilID)),
		validation.Field(&n.Title, validation.By(notBlank), validation.By(maxRunes(MaxTitleLength))),
		validation.Field(&n.DueDate, validation.Required),
	)
}

// Equal reports whether both notes share the same identity.
func (n Note) Equal(other Note) bool {
	return n.ID == other.ID
}

// Body returns the free text or "" when there is none.
func (n Note) Body() string {
	if n.Note == nil {
		return ""
	}
	return *n.Note
}

// WithComplete returns a copy of n with the completion flag set to done.
func (n Note) WithComplete(done bool) Note {
	n.IsComplete = done
	return n
}

// Clone returns a deep copy of n.
func (n Note) Clone() Note {
	if n.Note != nil {
		body := *n.Note
		n.Note = &body
	}
	return n
}

// String returns the title, mostly for logs.
func (n Note) String() string {
	return n.Title
}

func notNilID(value any) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return errors.New("cannot be blank")
	}
	return nil
}

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

func maxRunes(limit int) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if utf8.RuneCountInString(s) > limit {
			return errors.New("is too long")
		}
		return nil
	}
}
