package importer

import (
	"errors"
	"io"

	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

// Profile names a CSV layout the importer understands.
type Profile string

const (
	ProfileSpendwise Profile = "spendwise"
	ProfileCGD       Profile = "cgd"
)

var (
	ErrUnknownProfile = errors.New("unknown import profile")
	ErrParse          = errors.New("unreadable import file")
)

type Parser interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
