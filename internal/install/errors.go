package install

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/xmit-co/xmit-npm/internal/messages"
)

// ErrBinaryNotInArchive reports an archive without the expected binary at its root.
var ErrBinaryNotInArchive = errors.New(messages.InstallBinaryNotInArchive)

// Install phases reported in Error.Op.
const (
	OpPrepare  = "prepare"
	OpDownload = "download"
	OpExtract  = "extract"
	OpFinalize = "finalize"
)

// Error describes a failed install phase.
type Error struct {
	Op  string
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf(messages.InstallErrorFmt, e.Op, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// RateLimitError reports that the release host refused the download because
// the caller's rate limit is exhausted. Supplying an Authorization header
// through FetchOptions usually lifts it.
type RateLimitError struct {
	StatusCode int
	Status     string
	Remaining  *int
}

func (e *RateLimitError) Error() string {
	remaining := "unknown"
	if e.Remaining != nil {
		remaining = strconv.Itoa(*e.Remaining)
	}
	return fmt.Sprintf(messages.InstallRateLimitedFmt, e.Status, remaining)
}
