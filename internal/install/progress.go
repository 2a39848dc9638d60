package install

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/xmit-co/xmit-npm/internal/messages"
)

// newProgressBar renders download progress on w. A negative size shows a spinner.
func newProgressBar(w io.Writer, size int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(messages.InstallProgressDescription),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}
