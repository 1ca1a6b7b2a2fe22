package schema

import "fmt"

// NoticeLevel grades a non-fatal finding.
type NoticeLevel string

const (
	NoticeInfo NoticeLevel = "info"
	NoticeWarn NoticeLevel = "warn"
)

// Notice is a non-fatal finding produced while validating or
// auto-correcting: the rationale for a silent repair, or advice the
// caller should surface. Notices are returned alongside corrected
// structures, never raised.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Infof builds an informational notice.
func Infof(format string, args ...any) Notice {
	return Notice{Level: NoticeInfo, Message: fmt.Sprintf(format, args...)}
}

// Warnf builds a warning notice.
func Warnf(format string, args ...any) Notice {
	return Notice{Level: NoticeWarn, Message: fmt.Sprintf(format, args...)}
}

// Messages flattens notices to their message strings.
func Messages(notices []Notice) []string {
	if len(notices) == 0 {
		return nil
	}
	out := make([]string, len(notices))
	for i, notice := range notices {
		out[i] = notice.Message
	}
	return out
}
