// internal/app/system/auth/flash.go
package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Flash kinds rendered by the layout.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Kind    string
	Message string
}

// AddFlash queues a message for the next page render.
func (sm *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, kind, msg string) {
	sess, _ := sm.GetSession(r)
	sess.AddFlash(kind+"|"+msg)
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("save flash failed", zap.Error(err))
	}
}

// Flashes pops all queued messages. The session is saved so each message is
// shown once; call before anything is written to w.
func (sm *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess, err := sm.GetSession(r)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("save session after flashes failed", zap.Error(err))
	}

	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		kind, msg, found := strings.Cut(s, "|")
		if !found {
			kind, msg = FlashSuccess, s
		}
		out = append(out, Flash{Kind: kind, Message: msg})
	}
	return out
}
