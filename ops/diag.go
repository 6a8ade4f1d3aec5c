package ops

import "github.com/sqfvm-go/sqfvm/diag"

// sinkMessage wraps host-facing operator output (e.g. "hint") as an Info
// diagnostic with no source location — these calls don't have a natural
// originating instruction location available to the callback, unlike
// engine-raised errors which carry the current frame's instruction Loc.
func sinkMessage(payload string) diag.Message {
	return diag.Message{Severity: diag.Info, Payload: payload}
}

// sinkMessageAt wraps output at an explicit severity, for operators whose
// real-game counterpart targets a destination other than the player's UI
// (diag_log goes to the RPT log, not the screen).
func sinkMessageAt(sev diag.Severity, payload string) diag.Message {
	return diag.Message{Severity: sev, Payload: payload}
}
