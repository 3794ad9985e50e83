// Package assistant wires authentication, access control and session
// lifecycle around a conversational responder and exposes the result
// over HTTP.
//
// The request path is fixed: extract and sanitize the inputs, resolve
// one identity verdict, record it in the audit log, apply the session
// lifecycle, then either serve an admin command, a gated hint, or a
// responder answer framed by the composer. Voice requests additionally
// run the transcript cleaner on the way in and the TTS sanitizer on the
// way out.
//
// Router mounts the surface: POST /chat for JSON clients, POST
// /siri-chat for voice shortcuts (plain {"speak": ...} payloads), GET
// /healthz, and the master-only GET /admin/status and /admin/logs.
package assistant
