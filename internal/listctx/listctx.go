// Package listctx tracks the list a client most recently browsed, as a
// session cookie. A task created without an explicit list is attributed to
// this list; any cross-list or date-bucketed task view invalidates it.
//
// Because the marker travels in the client's cookie jar it is scoped to one
// client by construction and carries no durability guarantee.
package listctx

import (
	"net/http"
	"strconv"
)

const cookieName = "listId"

// Set records listID as the client's selected list, replacing any prior
// selection. Session-scoped: no Max-Age, gone when the client session ends.
func Set(w http.ResponseWriter, listID int64) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    strconv.FormatInt(listID, 10),
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Get returns the selected list id, or false when no valid selection is
// present. A malformed cookie value reads as absent.
func Get(r *http.Request) (int64, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(c.Value, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Clear expires any recorded selection.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
