package handlers

import "net/http"

// Home sends the bare root to the admin shell. The auth guard on /admin
// bounces anonymous visitors on to the login screen from there.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	redirectToApp(w, r)
}
