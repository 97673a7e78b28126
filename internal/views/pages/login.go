package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Login renders the full sign-in document.
func Login(message, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>Sign in · BarBoard</title><link rel=\"stylesheet\" href=\"/static/app.css\"></head><body class=\"min-h-screen bg-slate-950 text-slate-100\">"); err != nil {
			return err
		}
		if err := LoginPartial(message, email).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

// LoginPartial renders just the sign-in card, used when the form is swapped
// in place after a failed submission.
func LoginPartial(message, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<main id=\"login\" class=\"mx-auto flex min-h-screen max-w-md flex-col justify-center px-6\"><section class=\"rounded-xl border border-slate-800 bg-slate-900 p-8 shadow-lg\"><h1 class=\"text-xl font-semibold\">BarBoard Admin</h1><p class=\"mt-1 text-sm text-slate-400\">Sign in to manage venues, bookings, and recipes.</p>"); err != nil {
			return err
		}
		if message != "" {
			if _, err := fmt.Fprintf(w, "<p class=\"mt-4 rounded border border-amber-700 bg-amber-950 px-3 py-2 text-sm text-amber-200\" role=\"alert\">%s</p>", html.EscapeString(message)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "<form method=\"post\" action=\"/login\" class=\"mt-6 space-y-4\"><label class=\"block text-sm\">Email<input type=\"email\" name=\"email\" value=\"%s\" required class=\"mt-1 w-full rounded border border-slate-700 bg-slate-950 px-3 py-2\"></label><label class=\"block text-sm\">Password<input type=\"password\" name=\"password\" required class=\"mt-1 w-full rounded border border-slate-700 bg-slate-950 px-3 py-2\"></label><button type=\"submit\" class=\"w-full rounded bg-amber-600 px-3 py-2 font-medium text-slate-950\">Sign in</button></form></section></main>", html.EscapeString(email)); err != nil {
			return err
		}
		return nil
	})
}
