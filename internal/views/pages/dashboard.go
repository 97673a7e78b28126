package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Section is one management area linked from the dashboard shell.
type Section struct {
	Title       string
	Description string
	Path        string
}

// DashboardSections lists every admin area in sidebar order.
func DashboardSections() []Section {
	return []Section{
		{Title: "Ingredients", Description: "Catalogue, categories, and units.", Path: "/admin/api/ingredients"},
		{Title: "Inventory", Description: "Stored batches and expiry tracking.", Path: "/admin/api/inventory"},
		{Title: "App Users", Description: "Profiles and role assignments.", Path: "/admin/api/appusers"},
		{Title: "Drink Dollars", Description: "Coin balances and transaction history.", Path: "/admin/api/drinkdollars"},
		{Title: "Bookings", Description: "Reservations and redemptions.", Path: "/admin/api/bookings"},
		{Title: "Venues", Description: "Venues, damages, menus, and galleries.", Path: "/admin/api/venues"},
		{Title: "Recipes", Description: "Recipes, steps, tags, and equipment.", Path: "/admin/api/recipes"},
		{Title: "Redeem Items", Description: "Rewards redeemable with drink dollars.", Path: "/admin/api/redeemitems"},
		{Title: "Banners", Description: "Home screen promotions.", Path: "/admin/api/banners"},
	}
}

// Dashboard renders the admin shell with links into each management area.
func Dashboard(userName string, sections []Section) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>BarBoard Admin</title><link rel=\"stylesheet\" href=\"/static/app.css\"></head><body class=\"min-h-screen bg-slate-950 text-slate-100\"><div class=\"mx-auto max-w-5xl px-6 py-10\">"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<header class=\"flex items-center justify-between\"><div><h1 class=\"text-2xl font-semibold\">BarBoard Admin</h1><p class=\"mt-1 text-sm text-slate-400\">Signed in as %s</p></div><form method=\"post\" action=\"/logout\"><button type=\"submit\" class=\"rounded border border-slate-700 px-3 py-2 text-sm\">Sign out</button></form></header>", html.EscapeString(DefaultDash(userName))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<section class=\"mt-8 grid gap-4 sm:grid-cols-2 lg:grid-cols-3\">"); err != nil {
			return err
		}
		for _, section := range sections {
			if _, err := fmt.Fprintf(w, "<a href=\"%s\" class=\"rounded-xl border border-slate-800 bg-slate-900 p-5 shadow hover:border-amber-700\"><h2 class=\"font-medium\">%s</h2><p class=\"mt-1 text-sm text-slate-400\">%s</p></a>",
				html.EscapeString(section.Path), html.EscapeString(section.Title), html.EscapeString(section.Description)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</section></div></body></html>")
		return err
	})
}
