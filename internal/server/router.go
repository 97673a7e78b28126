package server

import (
	"context"
	"net/http"

	"barboard/internal/handlers"
	applog "barboard/internal/log"
)

func newRouter(filesRoot string) http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	mux.HandleFunc("/healthz", handlers.Health)
	mux.HandleFunc("/login", handlers.Login)
	mux.HandleFunc("/logout", handlers.Logout)

	mux.Handle("/admin", handlers.RequireAuthentication(http.HandlerFunc(handlers.Dashboard)))
	mux.Handle("/admin/", handlers.RequireAuthentication(http.HandlerFunc(handlers.Dashboard)))

	resources := map[string]http.HandlerFunc{
		"/admin/api/ingredients":          handlers.IngredientResource,
		"/admin/api/ingredientcategories": handlers.IngredientCategoryResource,
		"/admin/api/units":                handlers.UnitResource,
		"/admin/api/unitinv":              handlers.UnitInvResource,
		"/admin/api/inventory":            handlers.InventoryResource,
		"/admin/api/appusers":             handlers.AppUserResource,
		"/admin/api/drinkdollars":         handlers.DrinkDollarResource,
		"/admin/api/bookings":             handlers.BookingResource,
		"/admin/api/venues":               handlers.VenueResource,
		"/admin/api/venuecategories":      handlers.VenueCategoryResource,
		"/admin/api/languages":            handlers.LanguageResource,
		"/admin/api/recommendedtags":      handlers.RecommendedTagResource,
		"/admin/api/recipes":              handlers.RecipeResource,
		"/admin/api/recipecategories":     handlers.RecipeCategoryResource,
		"/admin/api/tags":                 handlers.TagResource,
		"/admin/api/equipment":            handlers.EquipmentResource,
		"/admin/api/mealtypes":            handlers.MealTypeResource,
		"/admin/api/redeemitems":          handlers.RedeemItemResource,
		"/admin/api/banners":              handlers.BannerResource,
	}
	for path, handler := range resources {
		guarded := handlers.RequireAuthentication(handler)
		mux.Handle(path, guarded)
		mux.Handle(path+"/", guarded)
		applog.Debug(context.Background(), "route registered", "path", path, "protected", true)
	}

	if filesRoot != "" {
		mux.Handle("/files/", http.StripPrefix("/files/", http.FileServer(http.Dir(filesRoot))))
		applog.Debug(context.Background(), "route registered", "path", "/files/", "static", true)
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	mux.HandleFunc("/", handlers.Home)

	return mux
}
