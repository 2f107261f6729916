package server

import (
	"context"
	"net/http"

	"pizzacost/internal/handlers"
	applog "pizzacost/internal/log"
)

type route struct {
	path      string
	handler   http.HandlerFunc
	protected bool
}

var routes = []route{
	{path: "/healthz", handler: handlers.Health},
	{path: "/login", handler: handlers.Login},
	{path: "/signup", handler: handlers.Signup},
	{path: "/logout", handler: handlers.Logout},
	{path: "/app", handler: handlers.Dashboard, protected: true},
	{path: "/app/", handler: handlers.Dashboard, protected: true},
	{path: "/app/recipes/", handler: handlers.RecipeWorkspace, protected: true},
	{path: "/app/recipes/table", handler: handlers.RecipeTable, protected: true},
	{path: "/app/recipes/new", handler: handlers.RecipeCreate, protected: true},
	{path: "/app/ingredients/table", handler: handlers.IngredientTable, protected: true},
	{path: "/app/ingredients/new", handler: handlers.IngredientCreate, protected: true},
	{path: "/app/ingredients/delete", handler: handlers.IngredientDelete, protected: true},
	{path: "/app/preferences/update", handler: handlers.UpdatePreferences, protected: true},
	{path: "/app/tools/import-prices", handler: handlers.ImportPrices, protected: true},
	{path: "/app/export/prices.xlsx", handler: handlers.ExportPrices, protected: true},
	// JSON endpoints answer 401 themselves instead of redirecting to /login.
	{path: "/app/api/ingredients", handler: handlers.IngredientResource},
	{path: "/app/api/ingredients/", handler: handlers.IngredientResource},
	{path: "/app/api/recipes", handler: handlers.RecipeResource},
	{path: "/app/api/recipes/", handler: handlers.RecipeResource},
	{path: "/app/api/quote", handler: handlers.Quote},
	{path: "/app/api/dashboard", handler: handlers.DashboardStats},
	{path: "/", handler: handlers.Home},
}

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	for _, rt := range routes {
		if rt.protected {
			mux.Handle(rt.path, handlers.RequireAuthentication(rt.handler))
		} else {
			mux.HandleFunc(rt.path, rt.handler)
		}
		applog.Debug(context.Background(), "route registered", "path", rt.path, "protected", rt.protected)
	}
	return mux
}
