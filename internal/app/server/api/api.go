// Package api assembles the HTTP surface:
//
//	GET    /health
//	GET    /users/{api}
//	GET    /user/{api}/{id}       POST /user/{api}
//	PUT    /user/{api}/{id}       DELETE /user/{api}/{id}
//	POST   /login/{api}
//	GET    /categories/{api}      GET /categories/{api}/{userId}
//	GET    /category/{api}/{id}   POST /category/{api}/{userId}
//	PUT    /category/{api}/{id}   DELETE /category/{api}/{id}
//	GET    /times/{api}           GET /times/{api}/{userId}
//	GET    /time/{api}/{id}       POST /time/{api}/{userId}
//	PUT    /time/{api}/{id}       DELETE /time/{api}/{id}
//
// Every route but /health is gated by the key in the {api} segment.
package api

import (
	"path"
	"reflect"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/exp/slog"

	categoryAPI "timetrack/internal/app/server/api/http/category"
	healthAPI "timetrack/internal/app/server/api/http/health"
	"timetrack/internal/app/server/api/http/middleware"
	"timetrack/internal/app/server/api/http/middleware/apikey"
	"timetrack/internal/app/server/api/http/middleware/logger"
	timelogAPI "timetrack/internal/app/server/api/http/timelog"
	userAPI "timetrack/internal/app/server/api/http/user"
	"timetrack/internal/domain/category"
	"timetrack/internal/domain/timelog"
	"timetrack/internal/domain/user"
)

// Repositories is the storage the API runs on, postgres or in-memory.
type Repositories struct {
	Users      user.Repository
	Categories category.Repository
	Times      timelog.Repository
	// Store answers the health probe. Nil reports healthy.
	Store healthAPI.Pinger
}

type Handlers struct {
	Health   *healthAPI.Handler
	User     *userAPI.Handler
	Category *categoryAPI.Handler
	Timelog  *timelogAPI.Handler
}

func New(repos Repositories, gate apikey.Authorizer, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.StripSlashes)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.AllowAll().Handler)

	config := huma.DefaultConfig("Timetrack API", "1.0.0")
	config.Info.Description = "Users, categories and logged time."
	config.Components.Schemas = huma.NewMapRegistry("#/components/schemas/", schemaNamer)

	API := humachi.New(mux, config)

	h := handlers(repos, gate, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Category.SetupRoutes(API)
	h.Timelog.SetupRoutes(API)

	return mux
}

func handlers(repos Repositories, gate apikey.Authorizer, log *slog.Logger) *Handlers {
	keyMW := apikey.New(gate, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(repos.Store, log, middlewares.GetAllAndClear())

	userService := user.NewService(repos.Users, user.NewValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(keyMW.Middleware())
	userHandler := userAPI.NewHandler(userService, log, middlewares.GetAllAndClear())

	categoryService := category.NewService(repos.Categories, repos.Users, log)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(keyMW.Middleware())
	categoryHandler := categoryAPI.NewHandler(categoryService, log, middlewares.GetAllAndClear())

	timelogService := timelog.NewService(repos.Times, repos.Users, repos.Categories, log)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(keyMW.Middleware())
	timelogHandler := timelogAPI.NewHandler(timelogService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:   healthHandler,
		User:     userHandler,
		Category: categoryHandler,
		Timelog:  timelogHandler,
	}
}

// humaPkg is where huma's own models, such as ErrorModel, live.
var humaPkg = reflect.TypeOf(huma.ErrorModel{}).PkgPath()

// schemaNamer prefixes schema names with the declaring package, so
// user.CreateRequest and category.CreateRequest become UserCreateRequest
// and CategoryCreateRequest instead of colliding.
func schemaNamer(t reflect.Type, hint string) string {
	name := huma.DefaultSchemaNamer(t, hint)

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" || t.PkgPath() == humaPkg {
		return name
	}

	base := path.Base(t.PkgPath())
	prefix := strings.ToUpper(base[:1]) + base[1:]
	if name == prefix {
		return name
	}
	return prefix + name
}
