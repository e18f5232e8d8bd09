package router

import (
	"database/sql"
	"net/http"
	"os"

	_ "github.com/ZecaRomero/beef-sync-2-sub006/docs"
	mem "github.com/ZecaRomero/beef-sync-2-sub006/internal/adapters/storage/memory"
	pg "github.com/ZecaRomero/beef-sync-2-sub006/internal/adapters/storage/postgres"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/domain/accessgrants"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/domain/animals"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/domain/events"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/domain/reproduction"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/middleware"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/platform/logger"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/ports/auth"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: feature flags por plan. Nil = todo habilitado.
	Capabilities capabilities.CapabilitiesResolver

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		animalRepo animals.Repository
		eventRepo  events.Repository
		grantsRepo accessgrants.Repository
		sources    reproduction.Sources
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to memory", map[string]any{
					"err": err.Error(),
				})
			}
		}
	}

	if db != nil {
		animalRepo = pg.NewAnimalsRepo(db)
		eventRepo = pg.NewEventsRepo(db)
		grantsRepo = pg.NewAccessGrantsRepo(db)
		sources = pg.NewSourcesRepo(db)
	} else {
		animalRepo = mem.NewAnimalRepo()
		memEvents := mem.NewEventRepo()
		eventRepo = memEvents
		grantsRepo = mem.NewAccessGrantsRepo()
		sources = mem.NewSources(memEvents)
	}

	// Services por módulo
	animalsSvc := animals.NewService(animalRepo)
	eventsSvc := events.NewService(eventRepo)
	grantsSvc := accessgrants.NewService(grantsRepo)
	reproSvc := reproduction.NewService(sources, log)

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc, grantsSvc)
	events.RegisterRoutes(r, eventsSvc, grantsSvc)
	accessgrants.RegisterRoutes(r, grantsSvc)
	reproduction.RegisterRoutes(r, reproSvc, grantsSvc, opts.Capabilities)

	return r
}
