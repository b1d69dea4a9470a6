package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"eohealth-registry/internal/adapters/cache"
	"eohealth-registry/internal/adapters/files"
	mem "eohealth-registry/internal/adapters/storage/memory"
	pg "eohealth-registry/internal/adapters/storage/postgres"
	sqlitedb "eohealth-registry/internal/adapters/storage/sqlite"
	"eohealth-registry/internal/domain/artifacts"
	"eohealth-registry/internal/domain/bulkload"
	"eohealth-registry/internal/domain/children"
	"eohealth-registry/internal/domain/insights"
	"eohealth-registry/internal/domain/medical"
	"eohealth-registry/internal/middleware"
	"eohealth-registry/internal/platform/logger"
)

type Options struct {
	Log logger.Logger // nil => no-op (útil en tests)

	// Opcional: si viene, usa Postgres. Si no, prueba por env
	// (DB_DSN => postgres, SQLITE_PATH => sqlite, default in-memory).
	DB         *sql.DB
	SQLitePath string

	UploadDir string // default "uploads"
	FontsDir  string // default "fonts"
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.LangContext)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	childRepo, medRepo := buildRepos(opts, log)

	// Query/Cache facade: toda lectura de la UI pasa por acá; las
	// escrituras invalidan antes de devolver (read-your-writes en proceso).
	cachedChildren := cache.NewChildrenRepo(childRepo)
	cachedMedical := cache.NewMedicalRepo(medRepo)

	childrenSvc := children.NewService(cachedChildren)
	medicalSvc := medical.NewService(cachedMedical)
	insightsSvc := insights.NewService(childrenSvc, medicalSvc)
	loader := bulkload.NewLoader(childrenSvc)

	uploadDir := opts.UploadDir
	if uploadDir == "" {
		uploadDir = os.Getenv("UPLOAD_DIR")
	}
	fileStore, err := files.NewStore(uploadDir)
	if err != nil {
		// sin uploads seguimos igual: adjuntos y cache de certificados
		// quedan deshabilitados, el resto del sistema no se cae
		log.Warn("upload dir unavailable, attachments disabled", map[string]any{"err": err.Error()})
		fileStore = nil
	}

	fontsDir := opts.FontsDir
	if fontsDir == "" {
		fontsDir = os.Getenv("FONTS_DIR")
	}
	if fontsDir == "" {
		fontsDir = "fonts"
	}
	renderer := artifacts.NewRenderer(fontsDir)

	issueCert := func(c children.Child) error {
		render := func() ([]byte, error) { return renderer.Certificate(c) }
		if fileStore == nil {
			_, err := render()
			return err
		}
		_, err := fileStore.CertificateOnce(c.ID, render)
		return err
	}

	children.RegisterRoutes(r, childrenSvc, log, artifacts.RegistrationPayload, issueCert)

	var saver medical.AttachmentSaver
	if fileStore != nil {
		saver = fileStore
	}
	medical.RegisterRoutes(r, medicalSvc, log, saver)

	var certs artifacts.CertificateCache
	if fileStore != nil {
		certs = fileStore
	}
	artifacts.RegisterRoutes(r, childrenSvc, renderer, certs, log)

	bulkload.RegisterRoutes(r, loader, childrenSvc, medicalSvc, log)
	insights.RegisterRoutes(r, insightsSvc, log)

	return r
}

// buildRepos elige el backend. Cada backend abre su propia conexión acá
// y las operaciones son cortas y bloqueantes; no hay transacciones que
// crucen operaciones.
func buildRepos(opts Options, log logger.Logger) (children.Repository, medical.Repository) {
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				if err := pg.EnsureSchema(context.Background(), opened); err == nil {
					db = opened
				} else {
					log.Warn("postgres schema bootstrap failed", map[string]any{"err": err.Error()})
					_ = opened.Close()
				}
			} else {
				log.Warn("postgres unavailable", map[string]any{"err": err.Error()})
			}
		}
	}
	if db != nil {
		return pg.NewChildrenRepo(db), pg.NewMedicalRepo(db)
	}

	path := opts.SQLitePath
	if path == "" {
		path = os.Getenv("SQLITE_PATH")
	}
	if path != "" {
		sdb, err := sqlitedb.Open(path)
		if err == nil {
			return sqlitedb.NewChildrenRepo(sdb), sqlitedb.NewMedicalRepo(sdb)
		}
		log.Warn("sqlite unavailable, falling back to in-memory", map[string]any{
			"path": path,
			"err":  err.Error(),
		})
	}

	return mem.NewChildrenRepo(), mem.NewMedicalRepo()
}
