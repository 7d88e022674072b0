package main

import (
	"geonews/handlers"
	"geonews/utils"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load environment variables
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, continuing..")
		}
	}
	log.Println("environment: ", os.Getenv("APP_ENV"))

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		log.Fatal("API_URL is required")
	}

	redisDSN := os.Getenv("REDIS_URL")
	redisPool := utils.OpenRedisPool(redisDSN)
	defer redisPool.Close()

	creds := utils.NewCredentialStore(redisPool, 8*time.Hour)
	binder := utils.NewAuthBinder(creds)
	api := utils.NewAPIClient(apiURL, binder)
	bridge := utils.SessionBridge{}

	r := chi.NewRouter()
	r.Use(utils.Metrics)

	// File server for static files
	fileServer := http.FileServer(http.Dir("./ui/static/"))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	r.Handle("/metrics", promhttp.Handler())

	// Authentication
	r.Get("/auth", func(w http.ResponseWriter, r *http.Request) {
		handlers.LoginPageHandler(w, r, creds)
	})
	r.Post("/login-submit", func(w http.ResponseWriter, r *http.Request) {
		handlers.LoginHandler(w, r, creds, binder, api, bridge)
	})
	r.Get("/logout", func(w http.ResponseWriter, r *http.Request) {
		handlers.LogOutHandler(w, r, creds, binder, api, bridge)
	})

	// Session bridge
	r.HandleFunc("/api/session", func(w http.ResponseWriter, r *http.Request) {
		handlers.SessionHandler(w, r, bridge)
	})

	r.Get("/unauthorized", handlers.UnauthorizedHandler)

	// Map group: admins only
	r.Route("/map", func(r chi.Router) {
		r.Use(handlers.RequireRole("admin"))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			handlers.MapHandler(w, r, creds, api)
		})
		r.Get("/noticias", func(w http.ResponseWriter, r *http.Request) {
			handlers.NewsMapHandler(w, r, creds, api)
		})
	})

	// News admin group: admins and regular users
	r.Route("/novedades", func(r chi.Router) {
		r.Use(handlers.RequireRole("admin", "user"))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			handlers.NewsHandler(w, r, creds, api)
		})
		r.Post("/create", func(w http.ResponseWriter, r *http.Request) {
			handlers.CreateNewsHandler(w, r, api)
		})
		r.Post("/update/{id}", func(w http.ResponseWriter, r *http.Request) {
			handlers.UpdateNewsHandler(w, r, api)
		})
		r.Post("/delete/{id}", func(w http.ResponseWriter, r *http.Request) {
			handlers.DeleteNewsHandler(w, r, api)
		})
	})

	r.Get("/", handlers.RootHandler)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	// Start the server
	log.Println("Starting server on ", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
