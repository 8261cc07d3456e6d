package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"reservasalas/internal/api"
	"reservasalas/internal/auth"
	"reservasalas/internal/booking"
	"reservasalas/internal/cache"
	"reservasalas/internal/repository"
	"reservasalas/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		tz = "America/Santiago"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %v", tz, err)
	}

	// The availability cache is optional; without REDIS_ADDR every request
	// hits Postgres directly.
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
		log.Printf("Availability cache enabled (redis en %s)", addr)
	}
	availabilityCache := cache.NewAvailabilityCache(rdb, 2*time.Minute)

	roomRepo := repository.NewRoomRepository(db)
	resRepo := repository.NewReservationRepository(db)
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)

	notifier := service.NewNotifyService(loc)
	availabilitySvc := service.NewAvailabilityService(roomRepo, resRepo, availabilityCache, loc)
	reservationSvc := service.NewReservationService(resRepo, roomRepo, userRepo, notifier, availabilityCache, loc)
	authSvc := service.NewAuthService(userRepo)
	adminSvc := service.NewAdminService(roomRepo)
	jobSvc := service.NewJobService(jobRepo)

	bootstrapAdmin(authSvc)

	availabilityHandler := api.NewAvailabilityHandler(availabilitySvc)
	reservationHandler := api.NewReservationHandler(reservationSvc)
	authHandler := api.NewAuthHandler(authSvc)
	roomHandler := api.NewRoomHandler(adminSvc)

	r := mux.NewRouter()
	v1 := r.PathPrefix("/api/v1").Subrouter()

	// Public endpoints
	v1.HandleFunc("/availability", availabilityHandler.GetAvailability).Methods("GET")
	v1.HandleFunc("/rooms", roomHandler.ListRooms).Methods("GET")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	v1.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	// Endpoints for any logged-in user
	user := v1.NewRoute().Subrouter()
	user.Use(auth.RequireUser)
	user.HandleFunc("/users/me", authHandler.Me).Methods("GET")
	user.HandleFunc("/reservations", reservationHandler.CreateReservation).Methods("POST")
	user.HandleFunc("/reservations/my-reservations", reservationHandler.MyReservations).Methods("GET")
	user.HandleFunc("/reservations/{id}", reservationHandler.UpdateReservation).Methods("PUT")
	user.HandleFunc("/reservations/{id}", reservationHandler.CancelReservation).Methods("DELETE")

	// Administrator endpoints
	admin := v1.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/reservations/on-behalf", reservationHandler.CreateOnBehalf).Methods("POST")
	admin.HandleFunc("/room/{roomId}", reservationHandler.ListByRoom).Methods("GET")
	admin.HandleFunc("/rooms", roomHandler.CreateRoom).Methods("POST")
	admin.HandleFunc("/rooms/{id}", roomHandler.UpdateRoom).Methods("PATCH")
	admin.HandleFunc("/rooms/{id}", roomHandler.DeleteRoom).Methods("DELETE")

	c := cron.New()
	c.AddFunc("@every 10m", func() {
		if err := jobSvc.UpdateFinishedReservations(); err != nil {
			log.Printf("Error actualizando reservas finalizadas: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	origin := os.Getenv("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{origin}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, cors(r)))
}

// bootstrapAdmin creates the first administrator account from the
// environment. CreateUser is idempotent, so restarting is harmless.
func bootstrapAdmin(authSvc service.AuthService) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	nombre := os.Getenv("ADMIN_NAME")
	if nombre == "" {
		nombre = "Administración"
	}
	if err := authSvc.CreateUser(email, nombre, password, booking.RoleAdmin); err != nil {
		log.Printf("No se pudo crear el administrador inicial: %v", err)
	}
}
