package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/coverdesk/api-operations/internal/activity"
	"github.com/coverdesk/api-operations/internal/auth"
	"github.com/coverdesk/api-operations/internal/benefit"
	"github.com/coverdesk/api-operations/internal/cache"
	"github.com/coverdesk/api-operations/internal/claim"
	"github.com/coverdesk/api-operations/internal/commission"
	"github.com/coverdesk/api-operations/internal/company"
	"github.com/coverdesk/api-operations/internal/country"
	"github.com/coverdesk/api-operations/internal/customer"
	"github.com/coverdesk/api-operations/internal/database"
	"github.com/coverdesk/api-operations/internal/deal"
	"github.com/coverdesk/api-operations/internal/diagnostics"
	"github.com/coverdesk/api-operations/internal/employee"
	"github.com/coverdesk/api-operations/internal/notify"
	"github.com/coverdesk/api-operations/internal/policy"
	"github.com/coverdesk/api-operations/internal/profile"
	"github.com/coverdesk/api-operations/internal/provider"
	"github.com/coverdesk/api-operations/internal/quote"
	"github.com/coverdesk/api-operations/internal/renewal"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func newLogger() *zap.Logger {
	if os.Getenv("LOG_FORMAT") == "console" {
		log, _ := zap.NewDevelopment()
		return log
	}
	log, _ := zap.NewProduction()
	return log
}

func newRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

func main() {
	_ = godotenv.Load()

	log := newLogger()
	defer log.Sync()

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set")
	}

	store, err := database.Open()
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	migrator := store.App
	if store.HasServiceRole() {
		migrator = store.Service
	}
	if err := migrator.AutoMigrate(
		&company.Company{},
		&customer.Customer{},
		&employee.Employee{},
		&quote.Quote{},
		&policy.Policy{},
		&claim.Claim{},
		&deal.Deal{},
		&commission.Commission{},
		&commission.Installment{},
		&renewal.Renewal{},
		&provider.Provider{},
		&country.Country{},
		&benefit.Benefit{},
		&profile.Profile{},
		&profile.PasswordReset{},
		&activity.Activity{},
	); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	listCache := cache.New(newRedis(), 5*time.Minute, log)
	notifier := notify.New(log)

	companyHandler := company.NewHandler(store.App, listCache, notifier)
	customerHandler := customer.NewHandler(store.App)
	employeeHandler := employee.NewHandler(store.App, listCache)
	quoteHandler := quote.NewHandler(store.App, listCache)
	policyHandler := policy.NewHandler(store.App, listCache)
	claimHandler := claim.NewHandler(store.App)
	dealHandler := deal.NewHandler(store.App)
	commissionHandler := commission.NewHandler(store.App)
	renewalHandler := renewal.NewHandler(store.App)
	providerHandler := provider.NewHandler(store.App)
	countryHandler := country.NewHandler(store.App)
	benefitHandler := benefit.NewHandler(store.App)
	activityHandler := activity.NewHandler(store.App)
	profileHandler := profile.NewHandler(store, notifier, log)
	diagHandler := diagnostics.NewHandler(store)

	r := mux.NewRouter()

	r.HandleFunc("/auth/login", profileHandler.Login).Methods("POST")
	r.HandleFunc("/auth/signup", profileHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/reset", profileHandler.RequestReset).Methods("POST")
	r.HandleFunc("/auth/reset/confirm", profileHandler.ConfirmReset).Methods("POST")

	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.Middleware)

	api.HandleFunc("/auth/me", profileHandler.Me).Methods("GET")

	api.HandleFunc("/companies", companyHandler.List).Methods("GET")
	api.HandleFunc("/companies", companyHandler.Create).Methods("POST")
	api.HandleFunc("/companies/{id}", companyHandler.GetByID).Methods("GET")
	api.HandleFunc("/companies/{id}", companyHandler.Update).Methods("PUT")
	api.HandleFunc("/companies/{id}/employees", employeeHandler.ListByCompany).Methods("GET")

	api.HandleFunc("/customers", customerHandler.List).Methods("GET")
	api.HandleFunc("/customers", customerHandler.Create).Methods("POST")
	api.HandleFunc("/customers/{id}", customerHandler.GetByID).Methods("GET")
	api.HandleFunc("/customers/{id}", customerHandler.Update).Methods("PUT")
	api.HandleFunc("/customers/{id}", customerHandler.Delete).Methods("DELETE")

	api.HandleFunc("/employees", employeeHandler.List).Methods("GET")
	api.HandleFunc("/employees", employeeHandler.Create).Methods("POST")
	api.HandleFunc("/employees/{id}", employeeHandler.GetByID).Methods("GET")
	api.HandleFunc("/employees/{id}", employeeHandler.Update).Methods("PUT")
	api.HandleFunc("/employees/{id}", employeeHandler.Delete).Methods("DELETE")

	api.HandleFunc("/quotes", quoteHandler.List).Methods("GET")
	api.HandleFunc("/quotes", quoteHandler.Create).Methods("POST")
	api.HandleFunc("/quotes/{id}", quoteHandler.GetByID).Methods("GET")
	api.HandleFunc("/quotes/{id}", quoteHandler.Update).Methods("PUT")
	api.HandleFunc("/quotes/{id}/status", quoteHandler.UpdateStatus).Methods("PATCH")

	api.HandleFunc("/policies", policyHandler.List).Methods("GET")
	api.HandleFunc("/policies", policyHandler.Create).Methods("POST")
	api.HandleFunc("/policies/{id}", policyHandler.GetByID).Methods("GET")
	api.HandleFunc("/policies/{id}", policyHandler.Update).Methods("PUT")
	api.HandleFunc("/policies/{id}/claims", claimHandler.ListByPolicy).Methods("GET")

	api.HandleFunc("/claims", claimHandler.List).Methods("GET")
	api.HandleFunc("/claims", claimHandler.Create).Methods("POST")
	api.HandleFunc("/claims/{id}", claimHandler.GetByID).Methods("GET")
	api.HandleFunc("/claims/{id}", claimHandler.Update).Methods("PUT")

	api.HandleFunc("/deals", dealHandler.List).Methods("GET")
	api.HandleFunc("/deals", dealHandler.Create).Methods("POST")
	api.HandleFunc("/deals/{id}", dealHandler.GetByID).Methods("GET")
	api.HandleFunc("/deals/{id}", dealHandler.Update).Methods("PUT")

	api.HandleFunc("/commissions", commissionHandler.List).Methods("GET")
	api.HandleFunc("/commissions", commissionHandler.Create).Methods("POST")
	api.HandleFunc("/commissions/{id}", commissionHandler.GetByID).Methods("GET")
	api.HandleFunc("/commissions/{id}/status", commissionHandler.UpdateStatus).Methods("PATCH")
	api.HandleFunc("/commissions/installments/{installmentId}/pay", commissionHandler.PayInstallment).Methods("POST")

	api.HandleFunc("/renewals", renewalHandler.List).Methods("GET")
	api.HandleFunc("/renewals", renewalHandler.Create).Methods("POST")
	api.HandleFunc("/renewals/{id}", renewalHandler.GetByID).Methods("GET")
	api.HandleFunc("/renewals/{id}", renewalHandler.Update).Methods("PUT")

	api.HandleFunc("/providers", providerHandler.List).Methods("GET")
	api.HandleFunc("/providers/{id}", providerHandler.GetByID).Methods("GET")

	api.HandleFunc("/countries", countryHandler.List).Methods("GET")
	api.HandleFunc("/benefits", benefitHandler.List).Methods("GET")

	api.HandleFunc("/activities/{entity}/{id}", activityHandler.ListForEntity).Methods("GET")

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Middleware, auth.RequireAdmin)

	admin.HandleFunc("/users", profileHandler.List).Methods("GET")
	admin.HandleFunc("/users", profileHandler.CreateUser).Methods("POST")
	admin.HandleFunc("/users/fix-role", profileHandler.FixRole).Methods("POST")
	admin.HandleFunc("/users/{id}", profileHandler.GetByID).Methods("GET")
	admin.HandleFunc("/users/{id}", profileHandler.Update).Methods("PUT")
	admin.HandleFunc("/users/{id}", profileHandler.Delete).Methods("DELETE")

	admin.HandleFunc("/companies/{id}", companyHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/quotes/{id}", quoteHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/policies/{id}", policyHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/claims/{id}", claimHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/deals/{id}", dealHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/commissions/{id}", commissionHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/renewals/{id}", renewalHandler.Delete).Methods("DELETE")

	admin.HandleFunc("/providers", providerHandler.Create).Methods("POST")
	admin.HandleFunc("/providers/{id}", providerHandler.Update).Methods("PUT")
	admin.HandleFunc("/providers/{id}", providerHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/countries", countryHandler.Create).Methods("POST")
	admin.HandleFunc("/benefits", benefitHandler.Create).Methods("POST")
	admin.HandleFunc("/benefits/{id}", benefitHandler.Update).Methods("PUT")

	admin.HandleFunc("/diagnostics/tables", diagHandler.CheckTables).Methods("GET")
	admin.HandleFunc("/diagnostics/tables/sql", diagHandler.MissingTableSQL).Methods("GET")
	admin.HandleFunc("/diagnostics/ping", diagHandler.Ping).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(r)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Info("server listening", zap.String("addr", addr))
	fmt.Println("server running on " + addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
