package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/clubhubdev/clubhub-backend/config"
	"github.com/clubhubdev/clubhub-backend/database"
	_ "github.com/clubhubdev/clubhub-backend/docs"
	"github.com/clubhubdev/clubhub-backend/internal/auditlog"
	"github.com/clubhubdev/clubhub-backend/internal/auth"
	"github.com/clubhubdev/clubhub-backend/internal/club"
	"github.com/clubhubdev/clubhub-backend/internal/clubrequest"
	"github.com/clubhubdev/clubhub-backend/internal/event"
	"github.com/clubhubdev/clubhub-backend/internal/notification"
	"github.com/clubhubdev/clubhub-backend/internal/registration"
	"github.com/clubhubdev/clubhub-backend/routes"
	"github.com/clubhubdev/clubhub-backend/utils"
)

// @title           ClubHub API
// @version         1.0
// @description     Campus club and event management backend
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// ===========================
	// 🗄️ Database
	// ===========================
	db := database.Connect(cfg)
	autoMigrate(db)
	seedUniversityAdmin(db)

	// ===========================
	// 🔑 Redis (reset tokens)
	// ===========================
	if err := utils.InitRedis(); err != nil {
		log.Printf("⚠️ Redis unavailable, password resets disabled: %v", err)
	}

	// ===========================
	// 📨 Kafka pipeline
	// ===========================
	var publisher registration.ConfirmationPublisher
	if cfg.KafkaBrokers != "" {
		producer := notification.NewProducer(cfg)
		defer producer.Close()
		publisher = producer

		emailer := notification.NewEmailer(cfg)
		consumer := notification.NewConsumer(cfg, emailer)
		defer consumer.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go consumer.Start(ctx)
	} else {
		log.Println("⚠️ KAFKA_BROKERS not set, registration emails disabled")
	}

	// ===========================
	// 🌐 HTTP server
	// ===========================
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
	}))

	ensureUploadDirs()
	r.Static("/api/v1/posters", filepath.Join(config.UploadPath, "posters"))
	r.Static("/api/v1/profile/images", filepath.Join(config.UploadPath, "profile_images"))

	routes.SetupRoutes(r, db, cfg, publisher)

	log.Printf("🚀 ClubHub backend listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&auth.User{},
		&club.Club{},
		&clubrequest.ClubRequest{},
		&event.Event{},
		&event.EventInsight{},
		&registration.Registration{},
		&auditlog.AuditLog{},
	)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}

// seedUniversityAdmin provisions the admin account from env on first boot
func seedUniversityAdmin(db *gorm.DB) {
	email := os.Getenv("UNIVERSITY_ADMIN_EMAIL")
	password := os.Getenv("UNIVERSITY_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	db.Model(&auth.User{}).Where("role = ?", string(auth.RoleUniversity)).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("⚠️ failed to hash admin password: %v", err)
		return
	}

	admin := auth.User{
		Name:     "University Admin",
		Email:    email,
		Password: string(hashed),
		Role:     auth.RoleUniversity,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("⚠️ failed to seed university admin: %v", err)
		return
	}
	log.Printf("✅ seeded university admin %s", email)
}

func ensureUploadDirs() {
	for _, dir := range []string{"posters", "qrcodes", "profile_images"} {
		path := filepath.Join(config.UploadPath, dir)
		if err := os.MkdirAll(path, 0o755); err != nil {
			log.Fatalf("failed to create upload dir %s: %v", path, err)
		}
	}
}
