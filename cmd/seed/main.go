package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"filmoteca/internal/auth"
	"filmoteca/internal/config"
	"filmoteca/internal/db"
	"filmoteca/internal/model"
)

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Movie{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	movies := []model.Movie{
		{
			Title:       "El Gran Escape",
			Description: strPtr("Película clásica de acción"),
			Year:        1963,
			Genre:       strPtr("Acción"),
			Rating:      8.2,
		},
		{
			Title:       "Inception",
			Description: strPtr("Sueños dentro de sueños"),
			Year:        2010,
			Genre:       strPtr("Ciencia ficción"),
			Rating:      8.8,
		},
	}

	for _, movie := range movies {
		if err := seedMovie(ctx, gormDB, movie); err != nil {
			log.Fatalf("Failed to seed movie %q: %v", movie.Title, err)
		}
	}

	hasher := auth.NewPasswordHasher()

	users := []struct {
		name     string
		password string
		role     model.Role
	}{
		{"Admin", "password", model.RoleAdmin},
		{"User", "hashedpassword", model.RoleUser},
	}

	for _, u := range users {
		if err := seedUser(ctx, gormDB, hasher, u.name, u.password, u.role); err != nil {
			log.Fatalf("Failed to seed user %q: %v", u.name, err)
		}
	}

	log.Println("Seed completed successfully")
}

// seedMovie inserts the movie unless one with the same title already exists.
func seedMovie(ctx context.Context, gormDB *gorm.DB, movie model.Movie) error {
	var existing model.Movie
	err := gormDB.WithContext(ctx).Where("title = ?", movie.Title).First(&existing).Error
	if err == nil {
		log.Printf("Movie %q already present, skipping", movie.Title)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := gormDB.WithContext(ctx).Create(&movie).Error; err != nil {
		return err
	}
	log.Printf("Seeded movie %q (id=%d)", movie.Title, movie.ID)
	return nil
}

// seedUser inserts the user with a hashed password unless the name is taken.
func seedUser(ctx context.Context, gormDB *gorm.DB, hasher *auth.PasswordHasher, name, password string, role model.Role) error {
	var existing model.User
	err := gormDB.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		log.Printf("User %q already present, skipping", name)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	digest, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	user := model.User{Name: name, Password: digest, Role: role}
	if err := gormDB.WithContext(ctx).Create(&user).Error; err != nil {
		return err
	}
	log.Printf("Seeded user %q (id=%d, role=%s)", name, user.ID, role)
	return nil
}

func strPtr(s string) *string {
	return &s
}
