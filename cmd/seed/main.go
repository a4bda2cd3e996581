package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"brandmarket/internal/config"
	"brandmarket/internal/database"
	"brandmarket/internal/domain"
	"brandmarket/internal/repository"

	"github.com/joho/godotenv"
)

// Seeds an admin account, the base categories and a pair of demo brands so a
// fresh database is browsable right away. Safe to re-run: existing rows are
// skipped by email or name.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	brands := repository.NewBrandRepository(db)
	products := repository.NewProductRepository(db)
	categories := repository.NewCategoryRepository(db)

	seedAdmin(ctx, users)
	seedCategories(ctx, categories)
	seedDemoBrand(ctx, users, brands, products,
		"leila@elmida.tn", "Leila", "+21655100200",
		"El Mida", "Handmade fouta towels and linen from Cap Bon.",
		[]demoProduct{
			{"Classic Fouta", "Flat-woven cotton fouta, 100x200cm.", 45, 1},
			{"Linen Kaftan", "Summer kaftan in washed linen.", 180, 1},
		})
	seedDemoBrand(ctx, users, brands, products,
		"youssef@dar-leather.tn", "Youssef", "+21698300400",
		"Dar Leather", "Vegetable-tanned leather goods from the Tunis medina.",
		[]demoProduct{
			{"Balgha Slippers", "Traditional leather slippers, hand stitched.", 95, 2},
			{"Messenger Bag", "Full-grain leather bag with brass fittings.", 320, 2},
		})

	log.Println("seed completed")
}

func seedAdmin(ctx context.Context, users *repository.UserRepository) {
	const email = "admin@brandmarket.tn"
	if exists, _ := users.ExistsByEmail(ctx, email); exists {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt failed:", err)
	}
	admin := domain.NewAdmin(email, string(hash), "Administrator")
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal("seed admin failed:", err)
	}
	log.Printf("seeded admin email=%s", email)
}

func seedCategories(ctx context.Context, categories *repository.CategoryRepository) {
	base := []domain.Category{
		{Name: "Traditional Wear", Slug: "traditional-wear"},
		{Name: "Leather Goods", Slug: "leather-goods"},
		{Name: "Jewelry", Slug: "jewelry"},
		{Name: "Home Textiles", Slug: "home-textiles"},
		{Name: "Streetwear", Slug: "streetwear"},
	}
	for _, c := range base {
		if exists, _ := categories.ExistsByName(ctx, c.Name); exists {
			continue
		}
		cat := c
		if err := categories.Create(ctx, &cat); err != nil {
			log.Fatal("seed category failed:", err)
		}
	}
	log.Printf("seeded %d categories", len(base))
}

type demoProduct struct {
	Name        string
	Description string
	Price       float64
	CategoryID  int64
}

func seedDemoBrand(
	ctx context.Context,
	users *repository.UserRepository,
	brands *repository.BrandRepository,
	products *repository.ProductRepository,
	email, ownerName, phone, brandName, description string,
	items []demoProduct,
) {
	if exists, _ := users.ExistsByEmail(ctx, email); exists {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("owner12345"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt failed:", err)
	}

	owner := domain.NewBrandOwner(email, string(hash), ownerName, phone)
	owner.EmailVerified = true
	owner.OwnerStatus = domain.OwnerApproved
	now := time.Now()
	owner.ApprovedAt = &now
	if err := users.Create(ctx, owner); err != nil {
		log.Fatal("seed owner failed:", err)
	}

	brand := &domain.Brand{
		OwnerID:     owner.ID,
		Name:        brandName,
		Description: description,
		Status:      domain.BrandApproved,
	}
	if err := brands.Create(ctx, brand); err != nil {
		log.Fatal("seed brand failed:", err)
	}

	for _, item := range items {
		categoryID := item.CategoryID
		p := &domain.Product{
			BrandID:     brand.ID,
			CategoryID:  &categoryID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			IsActive:    true,
		}
		if err := products.Create(ctx, p); err != nil {
			log.Fatal("seed product failed:", err)
		}
	}
	log.Printf("seeded brand name=%q products=%d", brandName, len(items))
}
