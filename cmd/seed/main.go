package main

import (
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mindspark-labs/localpages/app/models"
	"github.com/mindspark-labs/localpages/internal/pkg/database"
	"github.com/mindspark-labs/localpages/internal/pkg/env"
)

// Seeds the database with the directory's launch data: categories, the
// platform super admin, and a handful of demo listings. Safe to re-run;
// every insert is keyed on a unique column.
func main() {
	env.SetupEnvFile()
	database.SetupDatabase()
	db := database.GetDB()

	seedCategories(db)
	admin := seedAdmin(db)
	orgs := seedOrganizations(db)
	seedApplication(db)
	seedBlogPost(db, admin, orgs)
	seedSettings(db)

	log.Println("Seed complete")
}

func floatPtr(v float64) *float64 { return &v }

func seedCategories(db *gorm.DB) {
	categories := []models.Category{
		{Name: "Restaurants & Dining", Slug: "restaurants", Icon: "utensils", SortOrder: 1},
		{Name: "Home Services", Slug: "home-services", Icon: "home", SortOrder: 2},
		{Name: "Health & Wellness", Slug: "health-wellness", Icon: "heart", SortOrder: 3},
		{Name: "Automotive", Slug: "automotive", Icon: "car", SortOrder: 4},
		{Name: "Professional Services", Slug: "professional-services", Icon: "briefcase", SortOrder: 5},
		{Name: "Beauty & Spas", Slug: "beauty-spas", Icon: "sparkles", SortOrder: 6},
		{Name: "Fitness & Training", Slug: "fitness", Icon: "dumbbell", SortOrder: 7},
		{Name: "Retail & Shopping", Slug: "retail-shopping", Icon: "shopping-bag", SortOrder: 8},
		{Name: "Real Estate", Slug: "real-estate", Icon: "building", SortOrder: 9},
		{Name: "Education & Tutoring", Slug: "education", Icon: "graduation-cap", SortOrder: 10},
	}
	for i := range categories {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&categories[i]).Error; err != nil {
			log.Fatalf("seed category %s: %v", categories[i].Slug, err)
		}
	}
	log.Printf("Seeded %d categories", len(categories))
}

func seedAdmin(db *gorm.DB) *models.User {
	password, err := models.HashPassword(env.GetEnv("SEED_ADMIN_PASSWORD", "Admin123!@#"))
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	now := time.Now()
	admin := models.User{
		Name:            "Platform Admin",
		Email:           "admin@mindspark.ai",
		Password:        password,
		Role:            models.RoleSuperAdmin,
		EmailVerifiedAt: &now,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&admin).Error; err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	db.Where("email = ?", admin.Email).First(&admin)
	return &admin
}

type demoOrg struct {
	org          models.Organization
	ownerName    string
	ownerEmail   string
	categorySlug string
}

func seedOrganizations(db *gorm.DB) map[string]*models.Organization {
	now := time.Now()
	demos := []demoOrg{
		{
			org: models.Organization{
				Name:             "Bravo's Italian Kitchen",
				Slug:             "bravos-italian-kitchen",
				Description:      "Family-owned Italian restaurant serving authentic handmade pasta, wood-fired pizzas, and imported wines since 1998.",
				ShortDescription: "Authentic Italian dining with handmade pasta and wood-fired pizzas since 1998.",
				Phone:            "(555) 123-4567",
				Email:            "hello@bravositaliankitchen.com",
				Website:          "https://bravositaliankitchen.com",
				Address:          "142 Main Street",
				City:             "Austin",
				State:            "TX",
				Zip:              "78701",
				Latitude:         floatPtr(30.2672),
				Longitude:        floatPtr(-97.7431),
				Status:           models.OrgStatusActive,
				Featured:         true,
				FeaturedOrder:    1,
				SubscriptionTier: models.TierPremium,
				ApprovedAt:       &now,
				OpenHours:        models.JSON(`{"monday":{"open":"11:00","close":"22:00"},"saturday":{"open":"10:00","close":"23:00"},"sunday":{"open":"10:00","close":"21:00"}}`),
				SocialLinks:      models.JSON(`{"facebook":"https://facebook.com/bravositalian","instagram":"https://instagram.com/bravositalian"}`),
			},
			ownerName:    "Marco Bravo",
			ownerEmail:   "owner@bravositaliankitchen.com",
			categorySlug: "restaurants",
		},
		{
			org: models.Organization{
				Name:             "Summit Dental Care",
				Slug:             "summit-dental-care",
				Description:      "Modern dental practice offering comprehensive oral healthcare including cosmetic dentistry, orthodontics, and emergency care.",
				ShortDescription: "Comprehensive dental care with cosmetic, orthodontic, and emergency services.",
				Phone:            "(555) 987-6543",
				Email:            "info@summitdentalcare.com",
				Website:          "https://summitdentalcare.com",
				Address:          "500 Congress Ave, Suite 200",
				City:             "Austin",
				State:            "TX",
				Zip:              "78701",
				Status:           models.OrgStatusActive,
				Featured:         true,
				FeaturedOrder:    2,
				SubscriptionTier: models.TierElite,
				ApprovedAt:       &now,
			},
			ownerName:    "Dana Summit",
			ownerEmail:   "owner@summitdentalcare.com",
			categorySlug: "health-wellness",
		},
		{
			org: models.Organization{
				Name:             "Prestige Auto Works",
				Slug:             "prestige-auto-works",
				Description:      "Full-service automotive repair and detailing shop specializing in European luxury vehicles.",
				ShortDescription: "European luxury vehicle repair & detailing with ASE-certified technicians.",
				Phone:            "(555) 456-7890",
				Email:            "service@prestigeautoworks.com",
				Website:          "https://prestigeautoworks.com",
				Address:          "8800 Burnet Road",
				City:             "Austin",
				State:            "TX",
				Zip:              "78758",
				Status:           models.OrgStatusActive,
				Featured:         true,
				FeaturedOrder:    3,
				SubscriptionTier: models.TierFeatured,
				ApprovedAt:       &now,
			},
			ownerName:    "Elena Ortiz",
			ownerEmail:   "service@prestigeautoworks.com",
			categorySlug: "automotive",
		},
	}

	clientPassword, err := models.HashPassword(env.GetEnv("SEED_CLIENT_PASSWORD", "Client123!@#"))
	if err != nil {
		log.Fatalf("hash client password: %v", err)
	}

	out := make(map[string]*models.Organization, len(demos))
	for i := range demos {
		d := &demos[i]

		owner := models.User{
			Name:            d.ownerName,
			Email:           d.ownerEmail,
			Password:        clientPassword,
			Role:            models.RoleBusinessClient,
			EmailVerifiedAt: &now,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&owner).Error; err != nil {
			log.Fatalf("seed owner %s: %v", d.ownerEmail, err)
		}
		db.Where("email = ?", d.ownerEmail).First(&owner)

		d.org.OwnerID = owner.ID
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&d.org).Error; err != nil {
			log.Fatalf("seed organization %s: %v", d.org.Slug, err)
		}
		db.Where("slug = ?", d.org.Slug).First(&d.org)

		db.Model(&owner).Update("organization_id", d.org.ID)

		var category models.Category
		if err := db.Where("slug = ?", d.categorySlug).First(&category).Error; err == nil {
			db.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.OrganizationCategory{
				OrganizationID: d.org.ID,
				CategoryID:     category.ID,
			})
		}

		out[d.org.Slug] = &d.org
	}

	// One demo subscription backing the PREMIUM tier listing
	if bravos := out["bravos-italian-kitchen"]; bravos != nil {
		periodEnd := now.Add(30 * 24 * time.Hour)
		sub := models.Subscription{
			OrganizationID:     bravos.ID,
			Tier:               models.TierPremium,
			Status:             models.SubscriptionStatusActive,
			CurrentPeriodStart: &now,
			CurrentPeriodEnd:   &periodEnd,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "organization_id"}},
			DoNothing: true,
		}).Create(&sub).Error; err != nil {
			log.Printf("seed subscription: %v", err)
		}
	}

	log.Printf("Seeded %d organizations", len(demos))
	return out
}

func seedApplication(db *gorm.DB) {
	var count int64
	db.Model(&models.Application{}).Where("email = ?", "sarah@zenyogastudio.com").Count(&count)
	if count > 0 {
		return
	}
	app := models.Application{
		BusinessName: "Zen Yoga Studio",
		ContactName:  "Sarah Chen",
		Email:        "sarah@zenyogastudio.com",
		Phone:        "(555) 321-0987",
		Website:      "https://zenyogastudio.com",
		Category:     "Health & Wellness",
		Description:  "We're a boutique yoga studio looking to expand our local reach. We offer 30+ classes per week and private sessions.",
		Status:       models.ApplicationStatusNew,
	}
	if err := db.Create(&app).Error; err != nil {
		log.Printf("seed application: %v", err)
	}
}

func seedBlogPost(db *gorm.DB, admin *models.User, orgs map[string]*models.Organization) {
	now := time.Now()
	post := models.BlogPost{
		Title:       "Top 10 Must-Try Restaurants in Austin for 2026",
		Slug:        "top-10-restaurants-austin-2026",
		Excerpt:     "Discover the best dining experiences Austin has to offer this year.",
		Content:     "Austin's dining scene continues to evolve with exciting new openings and beloved classics...",
		Status:      models.BlogPostStatusPublished,
		AuthorID:    admin.ID,
		PublishedAt: &now,
	}
	if bravos := orgs["bravos-italian-kitchen"]; bravos != nil {
		post.OrganizationID = &bravos.ID
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&post).Error; err != nil {
		log.Printf("seed blog post: %v", err)
	}
}

func seedSettings(db *gorm.DB) {
	settings := &models.SiteSettings{
		SiteTitle:           "MindSpark Local",
		SiteDescription:     "The premier directory of vetted, high-quality local businesses.",
		ContactEmail:        "hello@mindspark.ai",
		ApplicationsEnabled: true,
		LeadsEnabled:        true,
	}
	if err := models.SaveSiteSettings(db, settings); err != nil {
		log.Printf("seed settings: %v", err)
	}
}
