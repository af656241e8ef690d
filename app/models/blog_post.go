package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	BlogPostStatusDraft     = "DRAFT"
	BlogPostStatusPublished = "PUBLISHED"
	BlogPostStatusArchived  = "ARCHIVED"
)

// BlogPost is editorial content, optionally spotlighting one organization
// (a FEATURED-tier entitlement).
type BlogPost struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=1,max=255"`
	Slug           string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug" validate:"required"`
	Excerpt        string         `gorm:"type:varchar(500)" json:"excerpt"`
	Content        string         `gorm:"type:longtext;not null" json:"content" validate:"required"`
	Status         string         `gorm:"type:varchar(32);not null;default:'DRAFT';index" json:"status"`
	AuthorID       uint           `gorm:"not null" json:"author_id"`
	OrganizationID *uint          `gorm:"index" json:"organization_id,omitempty"`
	PublishedAt    *time.Time     `gorm:"type:timestamp;default:null" json:"published_at,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *BlogPost) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

func FindPublishedPostBySlug(db *gorm.DB, slug string) (*BlogPost, error) {
	var post BlogPost
	err := db.Where("slug = ? AND status = ?", slug, BlogPostStatusPublished).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func GetPublishedPosts(db *gorm.DB, offset, limit int) ([]BlogPost, error) {
	var posts []BlogPost
	err := db.Where("status = ?", BlogPostStatusPublished).
		Order("published_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}
