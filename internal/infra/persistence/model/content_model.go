package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityModel mirrors the 'tracker_entries' table.
type ActivityModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null;index:idx_tracker_entries_teacher_date,priority:1"`
	Date      time.Time `gorm:"not null;index:idx_tracker_entries_teacher_date,priority:2,sort:desc"`
	Activity  string    `gorm:"type:text;not null"`
	Details   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ActivityModel) TableName() string {
	return "tracker_entries"
}

// CourseModel mirrors the 'courses' table.
type CourseModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Category           string    `gorm:"type:varchar(255)"`
	Name               string    `gorm:"type:varchar(255);not null;index"`
	Description        string    `gorm:"type:text"`
	Details            datatypes.JSONSlice[string]
	ScheduleGroup      string `gorm:"type:text"`
	ScheduleIndividual string `gorm:"type:text"`
	PriceGroup         string `gorm:"type:varchar(64)"`
	PriceIndividual    string `gorm:"type:varchar(64)"`
	MeetLink           string `gorm:"type:text"`
	MaterialsLink      string `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (CourseModel) TableName() string {
	return "courses"
}

// ReviewModel mirrors the 'reviews' table. AuthorID is NULL for legacy reviews.
type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Text      string    `gorm:"type:text;not null"`
	Author    string    `gorm:"type:varchar(255);not null"`
	AuthorID  *string   `gorm:"type:varchar(64);index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// BlogPostModel mirrors the 'blog_posts' table.
type BlogPostModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Content     string    `gorm:"type:text"`
	PublishedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (BlogPostModel) TableName() string {
	return "blog_posts"
}

// ArticleModel mirrors the 'articles' table.
type ArticleModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Image     string    `gorm:"type:text;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ArticleModel) TableName() string {
	return "articles"
}

// LeadModel mirrors the 'leads' table. All three public forms share it.
type LeadModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Source    string    `gorm:"type:varchar(16);not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Contact   string    `gorm:"type:varchar(255);not null"`
	Format    string    `gorm:"type:varchar(64)"`
	Course    string    `gorm:"type:varchar(255);not null"`
	Date      *time.Time
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (LeadModel) TableName() string {
	return "leads"
}
