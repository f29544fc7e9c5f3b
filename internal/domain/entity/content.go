package entity

import "time"

// Course is a catalog entry shown on the home page.
type Course struct {
	ID            string
	Category      string
	Name          string
	Description   string
	Details       []string
	Schedule      CourseSchedule
	Prices        CoursePrices
	MeetLink      string
	MaterialsLink string
}

// CourseSchedule describes when group and individual formats run.
type CourseSchedule struct {
	Group      string `json:"group"`
	Individual string `json:"individual"`
}

// CoursePrices holds display prices per format.
type CoursePrices struct {
	Group      string `json:"group"`
	Individual string `json:"individual"`
}

// Review is a testimonial. AuthorID links it to a student account; reviews
// imported before the link existed only carry the author's display name.
type Review struct {
	ID        string
	Text      string
	Author    string
	AuthorID  string
	CreatedAt time.Time
}

// BlogPost is a published blog entry.
type BlogPost struct {
	ID          string
	Title       string
	Description string
	Content     string
	PublishedAt time.Time
}

// Article is a standalone long-form page with a cover image.
type Article struct {
	ID        string
	Title     string
	Image     string
	Content   string
	CreatedAt time.Time
}
