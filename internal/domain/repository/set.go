package repository

// Set groups one backend's implementation of every repository.
type Set struct {
	Students      StudentRepository
	Teachers      TeacherRepository
	RefreshTokens RefreshTokenRepository
	Activities    ActivityRepository
	Courses       CourseRepository
	Reviews       ReviewRepository
	BlogPosts     BlogPostRepository
	Articles      ArticleRepository
	Leads         LeadRepository
	Health        HealthChecker
}
