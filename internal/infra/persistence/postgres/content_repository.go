package postgres

import (
	"context"
	"time"

	"academy/internal/domain/entity"
	domainerrors "academy/internal/domain/errors"
	"academy/internal/domain/repository"
	"academy/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type activityRepository struct {
	db *gorm.DB
}

func (repo *activityRepository) Create(ctx context.Context, entry *entity.ActivityEntry) error {
	teacherID, ok := parseID(entry.TeacherID)
	if !ok {
		return errors.Errorf("invalid teacher id %q", entry.TeacherID)
	}

	entryM := &model.ActivityModel{
		ID:        uuid.New(),
		TeacherID: teacherID,
		Date:      entry.Date,
		Activity:  entry.Activity,
		Details:   entry.Details,
	}
	if err := repo.db.WithContext(ctx).Create(entryM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required tracker information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create tracker entry")
	}
	entry.ID = entryM.ID.String()

	return nil
}

func (repo *activityRepository) ListByTeacher(ctx context.Context, teacherID string) ([]*entity.ActivityEntry, error) {
	parsed, ok := parseID(teacherID)
	if !ok {
		return []*entity.ActivityEntry{}, nil
	}

	var rows []model.ActivityModel
	err := repo.db.WithContext(ctx).
		Where("teacher_id = ?", parsed).
		Order("date DESC").Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list tracker entries")
	}

	entries := make([]*entity.ActivityEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, &entity.ActivityEntry{
			ID:        rows[i].ID.String(),
			TeacherID: rows[i].TeacherID.String(),
			Date:      rows[i].Date,
			Activity:  rows[i].Activity,
			Details:   rows[i].Details,
		})
	}

	return entries, nil
}

type courseRepository struct {
	db *gorm.DB
}

func (repo *courseRepository) List(ctx context.Context) ([]*entity.Course, error) {
	var rows []model.CourseModel
	if err := repo.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list courses")
	}

	return toCourseDomains(rows), nil
}

func (repo *courseRepository) FindByNames(ctx context.Context, names []string) ([]*entity.Course, error) {
	if len(names) == 0 {
		return []*entity.Course{}, nil
	}

	var rows []model.CourseModel
	if err := repo.db.WithContext(ctx).Where("name IN ?", names).Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find courses")
	}

	return toCourseDomains(rows), nil
}

func toCourseDomains(rows []model.CourseModel) []*entity.Course {
	courses := make([]*entity.Course, 0, len(rows))
	for i := range rows {
		m := &rows[i]
		courses = append(courses, &entity.Course{
			ID:            m.ID.String(),
			Category:      m.Category,
			Name:          m.Name,
			Description:   m.Description,
			Details:       []string(m.Details),
			Schedule:      entity.CourseSchedule{Group: m.ScheduleGroup, Individual: m.ScheduleIndividual},
			Prices:        entity.CoursePrices{Group: m.PriceGroup, Individual: m.PriceIndividual},
			MeetLink:      m.MeetLink,
			MaterialsLink: m.MaterialsLink,
		})
	}

	return courses
}

type reviewRepository struct {
	db *gorm.DB
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := &model.ReviewModel{
		ID:        uuid.New(),
		Text:      review.Text,
		Author:    review.Author,
		CreatedAt: review.CreatedAt,
	}
	if review.AuthorID != "" {
		authorID := review.AuthorID
		reviewM.AuthorID = &authorID
	}

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}
	review.ID = reviewM.ID.String()

	return nil
}

func (repo *reviewRepository) List(ctx context.Context) ([]*entity.Review, error) {
	var rows []model.ReviewModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list reviews")
	}

	return toReviewDomains(rows), nil
}

func (repo *reviewRepository) ListByAuthor(ctx context.Context, authorID, authorName string) ([]*entity.Review, error) {
	var rows []model.ReviewModel
	err := repo.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Or("author_id IS NULL AND author = ? AND ? <> ''", authorName, authorName).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list reviews by author")
	}

	return toReviewDomains(rows), nil
}

func toReviewDomains(rows []model.ReviewModel) []*entity.Review {
	reviews := make([]*entity.Review, 0, len(rows))
	for i := range rows {
		r := &entity.Review{
			ID:        rows[i].ID.String(),
			Text:      rows[i].Text,
			Author:    rows[i].Author,
			CreatedAt: rows[i].CreatedAt,
		}
		if rows[i].AuthorID != nil {
			r.AuthorID = *rows[i].AuthorID
		}
		reviews = append(reviews, r)
	}

	return reviews
}

type blogPostRepository struct {
	db *gorm.DB
}

func (repo *blogPostRepository) List(ctx context.Context) ([]*entity.BlogPost, error) {
	var rows []model.BlogPostModel
	if err := repo.db.WithContext(ctx).Order("published_at DESC").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list blog posts")
	}

	posts := make([]*entity.BlogPost, 0, len(rows))
	for i := range rows {
		posts = append(posts, toBlogPostDomain(&rows[i]))
	}

	return posts, nil
}

func (repo *blogPostRepository) FindByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	parsed, ok := parseID(id)
	if !ok {
		return nil, errors.WithStack(repository.ErrContentNotFound)
	}

	var row model.BlogPostModel
	if err := repo.db.WithContext(ctx).Where("id = ?", parsed).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrContentNotFound)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find blog post")
	}

	return toBlogPostDomain(&row), nil
}

func toBlogPostDomain(m *model.BlogPostModel) *entity.BlogPost {
	return &entity.BlogPost{
		ID:          m.ID.String(),
		Title:       m.Title,
		Description: m.Description,
		Content:     m.Content,
		PublishedAt: m.PublishedAt,
	}
}

type articleRepository struct {
	db *gorm.DB
}

func (repo *articleRepository) List(ctx context.Context) ([]*entity.Article, error) {
	var rows []model.ArticleModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list articles")
	}

	articles := make([]*entity.Article, 0, len(rows))
	for i := range rows {
		articles = append(articles, toArticleDomain(&rows[i]))
	}

	return articles, nil
}

func (repo *articleRepository) FindByID(ctx context.Context, id string) (*entity.Article, error) {
	parsed, ok := parseID(id)
	if !ok {
		return nil, errors.WithStack(repository.ErrContentNotFound)
	}

	var row model.ArticleModel
	if err := repo.db.WithContext(ctx).Where("id = ?", parsed).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrContentNotFound)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find article")
	}

	return toArticleDomain(&row), nil
}

func toArticleDomain(m *model.ArticleModel) *entity.Article {
	return &entity.Article{
		ID:        m.ID.String(),
		Title:     m.Title,
		Image:     m.Image,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

type leadRepository struct {
	db *gorm.DB
}

func (repo *leadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	leadM := &model.LeadModel{
		ID:        uuid.New(),
		Source:    string(lead.Source),
		Name:      lead.Name,
		Contact:   lead.Contact,
		Format:    lead.Format,
		Course:    lead.Course,
		CreatedAt: lead.CreatedAt,
	}
	if !lead.Date.IsZero() {
		date := lead.Date.In(time.UTC)
		leadM.Date = &date
	}

	if err := repo.db.WithContext(ctx).Create(leadM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required lead information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create lead")
	}
	lead.ID = leadM.ID.String()

	return nil
}
