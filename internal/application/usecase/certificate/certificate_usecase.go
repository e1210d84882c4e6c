package certificate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/feeds"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/domain/gamification"
	"github.com/khoahotran/educursus/internal/domain/progress"
	"github.com/khoahotran/educursus/internal/domain/roadmap"
	"github.com/khoahotran/educursus/internal/domain/student"
	"github.com/khoahotran/educursus/internal/domain/token"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

var tracer = otel.Tracer("certificate_usecase")

type CertificateUseCase struct {
	tokenRepo    token.Repository
	progressRepo progress.Repository
	roadmapRepo  roadmap.Repository
	studentRepo  student.Repository
	publisher    service.EventPublisher
	reports      service.ReportBuilder
	uploader     service.Uploader
	publicURL    string
	logger       logger.Logger
	now          func() time.Time
}

type Deps struct {
	Tokens    token.Repository
	Progress  progress.Repository
	Roadmaps  roadmap.Repository
	Students  student.Repository
	Publisher service.EventPublisher
	Reports   service.ReportBuilder
	Uploader  service.Uploader
	PublicURL string
}

func NewCertificateUseCase(d Deps, log logger.Logger) *CertificateUseCase {
	return &CertificateUseCase{
		tokenRepo:    d.Tokens,
		progressRepo: d.Progress,
		roadmapRepo:  d.Roadmaps,
		studentRepo:  d.Students,
		publisher:    d.Publisher,
		reports:      d.Reports,
		uploader:     d.Uploader,
		publicURL:    d.PublicURL,
		logger:       log,
		now:          time.Now,
	}
}

type AddInput struct {
	StudentID uuid.UUID
	Project   string
	Phase     string
}

// ExecuteAdd appends one certificate dated today. Duplicates are kept.
func (uc *CertificateUseCase) ExecuteAdd(ctx context.Context, input AddInput) (*token.Token, error) {
	ctx, span := tracer.Start(ctx, "AddToken")
	defer span.End()

	t, err := token.New(input.Project, input.Phase, uc.now())
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.tokenRepo.Append(ctx, input.StudentID, t); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to save token", err)
	}

	e := gamification.NewProjectCompleted(input.StudentID, t.Project)
	go func() {
		if err := uc.publisher.PublishGamificationEvent(context.Background(), e); err != nil {
			uc.logger.Error("Failed to publish Kafka 'project_completed' event", err, zap.String("student_id", input.StudentID.String()))
		}
	}()

	return &t, nil
}

func (uc *CertificateUseCase) ExecuteList(ctx context.Context, studentID uuid.UUID) ([]token.Token, error) {
	ctx, span := tracer.Start(ctx, "ListTokens")
	defer span.End()

	list, err := uc.tokenRepo.List(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to list tokens", err)
	}
	return list, nil
}

type ReportOutput struct {
	URL string `json:"url"`
}

// ExecuteExportReport renders certificates and progress into a workbook and uploads it.
func (uc *CertificateUseCase) ExecuteExportReport(ctx context.Context, studentID uuid.UUID) (*ReportOutput, error) {
	ctx, span := tracer.Start(ctx, "ExportReport")
	defer span.End()

	s, err := uc.findStudent(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	tokens, err := uc.tokenRepo.List(ctx, studentID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list tokens", err)
	}
	p, err := uc.progressRepo.Get(ctx, studentID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load progress", err)
	}
	roadmaps, err := uc.roadmapRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list roadmaps", err)
	}
	skillSets := make([][]string, len(roadmaps))
	for i, rm := range roadmaps {
		skillSets[i] = rm.Skills()
	}

	file, err := uc.reports.Build(service.ReportData{
		StudentName: s.Name,
		Level:       progress.Level(p),
		Percentage:  progress.Percentage(skillSets, p),
		Progress:    p,
		Tokens:      tokens,
	})
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to build report", err)
	}

	folder := fmt.Sprintf("students/%s/reports", studentID)
	publicID := fmt.Sprintf("certificates-%d.xlsx", uc.now().Unix())
	url, err := uc.uploader.Upload(ctx, file, folder, publicID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to upload report", err)
	}
	uc.logger.Info("Certificate report exported", zap.String("student_id", studentID.String()), zap.Int("tokens", len(tokens)))
	return &ReportOutput{URL: url}, nil
}

// ExecuteFeed publishes a student's certificates as a feed, newest first.
func (uc *CertificateUseCase) ExecuteFeed(ctx context.Context, studentID uuid.UUID) (*feeds.Feed, error) {
	ctx, span := tracer.Start(ctx, "TokenFeed")
	defer span.End()

	s, err := uc.findStudent(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	tokens, err := uc.tokenRepo.List(ctx, studentID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list tokens", err)
	}

	link := fmt.Sprintf("%s/api/feeds/%s/tokens", uc.publicURL, studentID)
	feed := &feeds.Feed{
		Title:       fmt.Sprintf("%s's Educursus certificates", s.Name),
		Link:        &feeds.Link{Href: link},
		Description: "Mini-projects completed on the career roadmap.",
		Author:      &feeds.Author{Name: s.Name},
		Created:     uc.now(),
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		t := tokens[i]
		created, err := time.Parse(token.DateLayout, t.Date)
		if err != nil {
			uc.logger.Warn("Skipping token date", zap.String("date", t.Date), zap.Error(err))
			created = s.CreatedAt
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s#%d", link, i),
			Title:       t.Project,
			Link:        &feeds.Link{Href: link},
			Description: fmt.Sprintf("Completed the %s phase project on %s.", t.Phase, t.Date),
			Created:     created,
		})
	}
	return feed, nil
}

func (uc *CertificateUseCase) findStudent(ctx context.Context, id uuid.UUID) (*student.Student, error) {
	s, err := uc.studentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, student.ErrStudentNotFound) {
			return nil, apperror.NewNotFound("student", id.String())
		}
		return nil, apperror.NewInternal("failed to load student", err)
	}
	return s, nil
}
