package backup

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/pkg/logger"
)

var tracer = otel.Tracer("backup_usecase")

const (
	folder    = "backups/database"
	retention = 7 * 24 * time.Hour
)

func dumpName(t time.Time) string {
	return fmt.Sprintf("educursus-%s.dump", t.UTC().Format("2006-01-02"))
}

// DumpFunc writes a database dump for dsn.
type DumpFunc func(ctx context.Context, dsn string) ([]byte, error)

// PgDump runs pg_dump in custom format.
func PgDump(ctx context.Context, dsn string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "pg_dump", "--dbname="+dsn, "--format=c")

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pg_dump failed: %w: %s", err, stderr.String())
	}
	return out.Bytes(), nil
}

type BackupUseCase struct {
	dsn      string
	dump     DumpFunc
	uploader service.Uploader
	logger   logger.Logger
	now      func() time.Time
}

func NewBackupUseCase(dsn string, dump DumpFunc, uploader service.Uploader, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		dsn:      dsn,
		dump:     dump,
		uploader: uploader,
		logger:   log,
		now:      time.Now,
	}
}

// Execute dumps the database and uploads it, returning the stored file's URL. One dump is
// kept per day; the dump that fell out of retention is removed afterwards.
func (uc *BackupUseCase) Execute(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "DatabaseBackup")
	defer span.End()

	uc.logger.Info("Starting database backup...")

	data, err := uc.dump(ctx, uc.dsn)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("database dump is empty")
	}

	now := uc.now()
	url, err := uc.uploader.Upload(ctx, bytes.NewReader(data), folder, dumpName(now))
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}

	expired := folder + "/" + dumpName(now.Add(-retention))
	if err := uc.uploader.Delete(ctx, expired); err != nil {
		uc.logger.Warn("Failed to delete expired backup", zap.String("public_id", expired), zap.Error(err))
	}

	uc.logger.Info("Database backup completed and uploaded successfully",
		zap.String("url", url),
		zap.Int("bytes", len(data)),
	)
	return url, nil
}
