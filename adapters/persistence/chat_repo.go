package persistence

import (
	"context"
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/educursus/internal/domain/chat"
)

type postgresChatRepo struct {
	db *pgxpool.Pool
}

func NewPostgresChatRepo(db *pgxpool.Pool) chat.Repository {
	return &postgresChatRepo{db: db}
}

// History loads the latest limit messages, returned oldest first.
func (r *postgresChatRepo) History(ctx context.Context, studentID uuid.UUID, limit int) ([]chat.Message, error) {
	builder := psql.Select("sender", "text", "created_at").
		From("chat_messages").
		Where(sq.Eq{"student_id": studentID}).
		OrderBy("id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build chat query: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	msgs := make([]chat.Message, 0)
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.Sender, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat row: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.Reverse(msgs)
	return msgs, nil
}

func (r *postgresChatRepo) Append(ctx context.Context, studentID uuid.UUID, msgs ...chat.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	insert := psql.Insert("chat_messages").Columns("student_id", "sender", "text", "created_at")
	for _, m := range msgs {
		insert = insert.Values(studentID, string(m.Sender), m.Text, m.CreatedAt)
	}
	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build chat insert: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to append chat messages: %w", err)
	}
	return nil
}
