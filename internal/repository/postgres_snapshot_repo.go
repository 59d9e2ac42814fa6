package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hitoshi/resumake/internal/model"
)

// PostgresSnapshotRepo はPostgreSQLを使用した公開スナップショットリポジトリ。
// スナップショットは挿入のみで、UPDATE文を持たない。
type PostgresSnapshotRepo struct {
	db *sql.DB
}

// NewPostgresSnapshotRepo はPostgresSnapshotRepoを生成する。
func NewPostgresSnapshotRepo(db *sql.DB) *PostgresSnapshotRepo {
	return &PostgresSnapshotRepo{db: db}
}

// Create はスナップショットを新規保存する。
// 公開IDが衝突した場合は一意制約違反のエラーが返る（上書きはしない）。
func (r *PostgresSnapshotRepo) Create(ctx context.Context, snapshot *model.PublicResumeSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO public_resumes (public_id, user_id, template_id, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		snapshot.PublicID, snapshot.UserID, snapshot.TemplateID, payload, snapshot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return nil
}

// FindByPublicID は公開IDでスナップショットを取得する。
// 見つからない場合はnilを返す。
func (r *PostgresSnapshotRepo) FindByPublicID(ctx context.Context, publicID string) (*model.PublicResumeSnapshot, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM public_resumes WHERE public_id = $1`,
		publicID,
	).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find snapshot: %w", err)
	}

	snapshot := &model.PublicResumeSnapshot{}
	if err := json.Unmarshal(payload, snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	snapshot.PublicID = publicID

	return snapshot, nil
}

// compile-time interface check
var _ SnapshotRepository = (*PostgresSnapshotRepo)(nil)
