package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hitoshi/resumake/internal/model"
)

// sectionColumns はセクションと対応するカラム名のマッピング。
// SQLへ埋め込むカラム名はこの固定マップからのみ取得し、
// 外部入力が直接カラム名になることはない。
var sectionColumns = map[model.Section]string{
	model.SectionPersonalInfo:   "personal_info",
	model.SectionEducation:      "education",
	model.SectionExperience:     "experience",
	model.SectionSkills:         "skills",
	model.SectionCertifications: "certifications",
	model.SectionLanguages:      "languages",
	model.SectionAchievements:   "achievements",
}

// PostgresResumeRepo はPostgreSQLを使用したレジュメドキュメントリポジトリ。
// 1ユーザー1行、カテゴリごとに独立したjsonbカラムで保持する。
type PostgresResumeRepo struct {
	db *sql.DB
}

// NewPostgresResumeRepo はPostgresResumeRepoを生成する。
func NewPostgresResumeRepo(db *sql.DB) *PostgresResumeRepo {
	return &PostgresResumeRepo{db: db}
}

// FindByUserID はユーザーのドキュメントを取得する。
// 行が存在しない場合はnilを返す。欠損カテゴリはnilのRawMessageとなる。
func (r *PostgresResumeRepo) FindByUserID(ctx context.Context, userID string) (*ResumeDocument, error) {
	doc := &ResumeDocument{UserID: userID}
	var personalInfo, education, experience, skills []byte
	var certifications, languages, achievements []byte

	err := r.db.QueryRowContext(ctx,
		`SELECT personal_info, education, experience, skills, certifications, languages, achievements
		 FROM resume_documents
		 WHERE user_id = $1`,
		userID,
	).Scan(&personalInfo, &education, &experience, &skills, &certifications, &languages, &achievements)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find resume document: %w", err)
	}

	doc.PersonalInfo = json.RawMessage(personalInfo)
	doc.Education = json.RawMessage(education)
	doc.Experience = json.RawMessage(experience)
	doc.Skills = json.RawMessage(skills)
	doc.Certifications = json.RawMessage(certifications)
	doc.Languages = json.RawMessage(languages)
	doc.Achievements = json.RawMessage(achievements)

	return doc, nil
}

// SaveCategory は指定カテゴリのみをドキュメントへマージ書き込みする。
//
// UPSERTのUPDATE句は自カテゴリのカラムとupdated_atのみを更新するため、
// 兄弟カテゴリの値には一切触れない。スキルの保存が学歴を消すことは
// SQLの構造上起こりえない。
func (r *PostgresResumeRepo) SaveCategory(ctx context.Context, userID string, section model.Section, payload json.RawMessage) error {
	column, ok := sectionColumns[section]
	if !ok {
		return fmt.Errorf("unknown section: %s", section)
	}

	query := fmt.Sprintf(
		`INSERT INTO resume_documents (user_id, %s, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET %s = EXCLUDED.%s, updated_at = EXCLUDED.updated_at`,
		column, column, column,
	)

	if _, err := r.db.ExecContext(ctx, query, userID, []byte(payload), time.Now()); err != nil {
		return fmt.Errorf("failed to save category %s: %w", section, err)
	}

	return nil
}

// compile-time interface check
var _ ResumeDocumentRepository = (*PostgresResumeRepo)(nil)
