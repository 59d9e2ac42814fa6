// Package share は公開レジュメの作成と解決のドメインロジックを提供する。
//
// 共有は共有時点のレジュメの不変コピー（スナップショット）を作成する操作であり、
// 以後の編集は公開済みレジュメに影響しない。再共有は常に新しいIDの
// 新しいスナップショットを作成する。
package share

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/resumake/internal/model"
	"github.com/hitoshi/resumake/internal/repository"
	"github.com/hitoshi/resumake/internal/resume"
	"github.com/hitoshi/resumake/internal/template"
)

// ShareResult は共有操作の結果。クリップボードへのコピーはクライアント側の
// 責務であり、サーバーは公開IDと完全なURLを返すだけにとどめる。
type ShareResult struct {
	PublicID  string `json:"public_id"`
	PublicURL string `json:"public_url"`
}

// Service は共有操作のインターフェース。
type Service interface {
	// CreateSnapshot は現在のレジュメから公開スナップショットを作成する。
	CreateSnapshot(ctx context.Context, userID, templateID string, identity model.UserIdentity) (*ShareResult, error)

	// ResolvePublic は公開IDでスナップショットを解決する。
	// 存在しないIDはRESUME_NOT_FOUNDとなり、一般障害とは区別される。
	ResolvePublic(ctx context.Context, publicID string) (*model.PublicResumeSnapshot, error)
}

// ShareService はServiceの実装。
type ShareService struct {
	resumeService resume.Service
	snapshots     repository.SnapshotRepository
	registry      *template.Registry
	baseURL       string

	// nowはテストで固定する
	now func() time.Time
}

// NewShareService はShareServiceの新しいインスタンスを生成する。
func NewShareService(
	resumeService resume.Service,
	snapshots repository.SnapshotRepository,
	registry *template.Registry,
	baseURL string,
) *ShareService {
	return &ShareService{
		resumeService: resumeService,
		snapshots:     snapshots,
		registry:      registry,
		baseURL:       baseURL,
		now:           time.Now,
	}
}

// CreateSnapshot は現在のレジュメから公開スナップショットを作成する。
//
// 公開IDは {userID}-{unixミリ秒} で生成する。同一ユーザーが同一ミリ秒に
// 共有した場合のみ衝突するが、共有はユーザー操作起点のため実務上起こらず、
// 衝突チェックは行わない。
// テンプレートIDはレジストリで解決してから保存するため、
// スナップショットには必ず実在するテンプレートIDが記録される。
func (s *ShareService) CreateSnapshot(ctx context.Context, userID, templateID string, identity model.UserIdentity) (*ShareResult, error) {
	data, err := s.resumeService.LoadResume(ctx, userID)
	if err != nil {
		slog.Error("共有用レジュメの読み込みに失敗", "userID", userID, "error", err)
		return nil, model.NewShareFailedError()
	}

	now := s.now()
	snapshot := &model.PublicResumeSnapshot{
		PublicID:   fmt.Sprintf("%s-%d", userID, now.UnixMilli()),
		UserID:     userID,
		TemplateID: s.registry.ByID(templateID).ID,
		PersonalInfo: model.SnapshotPersonalInfo{
			Name:                model.DisplayNameFor(data, identity),
			Email:               identity.Email,
			PhotoURL:            identity.PhotoURL,
			Phone:               data.PersonalInfo.Phone,
			Location:            data.PersonalInfo.Address,
			ProfessionalSummary: data.PersonalInfo.ProfessionalSummary,
			GithubURL:           data.PersonalInfo.GithubURL,
			WebsiteURL:          data.PersonalInfo.WebsiteURL,
		},
		Education:      data.Education,
		Experience:     data.Experience,
		Skills:         data.Skills,
		Certifications: data.Certifications,
		Languages:      data.Languages,
		Achievements:   data.Achievements,
		CreatedAt:      now,
	}

	if err := s.snapshots.Create(ctx, snapshot); err != nil {
		slog.Error("スナップショットの保存に失敗", "userID", userID, "publicID", snapshot.PublicID, "error", err)
		return nil, model.NewShareFailedError()
	}

	slog.Info("公開スナップショット作成", "userID", userID, "publicID", snapshot.PublicID, "templateID", snapshot.TemplateID)

	return &ShareResult{
		PublicID:  snapshot.PublicID,
		PublicURL: fmt.Sprintf("%s/resume/%s", s.baseURL, snapshot.PublicID),
	}, nil
}

// ResolvePublic は公開IDでスナップショットを解決する。
func (s *ShareService) ResolvePublic(ctx context.Context, publicID string) (*model.PublicResumeSnapshot, error) {
	snapshot, err := s.snapshots.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, fmt.Errorf("公開レジュメの取得に失敗しました: %w", err)
	}
	if snapshot == nil {
		return nil, model.NewResumeNotFoundError(publicID)
	}
	return snapshot, nil
}

// compile-time interface check
var _ Service = (*ShareService)(nil)
