package export

import (
	"context"
	"log/slog"

	"github.com/hitoshi/resumake/internal/model"
	"github.com/hitoshi/resumake/internal/template"
)

// DocumentExporter はレジュメをWord文書へ書き出すインターフェース。
type DocumentExporter interface {
	Export(data *model.ResumeData, identity model.UserIdentity) ([]byte, error)
}

// Service はエクスポート操作のインターフェース。
type Service interface {
	// ExportPDF は指定テンプレートでレジュメをPDFへ書き出す。
	ExportPDF(ctx context.Context, data *model.ResumeData, identity model.UserIdentity, templateID string) ([]byte, error)

	// ExportDOCX はレジュメをWord文書へ書き出す。
	// Word出力はプレースホルダーテンプレート固定で、画面テンプレートには依存しない。
	ExportDOCX(ctx context.Context, data *model.ResumeData, identity model.UserIdentity) ([]byte, error)
}

// ExportService はServiceの実装。
// エクスポートの失敗はEXPORT_FAILEDへマップされ、同じ操作の再実行でリトライできる。
type ExportService struct {
	registry *template.Registry
	pdf      PDFRenderer
	docx     DocumentExporter
}

// NewExportService はExportServiceの新しいインスタンスを生成する。
func NewExportService(registry *template.Registry, pdf PDFRenderer, docx DocumentExporter) *ExportService {
	return &ExportService{registry: registry, pdf: pdf, docx: docx}
}

// ExportPDF は画面プレビューと同一のレンダラー出力を印刷用シェルに包み、
// ヘッドレスブラウザでPDFへ変換する。テンプレートIDは全域解決される。
func (s *ExportService) ExportPDF(ctx context.Context, data *model.ResumeData, identity model.UserIdentity, templateID string) ([]byte, error) {
	tmpl := s.registry.ByID(templateID)

	fragment, err := tmpl.Renderer().Render(data, identity)
	if err != nil {
		slog.Error("PDF用レンダリングに失敗", "templateID", tmpl.ID, "error", err)
		return nil, model.NewExportFailedError("PDF")
	}

	doc := pageShell(model.DisplayNameFor(data, identity), fragment)

	pdf, err := s.pdf.RenderHTMLToPDF(ctx, doc)
	if err != nil {
		slog.Error("PDF変換に失敗", "templateID", tmpl.ID, "error", err)
		return nil, model.NewExportFailedError("PDF")
	}

	return pdf, nil
}

// ExportDOCX はレジュメをWord文書へ書き出す。
func (s *ExportService) ExportDOCX(ctx context.Context, data *model.ResumeData, identity model.UserIdentity) ([]byte, error) {
	docBytes, err := s.docx.Export(data, identity)
	if err != nil {
		slog.Error("DOCXエクスポートに失敗", "error", err)
		return nil, model.NewExportFailedError("DOCX")
	}
	return docBytes, nil
}

// compile-time interface check
var _ Service = (*ExportService)(nil)
