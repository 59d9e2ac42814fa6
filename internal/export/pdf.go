// Package export はレジュメのPDF・DOCXエクスポートを提供する。
//
// エクスポートは画面表示と同じレンダラーの出力を入力とするベストエフォート
// 操作であり、失敗してもレジュメデータには影響しない。
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFRenderer はHTML文書をPDFへ変換するインターフェース。
type PDFRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromePDFRenderer はヘッドレスChromeによるPDFRenderer実装。
// エクスポート要求ごとに独立したブラウザコンテキストを起動する。
type ChromePDFRenderer struct {
	timeout time.Duration
}

// NewChromePDFRenderer はChromePDFRendererの新しいインスタンスを生成する。
func NewChromePDFRenderer(timeout time.Duration) *ChromePDFRenderer {
	return &ChromePDFRenderer{timeout: timeout}
}

// RenderHTMLToPDF はHTML文書をA4縦のPDFへ変換する。
// CHROME_PATHが設定されていればそのバイナリを使用する。
func (r *ChromePDFRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, r.timeout)
	defer cancelRun()

	// file://経由で読み込ませるため一時ファイルへ書き出す
	tmpDir, err := os.MkdirTemp("", "resumake-pdf-")
	if err != nil {
		return nil, fmt.Errorf("一時ディレクトリの作成に失敗しました: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("HTMLの書き出しに失敗しました: %w", err)
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("PDF変換に失敗しました: %w", err)
	}

	return pdfBuf, nil
}

// compile-time interface check
var _ PDFRenderer = (*ChromePDFRenderer)(nil)
