package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"resume-tailor/internal/models"
)

// RendererService renders a structured resume to HTML and prints it to an
// A4 PDF with headless Chrome.
type RendererService interface {
	RenderHTML(resume *models.Resume) (string, error)
	RenderPDF(ctx context.Context, resume *models.Resume) ([]byte, error)
}

type rendererService struct {
	tmpl       *template.Template
	chromePath string
	timeout    time.Duration
}

func NewRendererService(templateDir, chromePath string, timeout time.Duration) (RendererService, error) {
	tmpl, err := template.ParseFiles(filepath.Join(templateDir, "cv_template.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume template: %w", err)
	}

	return &rendererService{
		tmpl:       tmpl,
		chromePath: chromePath,
		timeout:    timeout,
	}, nil
}

// RenderHTML implements RendererService.
func (r *rendererService) RenderHTML(resume *models.Resume) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, resume); err != nil {
		return "", fmt.Errorf("failed to render resume template: %w", err)
	}

	return buf.String(), nil
}

// RenderPDF implements RendererService.
func (r *rendererService) RenderPDF(ctx context.Context, resume *models.Resume) ([]byte, error) {
	html, err := r.RenderHTML(resume)
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	chromeCtx, cancelChrome := chromedp.NewContext(allocCtx)
	defer cancelChrome()

	runCtx, cancelRun := context.WithTimeout(chromeCtx, r.timeout)
	defer cancelRun()

	// chromedp navigates file:// URLs more reliably than data: URLs for
	// multi-kilobyte documents, so stage the HTML in a temp dir.
	tmpDir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write html: %w", err)
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> 8.27in x 11.69in
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
		return nil, fmt.Errorf("failed to print PDF: %w", err)
	}

	return pdfBuf, nil
}
