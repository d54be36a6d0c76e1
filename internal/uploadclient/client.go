package uploadclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Config tunes the chunking driver.
type Config struct {
	BaseURL     string
	PartSize    int64
	Concurrency int
	MaxRetries  int
	RetryWait   time.Duration
}

// Client splits a local file into parts and drives the upload pipeline:
// start session, send parts concurrently with retries, verify, finalize.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// UploadedFile is the committed artifact as reported by the server.
type UploadedFile struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
	Category   string    `json:"category"`
}

// New creates a new upload client
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.PartSize <= 0 {
		cfg.PartSize = 10 << 20
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = 500 * time.Millisecond
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 5 * time.Minute},
		logger: logger,
	}
}

// Upload transfers one local file and returns the committed artifact.
func (c *Client) Upload(ctx context.Context, ownerID, category, path string) (*UploadedFile, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("could not stat file: %w", err)
	}
	size := info.Size()
	totalParts := int((size + c.cfg.PartSize - 1) / c.cfg.PartSize)
	fileName := filepath.Base(path)

	sessionID, err := c.startSession(ctx, ownerID, category, fileName, size, totalParts)
	if err != nil {
		return nil, err
	}
	c.logger.Info("upload session started", "session_id", sessionID, "total_parts", totalParts)

	if err := c.sendParts(ctx, f, sessionID, allIndices(totalParts), totalParts); err != nil {
		return nil, err
	}

	// One verification round-trip before finalize; any index lost on the way
	// gets a selective resend instead of a full restart.
	missing, err := c.verify(ctx, sessionID, totalParts)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		c.logger.Warn("resending missing parts", "session_id", sessionID, "missing", missing)
		if err := c.sendParts(ctx, f, sessionID, missing, totalParts); err != nil {
			return nil, err
		}
	}

	return c.finalize(ctx, sessionID, ownerID, category, fileName, size, totalParts)
}

func allIndices(totalParts int) []int {
	indices := make([]int, totalParts)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

func (c *Client) sendParts(ctx context.Context, f *os.File, sessionID uuid.UUID, indices []int, totalParts int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)

	for _, index := range indices {
		index := index
		g.Go(func() error {
			return c.sendPartWithRetry(gctx, f, sessionID, index, totalParts)
		})
	}

	return g.Wait()
}

func (c *Client) sendPartWithRetry(ctx context.Context, f *os.File, sessionID uuid.UUID, index, totalParts int) error {
	wait := c.cfg.RetryWait

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			wait *= 2
			c.logger.Warn("retrying part", "session_id", sessionID, "index", index, "attempt", attempt)
		}

		lastErr = c.sendPart(ctx, f, sessionID, index, totalParts)
		if lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("part %d failed after %d retries: %w", index, c.cfg.MaxRetries, lastErr)
}

func (c *Client) sendPart(ctx context.Context, f *os.File, sessionID uuid.UUID, index, totalParts int) error {
	offset := int64(index) * c.cfg.PartSize
	section := io.NewSectionReader(f, offset, c.cfg.PartSize)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("total_parts", strconv.Itoa(totalParts)); err != nil {
		return err
	}
	fw, err := mw.CreateFormFile("part", fmt.Sprintf("part-%05d", index))
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, section); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/v1/upload/sessions/%s/parts/%d", c.cfg.BaseURL, sessionID, index)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("part %d rejected: %s", index, readError(resp.Body))
	}
	return nil
}

func (c *Client) startSession(ctx context.Context, ownerID, category, fileName string, size int64, totalParts int) (uuid.UUID, error) {
	payload, err := json.Marshal(map[string]any{
		"owner_id":    ownerID,
		"category":    category,
		"filename":    fileName,
		"size_bytes":  size,
		"total_parts": totalParts,
	})
	if err != nil {
		return uuid.Nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/v1/upload/sessions", bytes.NewReader(payload))
	if err != nil {
		return uuid.Nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return uuid.Nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return uuid.Nil, fmt.Errorf("start session rejected: %s", readError(resp.Body))
	}

	var out struct {
		SessionID uuid.UUID `json:"session_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return uuid.Nil, err
	}
	return out.SessionID, nil
}

func (c *Client) verify(ctx context.Context, sessionID uuid.UUID, totalParts int) ([]int, error) {
	url := fmt.Sprintf("%s/api/v1/upload/sessions/%s/status?total_parts=%d", c.cfg.BaseURL, sessionID, totalParts)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status check rejected: %s", readError(resp.Body))
	}

	var out struct {
		Complete bool  `json:"complete"`
		Missing  []int `json:"missing"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Missing, nil
}

func (c *Client) finalize(ctx context.Context, sessionID uuid.UUID, ownerID, category, fileName string, size int64, totalParts int) (*UploadedFile, error) {
	payload, err := json.Marshal(map[string]any{
		"user_id":       ownerID,
		"category":      category,
		"original_name": fileName,
		"original_size": size,
		"total_chunks":  totalParts,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/v1/upload/sessions/%s/finalize", c.cfg.BaseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("finalize rejected: %s", readError(resp.Body))
	}

	var out struct {
		Success bool         `json:"success"`
		File    UploadedFile `json:"file"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("finalize reported failure")
	}
	return &out.File, nil
}

func readError(r io.Reader) string {
	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&out); err == nil && out.Error != "" {
		return out.Error
	}
	return "unexpected response"
}
