package snipeitapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// Upload posts one or more local files to a file-attachment endpoint
// (e.g. hardware/{id}/files) as a multipart request. The whole operation
// fails if any file cannot be read; uploads are not transactional upstream,
// so no rollback is attempted.
func (c *Client) Upload(ctx context.Context, endpoint string, paths []string, notes string) (map[string]any, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, path := range paths {
		if err := writeFilePart(mw, path); err != nil {
			return nil, err
		}
	}
	if notes != "" {
		if err := mw.WriteField("notes", notes); err != nil {
			return nil, fmt.Errorf("writing notes field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, nil, &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	resp, err := c.send(ctx, req, endpoint)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data := map[string]any{}
	if err := decodeJSONBody(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("POST %s: malformed response: %w", endpoint, err)
	}
	if apiErr := applicationError(data); apiErr != nil {
		return nil, apiErr
	}
	return data, nil
}

// writeFilePart streams a single local file into the multipart body, closing
// the handle on every exit path.
func writeFilePart(mw *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file for upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	part, err := mw.CreateFormFile("file[]", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("creating multipart section for %s: %w", path, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// Download streams a byte-stream endpoint (file attachments, backups) to a
// local file and returns the path written.
func (c *Client) Download(ctx context.Context, endpoint, savePath string) (string, error) {
	return c.download(ctx, http.MethodGet, endpoint, nil, savePath)
}

// DownloadPost posts a JSON body to a byte-stream endpoint (label sheets) and
// streams the response to a local file.
func (c *Client) DownloadPost(ctx context.Context, endpoint string, body any, savePath string) (string, error) {
	return c.download(ctx, http.MethodPost, endpoint, body, savePath)
}

func (c *Client) download(ctx context.Context, method, endpoint string, body any, savePath string) (string, error) {
	var rdr io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encoding request body: %w", err)
		}
		rdr = bytes.NewReader(b)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, endpoint, nil, rdr, contentType)
	if err != nil {
		return "", err
	}
	// Byte-stream endpoints answer with the file's own content type.
	req.Header.Set("Accept", "*/*")

	resp, err := c.send(ctx, req, endpoint)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	out, err := os.Create(savePath)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", savePath, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("writing %s: %w", savePath, err)
	}
	return savePath, nil
}

func decodeJSONBody(r io.Reader, v *map[string]any) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}
