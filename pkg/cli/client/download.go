package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Download streams the file at link into w. link may be server-relative.
func (c *Client) Download(ctx context.Context, link string, w io.Writer) (int64, error) {
	if strings.TrimSpace(link) == "" {
		return 0, fmt.Errorf("download link is empty")
	}

	req, err := c.buildRequest(ctx, http.MethodGet, link, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.send(ctx, req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, newHTTPError(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, newNetworkError(fmt.Errorf("failed to read download: %w", err))
	}
	return n, nil
}

// DownloadTo saves the file at link into dir, named after the last path
// segment of the link, and returns the written path.
func (c *Client) DownloadTo(ctx context.Context, link, dir string) (string, error) {
	name, err := fileNameFromLink(link)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	target := filepath.Join(dir, name)
	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", target, err)
	}

	if _, err := c.Download(ctx, link, f); err != nil {
		f.Close()
		os.Remove(target)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}
	return target, nil
}

func fileNameFromLink(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid download link: %w", err)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("download link %q has no file name", link)
	}
	return name, nil
}
