package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/elsbrock/go-putio"
	"golang.org/x/oauth2"
)

// Client wraps the official Put.io client
type Client struct {
	client *putio.Client
}

// NewClient creates a new Put.io API client
func NewClient(oauthToken string) *Client {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: oauthToken})
	oauthClient := oauth2.NewClient(context.Background(), tokenSource)

	return newClient(oauthClient)
}

func newClient(httpClient *http.Client) *Client {
	return &Client{
		client: putio.NewClient(httpClient),
	}
}

// SetBaseURL points the client at a different API endpoint
func (c *Client) SetBaseURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse base URL: %w", err)
	}
	c.client.BaseURL = u
	return nil
}

// GetFile returns the metadata of a single file or folder
func (c *Client) GetFile(ctx context.Context, fileID int64) (*putio.File, error) {
	file, err := c.client.Files.Get(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	return &file, nil
}

// GetFiles gets the contents of a folder
func (c *Client) GetFiles(ctx context.Context, folderID int64) ([]*putio.File, error) {
	files, _, err := c.client.Files.List(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	// Convert []putio.File to []*putio.File
	result := make([]*putio.File, len(files))
	for i := range files {
		result[i] = &files[i]
	}
	return result, nil
}

// FileSize returns the size in bytes of a file, or the combined size of
// every file below a folder
func (c *Client) FileSize(ctx context.Context, fileID int64) (int64, error) {
	files, err := c.GetAllFiles(ctx, fileID)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total, nil
}

// GetAllFiles recursively gets all files below fileID, or the file itself
// when fileID is not a folder
func (c *Client) GetAllFiles(ctx context.Context, fileID int64) ([]*putio.File, error) {
	file, err := c.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	// If it's a single file, return it directly
	if !file.IsDir() {
		return []*putio.File{file}, nil
	}

	var allFiles []*putio.File
	var getFiles func(id int64) error

	getFiles = func(id int64) error {
		files, err := c.GetFiles(ctx, id)
		if err != nil {
			return err
		}

		for _, file := range files {
			if file.IsDir() {
				if err := getFiles(file.ID); err != nil {
					return err
				}
			} else {
				allFiles = append(allFiles, file)
			}
		}
		return nil
	}

	if err := getFiles(fileID); err != nil {
		return nil, err
	}

	return allFiles, nil
}

// GetDownloadURL gets the download URL for a file
func (c *Client) GetDownloadURL(ctx context.Context, fileID int64) (string, error) {
	downloadURL, err := c.client.Files.URL(ctx, fileID, false)
	if err != nil {
		return "", fmt.Errorf("get download URL: %w", err)
	}
	return downloadURL, nil
}
