package imagekit

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/tejas-exe/droply/internal/config"
	"github.com/tejas-exe/droply/internal/services"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const defaultUploadURL = "https://upload.imagekit.io/api/v1/files/upload"

// Client talks to the ImageKit REST API. It is constructed once at startup
// from configuration and injected wherever uploads are needed.
type Client struct {
	http        *resty.Client
	publicKey   string
	privateKey  string
	urlEndpoint string
	uploadURL   string
}

// AuthParams are the client-side upload authentication parameters ImageKit
// expects: a one-time token, an expiry timestamp and an HMAC-SHA1 signature
// over token+expire keyed with the private key.
type AuthParams struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

type uploadResponse struct {
	FileID       string `json:"fileId"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	FilePath     string `json:"filePath"`
	Size         int64  `json:"size"`
	FileType     string `json:"fileType"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// NewClient builds an ImageKit client from configuration.
func NewClient(cfg config.ImageKit) *Client {
	return &Client{
		http:        resty.New().SetTimeout(30 * time.Second),
		publicKey:   cfg.PublicKey,
		privateKey:  cfg.PrivateKey,
		urlEndpoint: cfg.URLEndpoint,
		uploadURL:   defaultUploadURL,
	}
}

// Upload sends the payload to ImageKit's upload endpoint and returns the
// resulting URL, path and thumbnail.
func (c *Client) Upload(ctx context.Context, data []byte, fileName, folder string) (*services.UploadResult, error) {
	var result uploadResponse
	var apiErr errorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.privateKey, "").
		SetFileReader("file", fileName, bytes.NewReader(data)).
		SetFormData(map[string]string{
			"fileName":          fileName,
			"folder":            folder,
			"useUniqueFileName": "false",
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post(c.uploadURL)
	if err != nil {
		return nil, fmt.Errorf("imagekit upload request: %w", err)
	}
	if resp.IsError() {
		if apiErr.Message != "" {
			return nil, fmt.Errorf("imagekit upload: %s (status %d)", apiErr.Message, resp.StatusCode())
		}
		return nil, fmt.Errorf("imagekit upload: status %d", resp.StatusCode())
	}

	return &services.UploadResult{
		URL:          result.URL,
		FilePath:     result.FilePath,
		ThumbnailURL: result.ThumbnailURL,
	}, nil
}

// AuthenticationParameters returns signed parameters a browser client can use
// to upload directly to ImageKit.
func (c *Client) AuthenticationParameters() AuthParams {
	token := uuid.New().String()
	expire := time.Now().Add(30 * time.Minute).Unix()
	return AuthParams{
		Token:     token,
		Expire:    expire,
		Signature: c.sign(token, expire),
	}
}

func (c *Client) sign(token string, expire int64) string {
	mac := hmac.New(sha1.New, []byte(c.privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
