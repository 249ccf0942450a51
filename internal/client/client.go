// Package client talks to the portfolio site's admin area over HTTP.
//
// The admin area is session based: the login form and the photos page set
// an anti-forgery cookie, and state-changing requests echo that cookie's
// value in a header. The client keeps all cookies in a jar so the token is
// always read from the most recent page load.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"folioadmin/internal/config"
	"folioadmin/internal/domain"
)

const (
	// TileSelector matches photo tiles on the admin photos page
	TileSelector = "[data-photo-id]"
	// TileIDAttr is the tile attribute holding the photo identifier
	TileIDAttr = "data-photo-id"

	csrfFormField = "csrf_token"
)

var (
	// ErrServerRejected matches any non-2xx answer from the admin area
	ErrServerRejected = errors.New("server rejected request")
	// ErrUnsupportedImage is returned before uploading a file the admin area would refuse
	ErrUnsupportedImage = errors.New("unsupported image type")
	// ErrNotAuthenticated is returned when the admin area sends us back to the login form
	ErrNotAuthenticated = errors.New("not authenticated")
)

// StatusError carries the HTTP status of a rejected request
type StatusError struct {
	Op     string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}

// Is reports whether target is ErrServerRejected
func (e *StatusError) Is(target error) bool {
	return target == ErrServerRejected
}

// Options configures a Client
type Options struct {
	BaseURL       string
	LoginFormPath string
	LoginPath     string
	PhotosPath    string
	DeletePath    string
	UploadPath    string
	CSRFCookie    string
	CSRFHeader    string
	Timeout       time.Duration // 0 disables the client timeout
	HTTPClient    *http.Client  // optional; its Jar is replaced
	Logger        *slog.Logger
}

// Client is an admin-area HTTP client
type Client struct {
	base   *url.URL
	http   *http.Client
	opts   Options
	logger *slog.Logger
}

// New creates a client with a fresh cookie jar
func New(opts Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	hc := &http.Client{}
	if opts.HTTPClient != nil {
		copied := *opts.HTTPClient
		hc = &copied
	}
	hc.Jar = jar
	if opts.Timeout > 0 {
		hc.Timeout = opts.Timeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base:   base,
		http:   hc,
		opts:   opts,
		logger: logger.With("component", "client"),
	}, nil
}

// NewFromConfig creates a client from the server section of the config
func NewFromConfig(cfg config.ServerConfig, logger *slog.Logger) (*Client, error) {
	return New(Options{
		BaseURL:       cfg.BaseURL,
		LoginFormPath: cfg.LoginFormPath,
		LoginPath:     cfg.LoginPath,
		PhotosPath:    cfg.PhotosPath,
		DeletePath:    cfg.DeletePath,
		UploadPath:    cfg.UploadPath,
		CSRFCookie:    cfg.CSRFCookie,
		CSRFHeader:    cfg.CSRFHeader,
		Timeout:       time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		Logger:        logger,
	})
}

// Cookie returns the value of the named cookie for the admin area
func (c *Client) Cookie(name string) (string, bool) {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == name {
			return ck.Value, true
		}
	}
	return "", false
}

// Login signs in with the admin credentials. The login form is loaded
// first so its anti-forgery cookie and hidden token are available.
func (c *Client) Login(ctx context.Context, email, password string) error {
	formURL := c.resolve(c.opts.LoginFormPath)
	doc, _, err := c.getDocument(ctx, "load login form", formURL)
	if err != nil {
		return err
	}

	token, _ := doc.Find(fmt.Sprintf("input[name=%q]", csrfFormField)).Attr("value")
	if token == "" {
		// some templates only set the cookie
		token, _ = c.Cookie(c.opts.CSRFCookie)
	}

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)
	form.Set(csrfFormField, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(c.opts.LoginPath).String(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.setCSRFHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send login request: %w", err)
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: "login", Code: resp.StatusCode, Status: resp.Status}
	}

	c.logger.Info("logged in", "email", email)
	return nil
}

// ListPhotos loads the admin photos page and returns its tiles in page order
func (c *Client) ListPhotos(ctx context.Context) (*domain.Page, error) {
	doc, finalURL, err := c.getDocument(ctx, "load photos page", c.resolve(c.opts.PhotosPath))
	if err != nil {
		return nil, err
	}
	if c.opts.LoginFormPath != "" && finalURL.Path == c.resolve(c.opts.LoginFormPath).Path {
		return nil, ErrNotAuthenticated
	}

	page := &domain.Page{}
	doc.Find(TileSelector).Each(func(_ int, s *goquery.Selection) {
		raw, _ := s.Attr(TileIDAttr)
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			c.logger.Warn("skipping tile with invalid photo id", "raw", raw, "error", err)
			return
		}
		src, _ := s.Find("img").Attr("src")
		page.Photos = append(page.Photos, domain.Photo{ID: id, Path: src})
	})

	c.logger.Debug("photos page loaded", "count", len(page.Photos))
	return page, nil
}

// DeletePhotos sends one bulk-delete request for ids, in order. Any 2xx
// answer is full success; anything else is a *StatusError. Transport
// failures are returned wrapped.
func (c *Client) DeletePhotos(ctx context.Context, ids []int) error {
	body, err := json.Marshal(domain.DeletePayload{PhotoIDs: ids})
	if err != nil {
		return fmt.Errorf("encode delete payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(c.opts.DeletePath).String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setCSRFHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send delete request: %w", err)
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: "delete photos", Code: resp.StatusCode, Status: resp.Status}
	}
	return nil
}

// PhotoUpload is one file for the upload form
type PhotoUpload struct {
	Title      string
	Collection string
	FileName   string
	Data       io.Reader
}

// imageTypes are the content types the admin area accepts
var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// UploadPhoto submits the upload form with a single image. The form page is
// loaded first for a fresh anti-forgery token, like Login.
func (c *Client) UploadPhoto(ctx context.Context, up PhotoUpload) error {
	data, err := io.ReadAll(up.Data)
	if err != nil {
		return fmt.Errorf("read %s: %w", up.FileName, err)
	}
	if len(data) == 0 {
		return fmt.Errorf("%s is empty", up.FileName)
	}
	contentType := imageContentType(up.FileName, data)
	if !imageTypes[contentType] {
		return fmt.Errorf("%w: %s is %s", ErrUnsupportedImage, up.FileName, contentType)
	}

	formURL := c.resolve(c.opts.UploadPath)
	doc, finalURL, err := c.getDocument(ctx, "load upload form", formURL)
	if err != nil {
		return err
	}
	if c.opts.LoginFormPath != "" && finalURL.Path == c.resolve(c.opts.LoginFormPath).Path {
		return ErrNotAuthenticated
	}
	token, _ := doc.Find(fmt.Sprintf("input[name=%q]", csrfFormField)).Attr("value")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("title", up.Title)
	_ = mw.WriteField("collection", up.Collection)
	if token != "" {
		_ = mw.WriteField(csrfFormField, token)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     "file",
		"filename": filepath.Base(up.FileName),
	}))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, formURL.String(), &body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setCSRFHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send upload request: %w", err)
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: "upload photo", Code: resp.StatusCode, Status: resp.Status}
	}
	c.logger.Info("photo uploaded", "file", up.FileName, "title", up.Title, "collection", up.Collection)
	return nil
}

// imageContentType prefers the file extension and falls back to sniffing
func imageContentType(name string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt
		}
	}
	return http.DetectContentType(data)
}

func (c *Client) setCSRFHeader(req *http.Request) {
	token, ok := c.Cookie(c.opts.CSRFCookie)
	if !ok {
		c.logger.Warn("anti-forgery cookie not set", "cookie", c.opts.CSRFCookie)
		return
	}
	req.Header.Set(c.opts.CSRFHeader, token)
}

func (c *Client) getDocument(ctx context.Context, op string, u *url.URL) (*goquery.Document, *url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &StatusError{Op: op, Code: resp.StatusCode, Status: resp.Status}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: parse html: %w", op, err)
	}
	return doc, resp.Request.URL, nil
}

func (c *Client) resolve(path string) *url.URL {
	return c.base.ResolveReference(&url.URL{Path: path})
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
