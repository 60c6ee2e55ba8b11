package downloadmgr

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dchest/uniuri"
)

// ErrNotFound is returned for 404 responses
var ErrNotFound = errors.New("not found")

// HTTPItem is a URL, target pair with optional properties that will be downloaded
// using http(s)
type HTTPItem struct {
	Client *http.Client
	URL    string
	Target string
	// Sha1 is the expected checksum. Empty skips the check unless VerifyRemoteSha1 is set
	Sha1 string
	// VerifyRemoteSha1 fetches URL + ".sha1" and checks against it if it exists
	VerifyRemoteSha1 bool
}

// ErrInvalidSha is returned when the downloaded file's sha1 sum does not match the expected one
type ErrInvalidSha struct {
	FileName    string
	ExpectedSha string
	ActualSha   string
}

func (e *ErrInvalidSha) Error() string {
	return fmt.Sprintf(
		"File corrupted: %s sha1 is invalid.\n\texpected to be \"%s\"\n\tbut actually is \"%s\"\n",
		e.FileName,
		e.ExpectedSha,
		e.ActualSha,
	)
}

// StatusError is returned for unexpected http status codes
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invalid status code: %s from %s", e.Status, e.URL)
}

// Is makes errors.Is(err, ErrNotFound) work for 404 responses
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// NewHTTPItem creates a Item to be queued that will download the file using HTTP(S)
func NewHTTPItem(client *http.Client, URL string, Target string) *HTTPItem {
	if URL == "" {
		panic("Download URL can not be empty")
	}
	if Target == "" {
		panic("Target can not be empty")
	}
	return &HTTPItem{Client: client, URL: URL, Target: Target}
}

func (i *HTTPItem) client() *http.Client {
	if i.Client == nil {
		return http.DefaultClient
	}
	return i.Client
}

// Download downloads the item to the defined target using http.
// The file is written to a temporary file first and renamed after all checks passed
func (i *HTTPItem) Download(ctx context.Context) error {
	err := os.MkdirAll(filepath.Dir(i.Target), os.ModePerm)
	if err != nil {
		return err
	}

	expected := i.Sha1
	if expected == "" && i.VerifyRemoteSha1 {
		expected, err = i.remoteSha1(ctx)
		if err != nil {
			return err
		}
	}

	res, err := i.get(ctx, i.URL)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	tmp := i.Target + ".part-" + uniuri.New()
	dest, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	hasher := sha1.New()
	_, err = io.Copy(io.MultiWriter(dest, hasher), res.Body)
	if err == nil {
		err = dest.Sync()
	}
	if closeErr := dest.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("error while fetching %s: %w", i.URL, err)
	}

	if expected != "" {
		actual := fmt.Sprintf("%x", hasher.Sum(nil))
		if !strings.EqualFold(actual, expected) {
			return &ErrInvalidSha{filepath.Base(i.Target), expected, actual}
		}
	}

	return os.Rename(tmp, i.Target)
}

func (i *HTTPItem) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	res, err := i.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while fetching %s: %w", url, err)
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: res.StatusCode, Status: res.Status}
	}
	return res, nil
}

// remoteSha1 returns the content of URL.sha1 or "" if there is none
func (i *HTTPItem) remoteSha1(ctx context.Context) (string, error) {
	res, err := i.get(ctx, i.URL+".sha1")
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	buf, err := io.ReadAll(io.LimitReader(res.Body, 1024))
	if err != nil {
		return "", err
	}
	return ParseSha1(string(buf)), nil
}

// ParseSha1 extracts the checksum from the content of a .sha1 file.
// Some repositories append the file name ("<sum>  file.jar")
func ParseSha1(content string) string {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// Exists reports if url can be fetched (using a HEAD request)
func Exists(ctx context.Context, client *http.Client, url string) (bool, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, "HEAD", url, nil)
	if err != nil {
		return false, err
	}
	res, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("error while checking %s: %w", url, err)
	}
	res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
		return true, nil
	case res.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, &StatusError{URL: url, StatusCode: res.StatusCode, Status: res.Status}
	}
}

// ReadAll fetches url and returns at most limit bytes of the body
func ReadAll(ctx context.Context, client *http.Client, url string, limit int64) ([]byte, error) {
	item := &HTTPItem{Client: client, URL: url}
	res, err := item.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	return io.ReadAll(io.LimitReader(res.Body, limit))
}
