// file: internals/helpers/oss/oss_client.go
package helperOSS

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func envInt(key string, def int) int {
	if v := getEnv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float32) float32 {
	if v := getEnv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			return float32(f)
		}
	}
	return def
}

// MaxUploadSize guards the multipart readers in the controllers.
var MaxUploadSize = int64(5 * 1024 * 1024)

/* =======================================================================
   WebP options (ENV-driven)
======================================================================= */

type WebPOptions struct {
	MaxW    int     // resize bound, keep-aspect
	MaxH    int
	Quality float32
}

func defaultWebPOptionsFromEnv() WebPOptions {
	return WebPOptions{
		MaxW:    envInt("IMAGE_WEBP_MAX_W", 1600),
		MaxH:    envInt("IMAGE_WEBP_MAX_H", 1600),
		Quality: envFloat("IMAGE_WEBP_QUALITY", 80),
	}
}

/* =======================================================================
   Decode (jpeg/png/webp) with MIME sniff + EXIF orientation fix
======================================================================= */

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	if strings.Contains(ct, "webp") || strings.EqualFold(filepath.Ext(filename), ".webp") {
		return webp.Decode(bytes.NewReader(all))
	}
	// imaging handles jpeg/png and applies EXIF orientation
	return imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
}

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return src
	}
	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func encodeToWebP(img image.Image, opt WebPOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: opt.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConvertToWebP reads a multipart file and returns webp bytes bounded by the
// env-configured dimensions.
func ConvertToWebP(file multipart.File, filename string) ([]byte, error) {
	all, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(all)) > MaxUploadSize {
		return nil, fmt.Errorf("file too large (max %d bytes)", MaxUploadSize)
	}
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}
	opt := defaultWebPOptionsFromEnv()
	img = downscaleIfNeeded(img, opt.MaxW, opt.MaxH)
	return encodeToWebP(img, opt)
}

/* =======================================================================
   OSS service
======================================================================= */

type OSSService struct {
	Client    *oss.Client
	Bucket    *oss.Bucket
	BaseURL   string // public base, e.g. https://bucket.oss-region.aliyuncs.com
	KeyPrefix string
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("OSS_ENDPOINT")
	keyID := getEnv("OSS_ACCESS_KEY_ID")
	keySecret := getEnv("OSS_ACCESS_KEY_SECRET")
	bucketName := getEnv("OSS_BUCKET")
	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, fmt.Errorf("OSS env is incomplete")
	}

	client, err := oss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	base := getEnv("OSS_PUBLIC_BASE_URL")
	if base == "" {
		base = fmt.Sprintf("https://%s.%s", bucketName, strings.TrimPrefix(endpoint, "https://"))
	}
	return &OSSService{
		Client:    client,
		Bucket:    bucket,
		BaseURL:   strings.TrimRight(base, "/"),
		KeyPrefix: strings.Trim(prefix, "/"),
	}, nil
}

func (s *OSSService) UploadStream(ctx context.Context, key string, r io.Reader, contentType string) error {
	opts := []oss.Option{
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	done := make(chan error, 1)
	go func() { done <- s.Bucket.PutObject(key, r, opts...) }()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func (s *OSSService) DeleteObject(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(key)
}

func (s *OSSService) PublicURL(key string) string {
	return s.BaseURL + "/" + strings.TrimLeft(key, "/")
}

// ExtractKeyFromPublicURL turns a stored public URL back into its object key.
func ExtractKeyFromPublicURL(publicURL string) (string, error) {
	i := strings.Index(publicURL, "aliyuncs.com/")
	if i < 0 {
		return "", fmt.Errorf("not an OSS public URL")
	}
	return publicURL[i+len("aliyuncs.com/"):], nil
}

func randHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// UploadProfileImage converts the form file to webp and stores it under
// profiles/{profileID}/{slot}-{rand}.webp, returning the public URL.
// slot is "avatar" or "cover".
func (s *OSSService) UploadProfileImage(ctx context.Context, profileID uuid.UUID, slot string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("missing file")
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := ConvertToWebP(f, fh.Filename)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("profiles/%s/%s-%s.webp", profileID.String(), slot, randHex(6))
	if s.KeyPrefix != "" {
		key = s.KeyPrefix + "/" + key
	}
	if err := s.UploadStream(ctx, key, bytes.NewReader(data), "image/webp"); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}
