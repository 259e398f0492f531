package helper

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	maxImageDimension = 1024
	webpQuality       = 80
)

// ConvertToWebP decodes an uploaded image (jpeg/png/webp), bounds the
// longest side to maxImageDimension and re-encodes as WebP.
func ConvertToWebP(fileHeader *multipart.FileHeader) (*bytes.Buffer, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded image: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode uploaded image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > maxImageDimension || b.Dy() > maxImageDimension {
		img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf, nil
}

// UploadImageToStorage converts the image to WebP and pushes it to the
// storage bucket, returning the public URL.
func UploadImageToStorage(folder string, fileHeader *multipart.FileHeader) (string, error) {
	buf, err := ConvertToWebP(fileHeader)
	if err != nil {
		return "", err
	}

	filename := GenerateUniqueFilename(folder, fileHeader.Filename) + ".webp"
	if err := uploadToStorage("image", filename, "image/webp", buf); err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/image/%s",
		os.Getenv("SUPABASE_PROJECT_URL"),
		url.PathEscape(filename),
	), nil
}

var reUnsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	safe := reUnsafeFilename.ReplaceAllString(originalFilename, "_")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), safe)
}

func uploadToStorage(bucket, filename, contentType string, data *bytes.Buffer) error {
	storageURL := os.Getenv("SUPABASE_PROJECT_URL")
	storageKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	if storageURL == "" || storageKey == "" {
		return fmt.Errorf("SUPABASE_PROJECT_URL or SUPABASE_SERVICE_ROLE_KEY not set")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", storageURL, bucket, filename)

	req, err := http.NewRequest(http.MethodPut, endpoint, data)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+storageKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("send upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// DeleteImageFromStorage removes a previously uploaded object.
func DeleteImageFromStorage(bucket, path string) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		os.Getenv("SUPABASE_PROJECT_URL"), bucket, path)

	req, err := http.NewRequest(http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete failed with status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
