package waiver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/core/storage"
	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/feature/waiver/match"
)

// LoadPool downloads every PDF under the given bucket prefix and returns the
// candidate pool keyed by base filename.
func LoadPool(ctx context.Context, client storage.Client, bucket, prefix string) (map[string][]byte, error) {
	pool := make(map[string][]byte)

	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list waiver pool: %w", obj.Err)
		}
		if !strings.EqualFold(path.Ext(obj.Key), ".pdf") {
			continue
		}

		rc, err := client.GetObject(ctx, bucket, obj.Key, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", obj.Key, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", obj.Key, err)
		}

		pool[path.Base(obj.Key)] = data
	}

	return pool, nil
}

// LoadFolder reads every PDF in a local directory into a candidate pool
// keyed by filename. Subdirectories are not descended into.
func LoadFolder(dir string) (map[string][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", dir, err)
	}

	pool := make(map[string][]byte)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		pool[entry.Name()] = data
	}

	return pool, nil
}

// ValidateFolder checks every file in a local folder against the strict
// waiver filename convention. A stray file of any extension fails the check;
// batch runs abort here before any matching happens.
func ValidateFolder(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read folder %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	if _, invalid := match.ValidateFilenames(names, nil); len(invalid) > 0 {
		return &InvalidFilenamesError{Names: invalid}
	}
	return nil
}

// UploadMerged stores a merged output document in the bucket.
func UploadMerged(ctx context.Context, client storage.Client, bucket, objectName string, data []byte) error {
	_, err := client.PutObject(ctx, bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return nil
}
