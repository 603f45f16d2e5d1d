// Package catalogstore supplies the verified catalog to the index from
// one of several sources: Postgres, an object-storage bucket, or a
// local JSON file.
package catalogstore

import (
	"log"
	"os"
	"strings"

	"linkscout/internal/catalog"
)

// NewFromEnv picks the catalog source by environment, most durable
// first: CATALOG_PG_DSN, then CATALOG_MINIO_ENDPOINT, then
// CATALOG_FILE_PATH. A source that fails to construct falls through to
// the next one rather than aborting startup.
func NewFromEnv() catalog.Fetcher {
	if dsn := strings.TrimSpace(os.Getenv("CATALOG_PG_DSN")); dsn != "" {
		s, err := NewPostgres(dsn)
		if err == nil {
			return s
		}
		log.Printf("catalogstore: postgres unavailable, falling back: %v", err)
	}
	if endpoint := strings.TrimSpace(os.Getenv("CATALOG_MINIO_ENDPOINT")); endpoint != "" {
		s, err := NewObjectStore(ObjectConfig{
			Endpoint:  endpoint,
			AccessKey: firstNonEmpty(os.Getenv("CATALOG_S3_ACCESS_KEY"), os.Getenv("MINIO_ROOT_USER")),
			SecretKey: firstNonEmpty(os.Getenv("CATALOG_S3_SECRET_KEY"), os.Getenv("MINIO_ROOT_PASSWORD")),
			Bucket:    firstNonEmpty(os.Getenv("CATALOG_S3_BUCKET"), "linkscout-catalog"),
			Object:    firstNonEmpty(os.Getenv("CATALOG_S3_OBJECT"), "catalog.json"),
		})
		if err == nil {
			return s
		}
		log.Printf("catalogstore: object store unavailable, falling back: %v", err)
	}
	path := firstNonEmpty(strings.TrimSpace(os.Getenv("CATALOG_FILE_PATH")), "catalog.json")
	return NewFile(path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
