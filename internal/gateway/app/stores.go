package app

import (
	"fmt"
	"log"

	draftcache "atelier/internal/cache/draft"
	"atelier/internal/gateway/config"
	collectionrepo "atelier/internal/gateway/repository/collection"
	deliverablerepo "atelier/internal/gateway/repository/deliverable"
	draftrepo "atelier/internal/gateway/repository/draft"
	taskrepo "atelier/internal/gateway/repository/task"
)

// draftCacheEntries bounds the in-process draft cache.
const draftCacheEntries = 512

type stores struct {
	Drafts       draftrepo.Store
	Collections  collectionrepo.Store
	Tasks        taskrepo.Store
	Deliverables deliverablerepo.Store
}

// buildStores picks backends by configuration: postgres when a DSN is set,
// JSON files otherwise, with deliverables going to S3 when it is reachable.
func buildStores(cfg *config.Config) (stores, error) {
	var out stores

	if cfg.DatabaseURL != "" {
		drafts, err := draftrepo.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return stores{}, fmt.Errorf("open draft store: %w", err)
		}
		tasks, err := taskrepo.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return stores{}, fmt.Errorf("open task store: %w", err)
		}
		out.Drafts = drafts
		out.Tasks = tasks
	} else {
		log.Printf("no DATABASE_URL, using file-backed stores")
		out.Drafts = draftrepo.NewFileStore(cfg.Files.DraftsPath)
		out.Tasks = taskrepo.NewMemoryStore()
	}

	cached, err := draftcache.NewCachedStore(out.Drafts, draftCacheEntries)
	if err != nil {
		return stores{}, fmt.Errorf("wrap draft cache: %w", err)
	}
	out.Drafts = cached

	out.Collections = collectionrepo.NewFileStore(cfg.Files.CollectionsPath)

	if cfg.Uploads.Enabled {
		s3, err := deliverablerepo.NewS3Store(deliverablerepo.S3Config{
			Endpoint:  cfg.Uploads.Endpoint,
			Region:    cfg.Uploads.Region,
			AccessKey: cfg.Uploads.AccessKey,
			SecretKey: cfg.Uploads.SecretKey,
			Bucket:    cfg.Uploads.Bucket,
			UseSSL:    cfg.Uploads.UseSSL,
		})
		if err != nil {
			log.Printf("uploads store unavailable, keeping deliverables in memory: %v", err)
			out.Deliverables = deliverablerepo.NewMemoryStore()
		} else {
			out.Deliverables = s3
		}
	} else {
		out.Deliverables = deliverablerepo.NewMemoryStore()
	}

	return out, nil
}
