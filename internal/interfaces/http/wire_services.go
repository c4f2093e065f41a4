package http

import (
	"fmt"

	"github.com/autocrm/autocrm/internal/application/crm"
	"github.com/autocrm/autocrm/internal/infrastructure/backend"
	"github.com/autocrm/autocrm/internal/infrastructure/permission"
	"github.com/autocrm/autocrm/internal/shared/services/markdown"
)

func (c *Container) initServices() error {
	c.authClient = backend.NewAuthClient(&c.cfg.Backend, c.log)
	c.storageClient = backend.NewStorageClient(&c.cfg.Backend, c.log)
	c.tokenVerifier = backend.NewTokenVerifier(c.cfg.Backend.JWTSecret)

	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	opts := crm.DefaultOptions()
	if c.cfg.Backend.ProfileBucket != "" {
		opts.ProfileBucket = c.cfg.Backend.ProfileBucket
	}
	if c.cfg.Backend.FileBucket != "" {
		opts.FileBucket = c.cfg.Backend.FileBucket
	}
	opts.EmailRedirectURL = c.cfg.Server.EmailRedirectURL
	if c.cfg.Cache.UserTTL > 0 {
		opts.UserCacheTTL = c.cfg.Cache.UserTTL
	}
	if c.cfg.Cache.UserMaxEntries > 0 {
		opts.UserCacheMaxEntries = c.cfg.Cache.UserMaxEntries
	}

	c.crmService = crm.NewService(crm.Deps{
		Tickets:  c.repos.ticketRepo,
		Messages: c.repos.messageRepo,
		Tags:     c.repos.tagRepo,
		Files:    c.repos.fileRepo,
		Users:    c.repos.userRepo,
		Queues:   c.repos.queueRepo,
		Auth:     c.authClient,
		Storage:  c.storageClient,
		Database: sqlDB,
		Logger:   c.log,
	}, opts)

	// the policy lives in memory unless persistence is switched on
	policyDB := c.db
	if !c.cfg.Permission.Persist {
		policyDB = nil
	}
	c.enforcer, err = permission.NewEnforcer(policyDB, c.log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}

	c.markdown = markdown.NewMarkdownService()
	return nil
}
