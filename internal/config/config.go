package config

import (
	"fmt"
	"path/filepath"

	"github.com/semio-community/semio-community.github.io-sub001/internal/schema"
)

// Config is the sitehub.yaml configuration of one site repository.
type Config struct {
	// Site is the key of the site this repository builds.
	Site string `mapstructure:"site"`
	// Hub is the path of the content hub repository.
	Hub        string `mapstructure:"hub"`
	ContentDir string `mapstructure:"contentDir"`
	// Sites maps every site key to its repository path, used by `sync push --all`.
	Sites       map[string]string `mapstructure:"sites"`
	Collections []string          `mapstructure:"collections"`
	CMS         CMSConfig         `mapstructure:"cms"`
	Index       IndexConfig       `mapstructure:"index"`
}

type CMSConfig struct {
	Backend      string `mapstructure:"backend"`
	Repo         string `mapstructure:"repo"`
	Branch       string `mapstructure:"branch"`
	MediaFolder  string `mapstructure:"mediaFolder"`
	PublicFolder string `mapstructure:"publicFolder"`
	SiteURL      string `mapstructure:"siteURL"`
	LocalBackend bool   `mapstructure:"localBackend"`
	Output       string `mapstructure:"output"`
}

type IndexConfig struct {
	Output string `mapstructure:"output"`
}

// Validate checks the fields every command relies on.
func (c Config) Validate() error {
	if err := schema.CheckSite(c.Site); err != nil {
		return fmt.Errorf("config site: %w", err)
	}
	for key := range c.Sites {
		if err := schema.CheckSite(key); err != nil {
			return fmt.Errorf("config sites: %w", err)
		}
	}
	if _, err := schema.Default().Select(c.Collections); err != nil {
		return fmt.Errorf("config collections: %w", err)
	}
	return nil
}

// SiteContentRoot is the collections root of the current site repository.
func (c Config) SiteContentRoot() string {
	return c.ContentDir
}

// HubContentRoot is the collections root inside the hub repository.
func (c Config) HubContentRoot() string {
	return filepath.Join(c.Hub, c.ContentDir)
}

// SiteRoots maps site keys to content roots. The current site is always
// included, rooted at the working directory.
func (c Config) SiteRoots() map[string]string {
	roots := map[string]string{c.Site: c.ContentDir}
	for key, repo := range c.Sites {
		if key == c.Site {
			continue
		}
		roots[key] = filepath.Join(repo, c.ContentDir)
	}
	return roots
}
