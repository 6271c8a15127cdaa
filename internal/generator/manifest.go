package generator

import (
	"context"
	"fmt"
	"strings"
)

const templateConfigPrefix = "$template.config.js."

// manifestValues are the site settings web manifests may reference.
func (s *service) manifestValues(lang string) map[string]string {
	return map[string]string{
		"author":          s.cfg.Site.Author.Name,
		"authorSite":      s.cfg.Site.Author.Site,
		"siteTitle":       s.siteTitle(lang),
		"siteLongTitle":   s.cfg.Site.LongTitle,
		"siteRoot":        s.cfg.SiteRoot,
		"defaultLanguage": s.cfg.DefaultLang,
	}
}

// rewriteTemplateConfig swaps every "$template.config.js.<key>" placeholder,
// where the key runs up to the next double quote, for its value.
func rewriteTemplateConfig(text string, values map[string]string) (string, error) {
	parts := strings.Split(text, templateConfigPrefix)
	var builder strings.Builder
	builder.WriteString(parts[0])
	for _, part := range parts[1:] {
		key, rest, found := strings.Cut(part, `"`)
		value, ok := values[key]
		if !ok {
			return "", fmt.Errorf("generator: unknown template config key %q", key)
		}
		builder.WriteString(value)
		if found {
			builder.WriteString(`"`)
			builder.WriteString(rest)
		}
	}
	return builder.String(), nil
}

// applyManifestConfig fills the site manifest placeholders. The default
// manifest must exist; language manifests are rewritten when present.
func (s *service) applyManifestConfig(ctx context.Context, writer ArtifactWriter, langs []string) error {
	if err := s.rewriteFile(ctx, writer, manifestFile, categoryManifest, "application/manifest+json",
		func(text string) (string, error) {
			return rewriteTemplateConfig(text, s.manifestValues(s.cfg.DefaultLang))
		}); err != nil {
		return err
	}
	for _, lang := range langs {
		if lang == s.cfg.DefaultLang {
			continue
		}
		name := langManifestFile(lang)
		exists, err := writer.Exists(ctx, name)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		values := s.manifestValues(lang)
		if err := s.rewriteFile(ctx, writer, name, categoryManifest, "application/manifest+json",
			func(text string) (string, error) {
				return rewriteTemplateConfig(text, values)
			}); err != nil {
			return err
		}
	}
	return nil
}

// applyBraveRewardsConfig fills the publisher verification file with the
// site host and the rewards token.
func (s *service) applyBraveRewardsConfig(ctx context.Context, writer ArtifactWriter) error {
	return s.rewriteFile(ctx, writer, braveRewardsFile, categoryStatic, "text/plain; charset=utf-8",
		func(text string) (string, error) {
			text = strings.Replace(text, templateConfigPrefix+"_siteRoot", siteHost(s.cfg.SiteRoot), 1)
			text = strings.Replace(text, templateConfigPrefix+"optional.braveRewardsToken", s.cfg.Site.BraveRewardsToken, 1)
			return text, nil
		})
}

// applyRobotsConfig appends the configured disallow rules to robots.txt.
func (s *service) applyRobotsConfig(ctx context.Context, writer ArtifactWriter) error {
	return s.rewriteFile(ctx, writer, robotsFile, categoryRobots, "text/plain; charset=utf-8",
		func(text string) (string, error) {
			return text + "\n" + s.cfg.Site.Disallow, nil
		})
}

// rewriteFile reads name from the output, transforms it and writes it back.
// A missing file fails the step with the read error.
func (s *service) rewriteFile(
	ctx context.Context,
	writer ArtifactWriter,
	name string,
	category writeCategory,
	contentType string,
	transform func(string) (string, error),
) error {
	raw, err := writer.ReadFile(ctx, name)
	if err != nil {
		return fmt.Errorf("generator: read %s: %w", name, err)
	}
	updated, err := transform(string(raw))
	if err != nil {
		return fmt.Errorf("generator: rewrite %s: %w", name, err)
	}
	if err := writer.WriteFile(ctx, WriteFileRequest{
		Path:        name,
		Content:     strings.NewReader(updated),
		Size:        int64(len(updated)),
		Category:    category,
		ContentType: contentType,
		Checksum:    computeHashFromString(updated),
	}); err != nil {
		return fmt.Errorf("generator: write %s: %w", name, err)
	}
	s.logger.Debug("generator file updated", "path", name)
	return nil
}

// siteHost drops the scheme of siteRoot.
func siteHost(siteRoot string) string {
	if _, host, found := strings.Cut(siteRoot, "//"); found {
		return host
	}
	return siteRoot
}
