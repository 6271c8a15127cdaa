package i18n

// Config holds the language settings the translator needs.
type Config struct {
	DefaultLang string
	// Site values are exposed as translation keys in every language, the
	// way "site title" and "twitter author" resolve to configuration.
	Site map[string]string
}

// FromSiteConfig builds a Config from the site level settings.
func FromSiteConfig(defaultLang, siteTitle, twitterAuthor string) Config {
	site := map[string]string{
		"defaultLang": defaultLang,
		"site title":  siteTitle,
	}
	if twitterAuthor != "" {
		site["twitter author"] = twitterAuthor
	}
	return Config{
		DefaultLang: defaultLang,
		Site:        site,
	}
}
