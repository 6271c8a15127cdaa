package generator

import (
	"path"
	"strings"

	"github.com/goliatone/go-devpot/internal/routes"
)

const (
	notFoundFile     = "404.html"
	robotsFile       = "robots.txt"
	manifestFile     = "site.webmanifest"
	braveRewardsFile = ".well-known/brave-rewards-verification.txt"
)

// outputPath maps a route path onto the file that serves it. The 404 page is
// written at the output root where static hosts look it up.
func outputPath(route routes.Route) string {
	if route.Kind == routes.KindNotFound {
		return notFoundFile
	}
	clean := strings.Trim(strings.TrimSpace(route.Path), "/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}

func sitemapFile(staging bool) string {
	if staging {
		return "sitemap.staging.xml"
	}
	return "sitemap.xml"
}

func feedFile(lang, defaultLang string) string {
	if lang == defaultLang {
		return "feed.xml"
	}
	return path.Join(lang, "feed.xml")
}

func searchIndexFile(lang string) string {
	return path.Join("search", lang+".json")
}

func langManifestFile(lang string) string {
	return "site-" + lang + ".webmanifest"
}
