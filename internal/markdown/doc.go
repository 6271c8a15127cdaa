// Package markdown loads blog content from disk: YAML front matter, the
// language a file belongs to, and the goldmark rendering of its body.
package markdown
