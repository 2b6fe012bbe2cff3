package generator

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"
)

const maxFeedItems = 100

type feedItem struct {
	Title       string
	Summary     string
	Link        string
	GUID        string
	PublishedAt time.Time
}

func buildFeedItems(site SiteMetadata, pages []RenderedPage, generatedAt time.Time) []feedItem {
	items := make([]feedItem, 0, len(pages))
	seen := map[string]struct{}{}

	for _, page := range pages {
		if page.Node == nil {
			continue
		}
		guid := page.Node.ID.String()
		if _, ok := seen[guid]; ok {
			continue
		}
		seen[guid] = struct{}{}

		title := strings.TrimSpace(page.Node.Title)
		if title == "" {
			title = page.Route
		}

		published := page.Node.Date()
		if published.IsZero() {
			published = generatedAt
		}

		items = append(items, feedItem{
			Title:       title,
			Summary:     normalizeWhitespace(page.Node.FrontMatter.Summary),
			Link:        absoluteURL(site.BaseURL, page.Route),
			GUID:        guid,
			PublishedAt: published,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].PublishedAt.Equal(items[j].PublishedAt) {
			return items[i].GUID < items[j].GUID
		}
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	if len(items) > maxFeedItems {
		items = append([]feedItem(nil), items[:maxFeedItems]...)
	}
	return items
}

func buildRSSFeed(site SiteMetadata, items []feedItem, generatedAt time.Time) string {
	baseLink := baseURLWithFallback(site.BaseURL)
	title := strings.TrimSpace(site.Title)
	if title == "" {
		title = baseLink
	}
	description := strings.TrimSpace(site.Description)
	if description == "" {
		description = "Latest updates"
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(title)))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(baseLink)))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(description)))
	builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", generatedAt.UTC().Format(time.RFC1123Z)))
	for _, item := range items {
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(item.Link)))
		builder.WriteString(fmt.Sprintf("      <guid isPermaLink=\"false\">%s</guid>\n", escapeXML(item.GUID)))
		builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", item.PublishedAt.UTC().Format(time.RFC1123Z)))
		if item.Summary != "" {
			builder.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(item.Summary)))
		}
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString(`</rss>` + "\n")
	return builder.String()
}

func absoluteURL(base, route string) string {
	targetBase := baseURLWithFallback(base)
	normalized := strings.TrimSpace(route)
	if normalized == "" {
		return targetBase
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return targetBase + normalized
}

func normalizeWhitespace(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	return strings.Join(strings.Fields(input), " ")
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}
