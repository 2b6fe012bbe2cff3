// Package markdown implements the source ingestion side of the build
// pipeline: discovering markdown files, extracting front matter, rendering
// bodies to HTML, and syncing the results into the content store.
package markdown
