// Package ledger fetches the master sales ledger shared through Google
// Drive, ingests the sales-request sheets exported alongside it, and
// cross-checks both against the cleaned purchase and transfer tables.
package ledger

import "strings"

// DirectDriveURL rewrites a Google Drive share link into its direct
// download form. Anything that is not a share link passes through.
func DirectDriveURL(url string) string {
	const marker = "drive.google.com/file/d/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return url
	}
	id := url[idx+len(marker):]
	if slash := strings.Index(id, "/"); slash >= 0 {
		id = id[:slash]
	}
	return "https://drive.google.com/uc?export=download&id=" + id
}
