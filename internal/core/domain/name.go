package domain

import (
	"fmt"
	"strings"
)

// ParseAuthorName splits an author name into first and last components.
// Accepted shapes:
//
//	"John Smith"   -> ("John", "Smith")
//	"Smith, John"  -> ("John", "Smith")
//	"Jane Doe Jr." -> ("Jane", "Doe Jr.")
//	"Single"       -> ("", "Single")
//
// Suffixes (Jr., Sr., III) stay attached to the last-name component.
func ParseAuthorName(author string) (first, last string) {
	author = strings.TrimSpace(author)

	// "Last, First" form.
	if before, after, found := strings.Cut(author, ","); found {
		return strings.TrimSpace(after), strings.TrimSpace(before)
	}

	parts := strings.Fields(author)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// AuthorSlug builds the grouping-key directory name for an author:
// lastname-firstname, both slugified, with the suffix (if any) kept on
// the last-name side. An empty author maps to "unknown".
func AuthorSlug(author string) string {
	first, last := ParseAuthorName(author)
	switch {
	case first != "" && last != "":
		return Slugify(last) + "-" + Slugify(first)
	case last != "":
		return Slugify(last)
	default:
		return "unknown"
	}
}

// BookFolderPath returns the item path for a book relative to the
// books directory: "{author-slug}/{title-slug}".
func BookFolderPath(title, author string) string {
	return AuthorSlug(author) + "/" + Slugify(title)
}

// ChannelFolderName returns the grouping directory name for a channel:
// "{channel-slug}__{channelID}" with the slug capped at 50 bytes.
func ChannelFolderName(channelID, channelTitle string) string {
	return fmt.Sprintf("%s__%s", truncateSlug(Slugify(channelTitle), 50), channelID)
}

// VideoFolderName returns the item directory name for a video:
// "{videoID}__{title-slug}" with the slug capped at 50 bytes.
func VideoFolderName(videoID, title string) string {
	return fmt.Sprintf("%s__%s", videoID, truncateSlug(Slugify(title), 50))
}
