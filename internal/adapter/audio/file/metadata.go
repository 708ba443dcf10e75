package file

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/tejashwikalptaru/govis/internal/domain"
)

// readInfo fills SourceInfo from the file name and any embedded tags.
// The reader is rewound afterward so decoding starts at the beginning.
func readInfo(path string, r io.ReadSeeker) (domain.SourceInfo, error) {
	info := domain.SourceInfo{
		Kind: domain.SourcePlayableMedia,
		Name: filepath.Base(path),
	}

	// Missing or unreadable tags leave the file name as the display text.
	if metadata, err := tag.ReadFrom(r); err == nil && metadata != nil {
		info.Title = strings.TrimSpace(metadata.Title())
		info.Artist = strings.TrimSpace(metadata.Artist())
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return info, err
	}
	return info, nil
}
