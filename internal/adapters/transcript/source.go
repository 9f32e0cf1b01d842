// Package transcript implements the transcript source port for local
// transcript files and stdin.
package transcript

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/glean/internal/core/domain"
	"go.trai.ch/glean/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TranscriptSource = (*Source)(nil)

// videoIDPattern matches a YouTube video id (11 URL-safe characters).
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Source reads transcripts from the filesystem or stdin. Acquisition from
// a video platform is an external concern; callers hand this adapter an
// already-extracted transcript.
type Source struct {
	stdin io.Reader
}

// NewSource creates a Source. stdin is injected so tests can supply input.
func NewSource(stdin io.Reader) *Source {
	return &Source{stdin: stdin}
}

// Fetch reads the transcript behind ref ("-" means stdin) and derives a
// stable video identifier: the file's name stem when it looks like a video
// id, otherwise a digest of the normalized text. The identifier is stable
// across requests for identical content, which keeps fingerprints stable.
func (s *Source) Fetch(_ context.Context, ref string) (domain.Transcript, error) {
	var (
		data []byte
		err  error
	)

	if ref == "-" {
		data, err = io.ReadAll(s.stdin)
		if err != nil {
			return domain.Transcript{}, zerr.Wrap(err, "failed to read transcript from stdin")
		}
	} else {
		//nolint:gosec // Path is provided by the caller on the command line
		data, err = os.ReadFile(ref)
		if err != nil {
			return domain.Transcript{}, zerr.With(zerr.Wrap(err, "failed to read transcript"), "ref", ref)
		}
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return domain.Transcript{}, zerr.With(zerr.Wrap(domain.ErrEmptyTranscript, "fetch transcript"), "ref", ref)
	}

	return domain.Transcript{
		VideoID: deriveVideoID(ref, text),
		Text:    text,
	}, nil
}

func deriveVideoID(ref, text string) string {
	if ref != "-" {
		stem := strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
		if videoIDPattern.MatchString(stem) {
			return stem
		}
	}
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	return fmt.Sprintf("local-%016x", xxhash.Sum64String(normalized))
}
