// Package media extracts evenly spaced frames from a video for multimodal
// analysis. Capture is strictly sequential: each seek must complete before
// the next frame is grabbed, so the sampler drives a FrameSource one
// timestamp at a time instead of extracting in parallel.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"time"
)

// DefaultFrameCount is the number of frames sampled from a video.
const DefaultFrameCount = 10

const jpegQuality = 80

// FrameSource is a seekable video. Seek positions the source at a
// timestamp; Capture renders the frame at the current position. A source
// is not restartable: a fresh analysis opens a fresh source.
type FrameSource interface {
	Duration() time.Duration
	Seek(ts time.Duration) error
	Capture() (image.Image, error)
}

// Frame is one captured, compressed frame.
type Frame struct {
	Timestamp time.Duration
	Data      []byte
	MimeType  string
}

// SampleFrames captures count frames at timestamps 0, D/count, 2D/count, …
// in order, JPEG-compressing each. count defaults to DefaultFrameCount
// when non-positive.
func SampleFrames(ctx context.Context, src FrameSource, count int) ([]Frame, error) {
	if count <= 0 {
		count = DefaultFrameCount
	}

	duration := src.Duration()
	frames := make([]Frame, 0, count)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ts := duration * time.Duration(i) / time.Duration(count)
		if err := src.Seek(ts); err != nil {
			return nil, fmt.Errorf("seek to %s failed: %w", ts, err)
		}

		img, err := src.Capture()
		if err != nil {
			return nil, fmt.Errorf("capture at %s failed: %w", ts, err)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("encode at %s failed: %w", ts, err)
		}

		frames = append(frames, Frame{
			Timestamp: ts,
			Data:      buf.Bytes(),
			MimeType:  "image/jpeg",
		})
	}

	return frames, nil
}
