package keyframe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"vidalign/internal/fileutil"
	"vidalign/internal/imaging"
	"vidalign/internal/logging"
	"vidalign/internal/textutil"
)

// FrameFileName builds the on-disk name for the ordinal-th keyframe of video.
func FrameFileName(videoPath string, ordinal int, k Keyframe, format string) string {
	return fmt.Sprintf("%s_frame%03d_%s_%.2fs.%s", textutil.VideoStem(videoPath), ordinal, textutil.SanitizeToken(string(k.Method)), k.Timestamp, format)
}

// save writes each keyframe image to disk, replacing the payload with its
// path. Failures are logged and leave the keyframe untouched.
func (e *Extractor) save(ctx context.Context, videoPath string, frames []Keyframe, opts Options, logger *slog.Logger) {
	dir, err := outputDir(opts.OutputDir)
	if err != nil {
		logging.WarnWithContext(logger, "cannot prepare frame output directory", "keyframe_save_failed",
			logging.String("output_dir", opts.OutputDir),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.output_dir permissions"),
			logging.String(logging.FieldImpact, "keyframes kept in memory only"),
		)
		return
	}

	saved := 0
	for i := range frames {
		if ctx.Err() != nil {
			return
		}
		k := &frames[i]
		if k.Image == nil {
			continue
		}
		path := filepath.Join(dir, FrameFileName(videoPath, i, *k, opts.ImageFormat))
		img := k.Image
		err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
			return imaging.Encode(w, img, opts.ImageFormat)
		})
		if err != nil {
			logging.WarnWithContext(logger, "failed to save keyframe", "keyframe_save_failed",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "keyframe kept in memory only"),
			)
			continue
		}
		k.Image = nil
		k.Path = path
		saved++
	}
	logger.Info("keyframes saved", logging.String("output_dir", dir), logging.Int("saved", saved))
}

func outputDir(dir string) (string, error) {
	if dir == "" {
		return os.MkdirTemp("", "vidalign-frames-")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
