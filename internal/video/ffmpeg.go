package video

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"os/exec"
	"strconv"
	"strings"

	draptolib "github.com/five82/drapto"

	"vidalign/internal/logging"
	"vidalign/internal/media/ffprobe"
	"vidalign/internal/services"
)

// CropDetector returns an ffmpeg crop expression ("w:h:x:y") for path, or ""
// when no crop is needed.
type CropDetector func(ctx context.Context, path string) (string, error)

// DraptoCropDetector samples the video with drapto and returns its crop
// filter when one is required.
func DraptoCropDetector(ctx context.Context, path string) (string, error) {
	result, err := draptolib.DetectCrop(ctx, path)
	if err != nil {
		return "", err
	}
	if result == nil || !result.Required {
		return "", nil
	}
	return result.CropFilter, nil
}

// FFmpegOpener opens videos by probing them with ffprobe and streaming raw
// RGB frames from an ffmpeg subprocess.
type FFmpegOpener struct {
	FFmpegBinary  string
	FFprobeBinary string
	// AutoCrop removes letterbox bars before frames reach the analyzers.
	AutoCrop     bool
	CropDetector CropDetector
	Logger       *slog.Logger
}

func (o *FFmpegOpener) Open(ctx context.Context, path string) (Source, error) {
	logger := logging.WithContext(ctx, logging.NewComponentLogger(o.Logger, "video"))

	probe, err := ffprobe.Inspect(ctx, o.FFprobeBinary, path)
	if err != nil {
		return nil, services.NewMediaProcessingError(path, "probe", err)
	}
	if probe.VideoStreamCount() == 0 {
		return nil, services.NewMediaProcessingError(path, "probe", errors.New("no video stream"))
	}
	fps := probe.FrameRate()
	if fps <= 0 {
		return nil, services.NewMediaProcessingError(path, "probe", errors.New("unknown frame rate"))
	}
	width, height := probe.Dimensions()
	if width <= 0 || height <= 0 {
		return nil, services.NewMediaProcessingError(path, "probe", fmt.Errorf("invalid dimensions %dx%d", width, height))
	}

	src := &ffmpegSource{
		ctx:        ctx,
		binary:     strings.TrimSpace(o.FFmpegBinary),
		path:       path,
		fps:        fps,
		frameCount: probe.FrameCount(),
		duration:   probe.DurationSeconds(),
		width:      width,
		height:     height,
		logger:     logger,
	}
	if src.binary == "" {
		src.binary = "ffmpeg"
	}
	if src.duration <= 0 || math.IsNaN(src.duration) {
		src.duration = float64(src.frameCount) / fps
	}

	if o.AutoCrop {
		detect := o.CropDetector
		if detect == nil {
			detect = DraptoCropDetector
		}
		crop, err := detect(ctx, path)
		switch {
		case err != nil:
			logging.WarnWithContext(logger, "crop detection failed; analysing full frame", "crop_detection_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "disable decoder.auto_crop if drapto cannot read this file"),
				logging.String(logging.FieldImpact, "letterbox bars may lower brightness statistics"),
			)
		case crop != "":
			w, h, ok := parseCrop(crop)
			if ok {
				src.crop = strings.TrimPrefix(crop, "crop=")
				src.width, src.height = w, h
				logger.Debug("applying crop", logging.String("crop", src.crop))
			}
		}
	}
	src.buf = make([]byte, src.width*src.height*3)

	logger.Debug("video opened",
		logging.Int("frames", src.frameCount),
		logging.Float64("fps", fps),
		logging.Float64("duration", src.duration),
		logging.Int("width", src.width),
		logging.Int("height", src.height),
	)
	return src, nil
}

func parseCrop(expr string) (int, int, bool) {
	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(expr), "crop="), ":")
	if len(parts) < 2 {
		return 0, 0, false
	}
	w, err1 := strconv.Atoi(parts[0])
	h, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

type ffmpegSource struct {
	ctx        context.Context
	binary     string
	path       string
	fps        float64
	frameCount int
	duration   float64
	width      int
	height     int
	crop       string
	logger     *slog.Logger

	pos    int
	cmd    *exec.Cmd
	stdout io.ReadCloser
	reader *bufio.Reader
	stderr strings.Builder
	buf    []byte
	closed bool
}

func (s *ffmpegSource) Path() string      { return s.path }
func (s *ffmpegSource) FrameCount() int   { return s.frameCount }
func (s *ffmpegSource) FPS() float64      { return s.fps }
func (s *ffmpegSource) Duration() float64 { return s.duration }

// Seek restarts the decoder at the requested frame.
func (s *ffmpegSource) Seek(index int) error {
	if s.closed {
		return errors.New("seek on closed source")
	}
	if index < 0 || (s.frameCount > 0 && index >= s.frameCount) {
		return fmt.Errorf("frame %d of %d: %w", index, s.frameCount, ErrSeekOutOfRange)
	}
	s.stop()
	s.pos = index
	return nil
}

func (s *ffmpegSource) ReadFrame() (image.Image, error) {
	if s.closed {
		return nil, errors.New("read on closed source")
	}
	if s.cmd == nil {
		if err := s.start(); err != nil {
			return nil, err
		}
	}
	if _, err := io.ReadFull(s.reader, s.buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			if waitErr := s.wait(); waitErr != nil {
				return nil, services.Wrap(services.ErrExternalTool, "decode", "read frame", strings.TrimSpace(s.stderr.String()), waitErr)
			}
			return nil, io.EOF
		}
		return nil, services.Wrap(services.ErrExternalTool, "decode", "read frame", "", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for i, j := 0, 0; i < len(s.buf); i, j = i+3, j+4 {
		img.Pix[j] = s.buf[i]
		img.Pix[j+1] = s.buf[i+1]
		img.Pix[j+2] = s.buf[i+2]
		img.Pix[j+3] = 0xff
	}
	s.pos++
	return img, nil
}

func (s *ffmpegSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.stop()
	return nil
}

func (s *ffmpegSource) args() []string {
	args := []string{"-v", "error", "-nostdin"}
	if s.pos > 0 {
		args = append(args, "-ss", strconv.FormatFloat(float64(s.pos)/s.fps, 'f', 6, 64))
	}
	args = append(args, "-i", s.path, "-an", "-sn", "-dn")
	if s.crop != "" {
		args = append(args, "-vf", "crop="+s.crop)
	}
	return append(args, "-f", "rawvideo", "-pix_fmt", "rgb24", "pipe:1")
}

func (s *ffmpegSource) start() error {
	cmd := exec.CommandContext(s.ctx, s.binary, s.args()...)
	s.stderr.Reset()
	cmd.Stderr = &s.stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "decode", "pipe ffmpeg", "", err)
	}
	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrExternalTool, "decode", "start ffmpeg", s.binary, err)
	}
	s.cmd = cmd
	s.stdout = stdout
	s.reader = bufio.NewReaderSize(stdout, len(s.buf))
	return nil
}

func (s *ffmpegSource) wait() error {
	if s.cmd == nil {
		return nil
	}
	err := s.cmd.Wait()
	s.cmd = nil
	s.stdout = nil
	s.reader = nil
	if err != nil && s.ctx.Err() != nil {
		return s.ctx.Err()
	}
	return err
}

// stop kills and reaps the running decoder, if any.
func (s *ffmpegSource) stop() {
	if s.cmd == nil {
		return
	}
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	if s.stdout != nil {
		_ = s.stdout.Close()
	}
	_ = s.cmd.Wait()
	s.cmd = nil
	s.stdout = nil
	s.reader = nil
}
