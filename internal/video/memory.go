package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"
)

// ErrInjectedDecode is returned by a MemoryVideo configured to fail mid-stream.
var ErrInjectedDecode = errors.New("injected decode failure")

// MemoryVideo describes an in-memory clip.
type MemoryVideo struct {
	FPS    float64
	Frames []image.Image
	// FailAt makes ReadFrame fail once the cursor reaches this index. Zero disables it.
	FailAt int
}

// MemoryOpener serves MemoryVideo clips by path. Each Open yields an
// independent cursor over shared, read-only frames.
type MemoryOpener struct {
	mu     sync.Mutex
	videos map[string]MemoryVideo
	opened int
	closed int
}

func NewMemoryOpener() *MemoryOpener {
	return &MemoryOpener{videos: make(map[string]MemoryVideo)}
}

// Add registers a clip under path.
func (o *MemoryOpener) Add(path string, clip MemoryVideo) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.videos[path] = clip
}

func (o *MemoryOpener) Open(ctx context.Context, path string) (Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	clip, ok := o.videos[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such video", path)
	}
	o.opened++
	src := NewMemorySource(path, clip)
	src.onClose = o.markClosed
	return src, nil
}

func (o *MemoryOpener) markClosed() {
	o.mu.Lock()
	o.closed++
	o.mu.Unlock()
}

// OpenHandles reports handles opened but not yet closed.
func (o *MemoryOpener) OpenHandles() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opened - o.closed
}

// Opened reports how many handles have been acquired.
func (o *MemoryOpener) Opened() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opened
}

// MemorySource is a Source over pre-decoded frames.
type MemorySource struct {
	path    string
	clip    MemoryVideo
	pos     int
	closed  bool
	onClose func()
}

func NewMemorySource(path string, clip MemoryVideo) *MemorySource {
	return &MemorySource{path: path, clip: clip}
}

func (s *MemorySource) Path() string    { return s.path }
func (s *MemorySource) FrameCount() int { return len(s.clip.Frames) }
func (s *MemorySource) FPS() float64    { return s.clip.FPS }

func (s *MemorySource) Duration() float64 {
	if s.clip.FPS <= 0 {
		return 0
	}
	return float64(len(s.clip.Frames)) / s.clip.FPS
}

func (s *MemorySource) Seek(index int) error {
	if s.closed {
		return errors.New("seek on closed source")
	}
	if index < 0 || index >= len(s.clip.Frames) {
		return fmt.Errorf("frame %d of %d: %w", index, len(s.clip.Frames), ErrSeekOutOfRange)
	}
	s.pos = index
	return nil
}

func (s *MemorySource) ReadFrame() (image.Image, error) {
	if s.closed {
		return nil, errors.New("read on closed source")
	}
	if s.clip.FailAt > 0 && s.pos >= s.clip.FailAt {
		return nil, fmt.Errorf("frame %d: %w", s.pos, ErrInjectedDecode)
	}
	if s.pos >= len(s.clip.Frames) {
		return nil, io.EOF
	}
	frame := s.clip.Frames[s.pos]
	s.pos++
	return frame, nil
}

func (s *MemorySource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.onClose != nil {
		s.onClose()
	}
	return nil
}
