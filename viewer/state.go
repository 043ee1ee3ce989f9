package viewer

import (
	"path/filepath"
	"sync"
	"sync/atomic"
)

// ViewerState is the per-session state spec.md §5 names: the
// referenced-URL set, the served-note-file count, the rendered-HTML
// cache, and the change-notification broadcaster. Guarded by one
// mutex, matching the teacher's log.Publisher discipline of one lock
// for short, constant-time mutations; the HTML cache itself is swapped
// through an atomic.Pointer so readers never block on the mutex.
type ViewerState struct {
	docRoot   string
	mimeTypes map[string]string
	noteExts  map[string]bool
	noteCap   int

	mu          sync.Mutex
	referenced  map[string]bool
	servedNotes int

	html      atomic.Pointer[[]byte]
	Broadcast *Broadcaster[ChangeEvent]
}

// NewViewerState creates a ViewerState rooted at docRoot. mimeTypes
// maps an extension (without the dot) to its Content-Type; noteExts is
// the active scheme's registered note-file extensions.
func NewViewerState(docRoot string, mimeTypes map[string]string, noteExts map[string]bool, noteCap int) *ViewerState {
	return &ViewerState{
		docRoot:    docRoot,
		mimeTypes:  mimeTypes,
		noteExts:   noteExts,
		noteCap:    noteCap,
		referenced: map[string]bool{},
		Broadcast:  NewBroadcaster[ChangeEvent](),
	}
}

// SetHTML atomically replaces the cached rendered document.
func (s *ViewerState) SetHTML(b []byte) {
	s.html.Store(&b)
}

// HTML returns the cached rendered document, or nil if none has been
// rendered yet.
func (s *ViewerState) HTML() []byte {
	p := s.html.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Reference adds dest (a local path, already resolved against docRoot)
// to the session's referenced-URL set. Per spec.md §5's ordering
// guarantee, the set only grows: once permitted, a URL stays permitted
// for the rest of the session.
func (s *ViewerState) Reference(dest string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.referenced[filepath.Clean(dest)] = true
}

// Allow applies spec.md §4.J's four-part allow-list policy to a
// request for path (already joined with docRoot by the caller). It
// returns the Content-Type to serve it as, and whether the request is
// permitted at all.
func (s *ViewerState) Allow(path string) (mime string, ok bool) {
	clean := filepath.Clean(path)

	rel, err := filepath.Rel(s.docRoot, clean)
	if err != nil || rel == ".." || hasParentSegment(rel) {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.referenced[clean] {
		return "", false
	}

	ext := trimDot(filepath.Ext(clean))
	mime, mimeOK := s.mimeTypes[ext]
	if !mimeOK {
		return "", false
	}

	if s.noteExts[ext] && s.servedNotes >= s.noteCap {
		return "", false
	}

	return mime, true
}

// MarkServed records that path was served, bumping the note counter
// when path's extension is a registered note extension (allow-list
// condition (d) counts note files, not every static asset).
func (s *ViewerState) MarkServed(path string) {
	ext := trimDot(filepath.Ext(path))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.noteExts[ext] {
		s.servedNotes++
	}
}

func trimDot(ext string) string {
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}

// hasParentSegment reports whether a filepath.Rel result climbs above
// docRoot: such a path always starts with ".." followed by the OS
// separator (or is exactly "..", checked by the caller).
func hasParentSegment(rel string) bool {
	return len(rel) >= 3 && rel[:2] == ".." && rel[2] == filepath.Separator
}
