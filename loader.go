package galleria

import (
	"errors"
	"image"
	"slices"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrNoImage is reported when a decoder returns neither an image nor an error.
var ErrNoImage = errors.New("galleria: decoder returned no image")

// Decoder turns a photo source into pixels. Implementations are called from
// loader worker goroutines and must not touch the scene.
type Decoder interface {
	Decode(src string) (image.Image, error)
	// Thumbnail returns an image no larger than maxSize on either side.
	Thumbnail(src string, maxSize int) (image.Image, error)
}

// LoadFunc receives the result of a load on the scene's update loop. img is
// nil exactly when err is non-nil.
type LoadFunc func(img *ebiten.Image, err error)

type loadJob struct {
	src   string
	thumb int // 0 = full image
	fn    LoadFunc
}

type loadResult struct {
	job loadJob
	img image.Image
	err error
}

const loaderQueueSize = 64

// Loader decodes images off the update loop. Requests are handed to a fixed
// pool of worker goroutines; finished decodes are converted to Ebitengine
// images and delivered by Poll, which the owning Scene calls once per frame.
// With zero workers every queued request is decoded synchronously inside
// Poll, which keeps tests deterministic.
type Loader struct {
	decoder  Decoder
	workers  int
	queue    []loadJob
	jobs     chan loadJob
	results  chan loadResult
	wg       sync.WaitGroup
	inflight int
	closed   bool
}

// NewLoader starts a loader with the given number of worker goroutines.
func NewLoader(decoder Decoder, workers int) *Loader {
	l := &Loader{
		decoder: decoder,
		workers: max(workers, 0),
	}
	if l.workers > 0 {
		l.jobs = make(chan loadJob, loaderQueueSize)
		l.results = make(chan loadResult, loaderQueueSize)
		for range l.workers {
			l.wg.Add(1)
			go l.work()
		}
	}
	return l
}

func (l *Loader) work() {
	defer l.wg.Done()
	for job := range l.jobs {
		img, err := l.decode(job)
		l.results <- loadResult{job: job, img: img, err: err}
	}
}

func (l *Loader) decode(job loadJob) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	if job.thumb > 0 {
		img, err = l.decoder.Thumbnail(job.src, job.thumb)
	} else {
		img, err = l.decoder.Decode(job.src)
	}
	if err == nil && img == nil {
		err = ErrNoImage
	}
	return img, err
}

// Request queues a full-size decode of src. fn runs on the update loop.
func (l *Loader) Request(src string, fn LoadFunc) {
	l.enqueue(loadJob{src: src, fn: fn})
}

// RequestThumbnail queues a decode of src scaled to fit within maxSize.
func (l *Loader) RequestThumbnail(src string, maxSize int, fn LoadFunc) {
	l.enqueue(loadJob{src: src, thumb: max(maxSize, 1), fn: fn})
}

// enqueue keeps full-size requests, in request order, ahead of thumbnails
// that have not been handed to a worker yet.
func (l *Loader) enqueue(job loadJob) {
	if l.closed {
		return
	}
	if job.thumb == 0 {
		if i := slices.IndexFunc(l.queue, func(j loadJob) bool { return j.thumb > 0 }); i >= 0 {
			l.queue = slices.Insert(l.queue, i, job)
			return
		}
	}
	l.queue = append(l.queue, job)
}

// Pending returns the number of requests not yet delivered.
func (l *Loader) Pending() int {
	return len(l.queue) + l.inflight
}

// Poll hands queued requests to the workers and delivers every finished
// load. It never blocks. Must be called from the update loop.
func (l *Loader) Poll() {
	if l.closed {
		return
	}
	if l.workers == 0 {
		jobs := l.queue
		l.queue = nil
		for _, job := range jobs {
			img, err := l.decode(job)
			l.deliver(loadResult{job: job, img: img, err: err})
		}
		return
	}

	sent := 0
feed:
	for _, job := range l.queue {
		select {
		case l.jobs <- job:
			sent++
			l.inflight++
		default:
			// Workers are saturated; retry next frame.
			break feed
		}
	}
	n := copy(l.queue, l.queue[sent:])
	clear(l.queue[n:])
	l.queue = l.queue[:n]

	for {
		select {
		case res := <-l.results:
			l.inflight--
			l.deliver(res)
		default:
			return
		}
	}
}

// deliver converts a decoded image on the update loop, where creating
// Ebitengine images is allowed, and runs the callback.
func (l *Loader) deliver(res loadResult) {
	if res.err != nil {
		res.job.fn(nil, res.err)
		return
	}
	res.job.fn(ebiten.NewImageFromImage(res.img), nil)
}

// Close stops the workers. Undelivered results are dropped without running
// their callbacks. Close is idempotent.
func (l *Loader) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.queue = nil
	if l.workers == 0 {
		return
	}
	close(l.jobs)
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	for {
		select {
		case <-l.results:
		case <-done:
			l.inflight = 0
			return
		}
	}
}
