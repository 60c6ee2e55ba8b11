package downloadmgr

import (
	"context"
)

// DefaultConcurrency is the number of parallel downloads
const DefaultConcurrency = 16

// DownloadManager includes a queue to download
type DownloadManager struct {
	queue       []Downloader
	Concurrency int
	// OnProgress is called with the percentage of finished downloads
	OnProgress func(p int)
}

// Downloader allows downloadmgr to download the file
type Downloader interface {
	Download(ctx context.Context) error
}

// New creates a new downloadmgr
func New() *DownloadManager {
	return &DownloadManager{Concurrency: DefaultConcurrency}
}

// Add adds a new item to the queue
func (d *DownloadManager) Add(i Downloader) {
	d.queue = append(d.queue, i)
}

// Len returns the number of queued items
func (d *DownloadManager) Len() int {
	return len(d.queue)
}

// Start downloads all queued items. It returns the first error and cancels
// the remaining downloads. The queue is empty afterwards
func (d *DownloadManager) Start(ctx context.Context) error {
	queue := d.queue
	d.queue = nil
	if len(queue) == 0 {
		return nil
	}

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan int, concurrency)
	// buffered, so workers never block after we returned early
	errc := make(chan error, len(queue))

	go func() {
		for _, item := range queue {
			select {
			case sem <- 1:
			case <-ctx.Done():
				errc <- ctx.Err()
				continue
			}
			go func(item Downloader) {
				errc <- item.Download(ctx)
				<-sem
			}(item)
		}
	}()

	for i := 0; i < len(queue); i++ {
		if err := <-errc; err != nil {
			return err
		}
		if d.OnProgress != nil {
			d.OnProgress((i + 1) * 100 / len(queue))
		}
	}
	return nil
}
