package scene

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/particles/systems"
)

// workChunk is a contiguous run of systems for one worker. Chunks never
// overlap, so no buffer is updated by two workers at once.
type workChunk struct {
	start, end int
	dt         float32
}

// updatePool runs particle system updates on persistent worker goroutines.
type updatePool struct {
	targets    []*systems.ParticleSystem
	numWorkers int

	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newUpdatePool() *updatePool {
	return &updatePool{
		numWorkers: runtime.GOMAXPROCS(0),
		targets:    make([]*systems.ParticleSystem, 0, 16),
	}
}

// start launches persistent worker goroutines.
func (p *updatePool) start() {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stop signals all workers to exit and waits for them.
func (p *updatePool) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker processes chunks until stopped.
func (p *updatePool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			updateRange(p.targets[chunk.start:chunk.end], chunk.dt)
			p.doneChan <- struct{}{}
		}
	}
}

// run updates every target by dt and returns once all of them are done.
func (p *updatePool) run(dt float32) {
	n := len(p.targets)
	if n == 0 {
		return
	}
	if !p.running {
		p.start()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	// Dispatch chunks to workers
	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		p.workChan <- workChunk{start: start, end: end, dt: dt}
		dispatched++
	}

	// Wait for all chunks to complete
	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}

func updateRange(targets []*systems.ParticleSystem, dt float32) {
	for _, s := range targets {
		s.Update(dt)
	}
}
