package geolib

import (
	"context"
	"net"
	"sync"
	"sync/atomic"

	"github.com/juju/errors"
	"github.com/panjf2000/ants/v2"
)

// DefaultWorkers keeps the batch strictly sequential, the way the
// original runs were produced. Lookups are independent of each other,
// so more workers only changes wall time, never the output order.
const DefaultWorkers = 1

// Processor runs a batch of addresses through an Enricher on a worker
// pool. Each result is written into its input slot, so the output
// sequence always matches the input sequence no matter how lookups
// interleave.
type Processor struct {
	enricher *Enricher
	logger   Logger
	pool     *ants.PoolWithFunc
}

type enrichTask struct {
	ctx     context.Context
	ip      net.IP
	index   int
	total   int
	results []LookupResult
	done    *uint32
	wg      *sync.WaitGroup
}

func NewProcessor(enricher *Enricher, logger Logger, workers int) (*Processor, error) {
	if logger == nil {
		logger = nopLogger{}
	}

	if workers <= 0 {
		workers = DefaultWorkers
	}

	proc := &Processor{
		enricher: enricher,
		logger:   logger,
	}

	pool, err := ants.NewPoolWithFunc(workers, proc.run)
	if err != nil {
		return nil, errors.Annotate(err, "Cannot create worker pool")
	}

	proc.pool = pool

	return proc, nil
}

// Process enriches every address in input order. A failure on one row
// is recorded in that row and the batch continues; the returned error
// covers only batch-level breakage such as a released pool.
func (p *Processor) Process(ctx context.Context, ips []net.IP) ([]LookupResult, error) {
	results := make([]LookupResult, len(ips))
	wg := &sync.WaitGroup{}

	var done uint32

	for i, ip := range ips {
		wg.Add(1)

		task := &enrichTask{
			ctx:     ctx,
			ip:      ip,
			index:   i,
			total:   len(ips),
			results: results,
			done:    &done,
			wg:      wg,
		}

		if err := p.pool.Invoke(task); err != nil {
			wg.Done()
			return nil, errors.Annotatef(err, "Cannot schedule lookup of %s", ip)
		}
	}

	wg.Wait()

	return results, nil
}

// Shutdown releases the worker pool. The processor cannot be used
// afterwards.
func (p *Processor) Shutdown() {
	p.pool.Release()
}

func (p *Processor) run(args interface{}) {
	task := args.(*enrichTask)
	defer task.wg.Done()

	task.results[task.index] = p.enricher.Enrich(task.ctx, task.ip)

	finished := atomic.AddUint32(task.done, 1)
	p.logger.Progress(int(finished), task.total, &task.results[task.index])
}
