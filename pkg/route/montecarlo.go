package route

import (
	"context"
	"math/rand"
	"runtime"
	"sort"
	"sync"
)

// trialOutcome is the complete result of one Monte Carlo trial.
type trialOutcome struct {
	index       int
	copper      []*netCopper
	routedCount int
	viaCount    int
	traceLength float64
}

// better reports whether a should be preferred over b: most routed
// nets, then fewest vias, then shortest total trace, then lowest trial
// index so selection is deterministic regardless of completion order.
func better(a, b *trialOutcome) bool {
	if a.routedCount != b.routedCount {
		return a.routedCount > b.routedCount
	}
	if a.viaCount != b.viaCount {
		return a.viaCount < b.viaCount
	}
	if a.traceLength != b.traceLength {
		return a.traceLength < b.traceLength
	}
	return a.index < b.index
}

// runTrial executes one full routing pass over its own grid snapshot.
// Trial i derives its rng from Seed+i, so any prefix of trials is
// reproducible independent of how many run in total. Nets in skip are
// already fully connected by earlier commits and get no new copper;
// the set is computed once by the coordinator so workers never touch
// the connectivity graphs.
func (r *Router) runTrial(ctx context.Context, index int, skip map[string]bool) *trialOutcome {
	g := r.base.clone()
	rng := rand.New(rand.NewSource(r.cfg.Seed + int64(index)))
	nets := orderNets(r.board, rng)

	out := &trialOutcome{index: index}
	done := make(map[string]bool)

	for _, net := range nets {
		if done[net.Name] {
			continue
		}
		if ctx.Err() != nil {
			break // keep what this trial has; the coordinator picks the best overall
		}

		if skip[net.Name] {
			out.copper = append(out.copper, &netCopper{net: net, status: StatusRouted})
			done[net.Name] = true
			continue
		}

		if net.IsDiffPair() {
			if partner := r.board.GetNet(net.PairWith); partner != nil && !done[partner.Name] {
				pc, qc := r.routeDiffPair(g, net, partner, rng)
				out.copper = append(out.copper, pc, qc)
				done[net.Name] = true
				done[partner.Name] = true
				continue
			}
		}

		nc := r.routeNetOnGrid(g, net, rng)
		out.copper = append(out.copper, nc)
		done[net.Name] = true
	}

	for _, nc := range out.copper {
		if nc.status == StatusRouted {
			out.routedCount++
		}
		out.viaCount += len(nc.vias)
		out.traceLength += nc.length()
	}
	return out
}

// RouteAll runs the Monte Carlo trial loop and commits the winning
// trial's copper into the board. Trials are independent and run on a
// bounded worker pool; only the single coordinator goroutine touches
// the board. On context cancellation the best trial found so far is
// still committed, so there is no partial state.
func (r *Router) RouteAll(ctx context.Context) (*Result, error) {
	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > r.cfg.Trials {
		workers = r.cfg.Trials
	}

	// Nets already fully connected by earlier RouteNet commits are
	// reported as routed without new copper.
	skip := make(map[string]bool, len(r.conn))
	for name, conn := range r.conn {
		if conn.FullyConnected() {
			skip[name] = true
		}
	}

	trialCh := make(chan int)
	outcomeCh := make(chan *trialOutcome, r.cfg.Trials)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range trialCh {
				outcomeCh <- r.runTrial(ctx, i, skip)
			}
		}()
	}

	go func() {
		defer close(trialCh)
		for i := 0; i < r.cfg.Trials; i++ {
			select {
			case trialCh <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomeCh)
	}()

	var best *trialOutcome
	trialsRun := 0
	for out := range outcomeCh {
		trialsRun++
		if best == nil || better(out, best) {
			best = out
		}
	}

	if best == nil {
		return nil, ctx.Err()
	}

	r.commit(best.copper)

	res := &Result{
		TrialsRun:    trialsRun,
		WinningTrial: best.index,
		Seed:         r.cfg.Seed,
		ViaCount:     best.viaCount,
		TraceLength:  best.traceLength,
	}
	for _, nc := range best.copper {
		nr := nc.result(nc.net.Name)
		res.Nets = append(res.Nets, *nr)
		res.TotalCount++
		if nr.Status == StatusRouted {
			res.RoutedCount++
		}
	}
	sort.Slice(res.Nets, func(i, j int) bool { return res.Nets[i].Net < res.Nets[j].Net })
	return res, nil
}
