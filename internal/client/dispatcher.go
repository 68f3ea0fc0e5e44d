package client

import (
	"context"
	"sync"

	"reel/internal/feed"
	"reel/internal/log"
)

// Result is the outcome of one dispatched mutation, ready to be fed
// back into the controller as a feed.MutationResolved event.
type Result struct {
	Op      feed.MutationOp
	PostID  string
	Author  string
	Comment *feed.Comment
	Err     error
}

// Dispatcher runs mutations in the background under a context tied to
// the controller's lifetime. Closing it cancels everything in flight
// and guarantees no late result is ever delivered, so a torn-down
// controller cannot be dispatched into.
type Dispatcher struct {
	client  *Client
	ctx     context.Context
	cancel  context.CancelFunc
	results chan Result
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewDispatcher creates a dispatcher bound to the given client.
func NewDispatcher(c *Client) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		client:  c,
		ctx:     ctx,
		cancel:  cancel,
		results: make(chan Result, 16),
	}
}

// Results returns the channel on which mutation outcomes arrive. It is
// never closed; consumers stop reading when the controller tears down.
func (d *Dispatcher) Results() <-chan Result {
	return d.results
}

// Dispatch fires a mutation in the background. It returns immediately;
// the outcome arrives on Results unless the dispatcher closes first.
func (d *Dispatcher) Dispatch(eff feed.FireMutation) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		res := d.run(eff)
		// The results send could win a select against Done while the
		// buffer has room, so check for cancellation explicitly.
		if d.ctx.Err() != nil {
			log.Debug("dropping late %s result for post %s", eff.Op, eff.PostID)
			return
		}
		select {
		case d.results <- res:
		case <-d.ctx.Done():
			log.Debug("dropping late %s result for post %s", eff.Op, eff.PostID)
		}
	}()
}

func (d *Dispatcher) run(eff feed.FireMutation) Result {
	res := Result{Op: eff.Op, PostID: eff.PostID, Author: eff.Author}
	switch eff.Op {
	case feed.OpLike:
		res.Err = d.client.Like(d.ctx, eff.PostID)
	case feed.OpUnlike:
		res.Err = d.client.Unlike(d.ctx, eff.PostID)
	case feed.OpSave:
		res.Err = d.client.Save(d.ctx, eff.PostID)
	case feed.OpUnsave:
		res.Err = d.client.Unsave(d.ctx, eff.PostID)
	case feed.OpShare:
		res.Err = d.client.Share(d.ctx, eff.PostID)
	case feed.OpView:
		res.Err = d.client.View(d.ctx, eff.PostID)
	case feed.OpFollow:
		res.Err = d.client.Follow(d.ctx, eff.Author)
	case feed.OpUnfollow:
		res.Err = d.client.Unfollow(d.ctx, eff.Author)
	case feed.OpComment:
		comment, err := d.client.AddComment(d.ctx, eff.PostID, eff.Text)
		if err == nil {
			res.Comment = &comment
		}
		res.Err = err
	}
	if res.Err != nil && d.ctx.Err() == nil {
		log.Warn("mutation %s on %s failed: %v", eff.Op, eff.PostID, res.Err)
	}
	return res
}

// Close cancels the lifetime context and waits for in-flight calls to
// wind down.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
}
