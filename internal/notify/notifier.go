package notify

import (
	"context"
)

// VerificationNotifier enqueues verification links for the dispatcher.
// It returns as soon as the job is queued.
type VerificationNotifier struct {
	queue Queue
}

func NewVerificationNotifier(queue Queue) *VerificationNotifier {
	return &VerificationNotifier{queue: queue}
}

func (n *VerificationNotifier) SendVerification(ctx context.Context, email, link string) error {
	return n.queue.Enqueue(ctx, Job{
		Kind: KindVerification,
		To:   email,
		Link: link,
	})
}
