// Package services holds the client's repository hooks: owner-scoped task
// and profile operations that read through the query cache, invalidate it
// after a successful write and report every write as a notification.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/client/cache"
	"github.com/dmitrijs2005/taskboard/internal/client/notify"
	"github.com/dmitrijs2005/taskboard/internal/validation"
)

// describe renders err for a notification description.
func describe(err error) string {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fe.Message)
		}
		return strings.Join(msgs, "; ")
	}
	return err.Error()
}

// mutation runs a write and reports it: on success the key is invalidated
// and okTitle is shown; on failure failTitle is shown with the error and the
// cache is left alone. Without an owner the write is skipped silently.
func mutation(ctx context.Context, store *cache.Store, n notify.Notifier, key cache.Key, okTitle, failTitle string, write func() error) error {
	if key.Owner == "" {
		return nil
	}
	if err := write(); err != nil {
		n.Notify(ctx, notify.Notification{Title: failTitle, Description: describe(err), Severity: notify.SeverityDestructive})
		return err
	}
	store.Invalidate(key)
	n.Notify(ctx, notify.Notification{Title: okTitle, Severity: notify.SeverityDefault})
	return nil
}
