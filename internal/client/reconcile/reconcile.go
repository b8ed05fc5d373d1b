// Package reconcile converts a locally edited block selection into the
// minimal set of association calls against a curriculum. The server's
// current associations are diffed against the user's target selection;
// only the difference is sent, so untouched associations never generate
// traffic and re-running a finished reconciliation is free.
package reconcile

import (
	"context"
	"fmt"
	"sort"

	"github.com/curriculoxpress/cxpress/internal/client/cache"
	"github.com/curriculoxpress/cxpress/internal/client/models"
	"github.com/curriculoxpress/cxpress/internal/logging"
)

// Changes is the minimal edit set for one archive kind.
type Changes struct {
	Add    []string
	Remove []string
}

func (c Changes) Empty() bool {
	return len(c.Add) == 0 && len(c.Remove) == 0
}

// Plan diffs the server's current association ids against the target
// selection. Ids present in both sets require no call. Duplicates are
// collapsed; the output is sorted so execution order is deterministic.
func Plan(current, target []string) Changes {
	cur := toSet(current)
	tgt := toSet(target)

	var ch Changes
	for id := range tgt {
		if _, ok := cur[id]; !ok {
			ch.Add = append(ch.Add, id)
		}
	}
	for id := range cur {
		if _, ok := tgt[id]; !ok {
			ch.Remove = append(ch.Remove, id)
		}
	}

	sort.Strings(ch.Add)
	sort.Strings(ch.Remove)
	return ch
}

func toSet(ids []string) map[string]struct{} {
	s := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Associator is the slice of the curriculum service the reconciler needs.
type Associator interface {
	Attach(ctx context.Context, curriculumID string, kind models.Kind, itemID string) error
	Detach(ctx context.Context, curriculumID string, kind models.Kind, itemID string) error
}

// Reconciler executes association plans against one curriculum.
type Reconciler struct {
	svc   Associator
	cache *cache.Cache
	log   logging.Logger
}

func New(svc Associator, c *cache.Cache, log logging.Logger) *Reconciler {
	if log == nil {
		log = logging.Nop{}
	}
	return &Reconciler{svc: svc, cache: c, log: log}
}

// Apply issues the planned attach/detach calls serially, adds before
// removes, walking the archive kinds in their fixed order. The first
// failing call aborts the pass: already-applied changes stay on the
// server (no rollback) and the next pass, diffing against the resulting
// server state, self-corrects. After a fully successful pass the cached
// curriculum detail is dropped once so the next read reflects the final
// state. Kinds absent from plans are untouched.
func (r *Reconciler) Apply(ctx context.Context, curriculumID string, plans map[models.Kind]Changes) error {
	for _, kind := range models.ArchiveKinds() {
		ch, ok := plans[kind]
		if !ok || ch.Empty() {
			continue
		}

		for _, id := range ch.Add {
			if err := r.svc.Attach(ctx, curriculumID, kind, id); err != nil {
				return fmt.Errorf("attach %s %s: %w", kind, id, err)
			}
			r.log.Debug(ctx, "block attached", "curriculum", curriculumID, "kind", kind, "id", id)
		}
		for _, id := range ch.Remove {
			if err := r.svc.Detach(ctx, curriculumID, kind, id); err != nil {
				return fmt.Errorf("detach %s %s: %w", kind, id, err)
			}
			r.log.Debug(ctx, "block detached", "curriculum", curriculumID, "kind", kind, "id", id)
		}
	}

	if r.cache != nil {
		r.cache.Invalidate(cache.ItemKey(models.KindCurriculums, curriculumID))
	}
	return nil
}

// Reconcile plans and applies in one call: the target selections are
// diffed against the associations embedded in the given curriculum
// detail. Kinds missing from selections are left as they are.
func (r *Reconciler) Reconcile(ctx context.Context, curriculum *models.Curriculum, selections map[models.Kind][]string) error {
	plans := make(map[models.Kind]Changes, len(selections))
	for kind, target := range selections {
		plans[kind] = Plan(curriculum.AssociatedIDs(kind), target)
	}
	return r.Apply(ctx, curriculum.ID, plans)
}
