package reconcile

import (
	"github.com/roach88/hearth/internal/record"
)

// ThreadView is a reconstructed discussion tree under one root record.
// The tree is rebuilt from reference tags on every read; nothing about
// thread shape is ever stored.
type ThreadView struct {
	Root record.Record

	notes    map[string]record.Record
	children map[string][]record.Record // parent id -> direct replies
	topLevel []record.Record
}

// Thread reconciles a fetched note set into a tree under root.
//
// Classification per note, in order:
//   - a note whose references resolve to the root only (direct
//     reference to the root's id, or an address reference to the
//     root's coordinate) is top-level;
//   - a note carrying more than one reference is a reply to the most
//     specific referenced note that was actually fetched;
//   - a note whose referenced parent was never fetched degrades to
//     top-level. Missing context flattens the tree, it never drops
//     posts.
//
// Duplicate IDs collapse to one note. Top-level order is newest first;
// replies read oldest first.
func Thread(root record.Record, notes []record.Record) *ThreadView {
	view := &ThreadView{
		Root:     root,
		notes:    make(map[string]record.Record),
		children: make(map[string][]record.Record),
	}

	deduped := record.Dedupe(notes)
	for _, n := range deduped {
		if n.ID != root.ID {
			view.notes[n.ID] = n
		}
	}

	rootCoord, rootAddressable := record.CoordinateOf(root)

	for _, n := range deduped {
		if n.ID == root.ID {
			continue
		}
		if parent, ok := view.parentOf(n); ok {
			view.children[parent] = append(view.children[parent], n)
			continue
		}
		if view.referencesRoot(n, rootCoord, rootAddressable) {
			view.topLevel = append(view.topLevel, n)
			continue
		}
		// Replies whose ancestry was not fetched still belong to the
		// conversation; surface them at the top rather than lose them.
		view.topLevel = append(view.topLevel, n)
	}

	sortNewestFirst(view.topLevel)
	for _, replies := range view.children {
		sortOldestFirst(replies)
	}
	return view
}

// parentOf resolves the note's parent: the last direct reference that
// names another fetched note. References to the root or to unfetched
// records are not parents.
func (t *ThreadView) parentOf(n record.Record) (string, bool) {
	refs := n.Tags.EventRefs()
	if len(refs) < 2 {
		return "", false
	}
	for i := len(refs) - 1; i >= 0; i-- {
		if refs[i] == t.Root.ID || refs[i] == n.ID {
			continue
		}
		if _, fetched := t.notes[refs[i]]; fetched {
			return refs[i], true
		}
	}
	return "", false
}

func (t *ThreadView) referencesRoot(n record.Record, rootCoord record.Coordinate, rootAddressable bool) bool {
	for _, ref := range n.Tags.EventRefs() {
		if ref == t.Root.ID {
			return true
		}
	}
	if rootAddressable {
		for _, ref := range n.Tags.AddressRefs() {
			if ref == rootCoord {
				return true
			}
		}
	}
	return false
}

// TopLevel returns the direct responses to the root, newest first.
func (t *ThreadView) TopLevel() []record.Record {
	return t.topLevel
}

// DirectReplies returns the immediate replies to one note, oldest
// first. Unknown IDs yield an empty slice.
func (t *ThreadView) DirectReplies(id string) []record.Record {
	return t.children[id]
}

// Descendants returns the full reply subtree under a note, flattened
// oldest first.
func (t *ThreadView) Descendants(id string) []record.Record {
	var out []record.Record
	var walk func(string)
	walk = func(parent string) {
		for _, r := range t.children[parent] {
			out = append(out, r)
			walk(r.ID)
		}
	}
	walk(id)
	sortOldestFirst(out)
	return out
}

// Get returns a note by ID.
func (t *ThreadView) Get(id string) (record.Record, bool) {
	r, ok := t.notes[id]
	return r, ok
}

// Size is the number of distinct notes in the thread, root excluded.
func (t *ThreadView) Size() int {
	return len(t.notes)
}

// ReplyDraft builds a reply under the thread. A reply to the root
// carries a single reference; a reply to a deeper note carries the root
// reference first and the parent reference last, so reconstruction can
// find the most specific parent. Threads rooted at addressable records
// get comment-kind replies with an address reference; plain note roots
// get note-kind replies.
func (t *ThreadView) ReplyDraft(parentID, content string) record.Draft {
	coord, addressable := record.CoordinateOf(t.Root)
	kind := record.KindNote
	if addressable {
		kind = record.KindComment
	}

	tags := record.Tags{}
	if addressable {
		tags = append(tags, record.NewTag("a", coord.String()))
	}
	if parentID == "" || parentID == t.Root.ID {
		tags = append(tags, record.NewTag("e", t.Root.ID))
	} else {
		tags = append(tags, record.NewTag("e", t.Root.ID))
		tags = append(tags, record.NewTag("e", parentID))
		if parent, ok := t.notes[parentID]; ok {
			tags = append(tags, record.NewTag("p", parent.Author))
		}
	}
	return record.Draft{Kind: kind, Tags: tags, Content: content}
}
