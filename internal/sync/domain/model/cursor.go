package model

import (
	"strconv"
	"time"
)

// MaxOffsetDepth is the provider's maximum pagination offset. Page
// tokens at or beyond this depth cannot be followed; the sync switches
// from offset-based to watermark-based continuation instead.
const MaxOffsetDepth = 9900

// PageCursor is the tagged pagination state for one sync run. It either
// points at the next page (HasNext) or marks the result set as drained.
// The zero value is the cursor for the first page.
type PageCursor struct {
	after        int
	lastModified time.Time
	done         bool
}

// FirstPage returns the cursor for the first search request.
func FirstPage() PageCursor {
	return PageCursor{}
}

// NextWindow returns a cursor that restarts offset pagination from zero
// with a narrowed lower-bound watermark. Used to escape the provider's
// offset-depth ceiling. The narrowed bound stays in effect for the
// remainder of the run.
func NextWindow(lastModified time.Time) PageCursor {
	return PageCursor{lastModified: lastModified}
}

// Exhausted returns the terminal cursor: no further pages.
func Exhausted() PageCursor {
	return PageCursor{done: true}
}

// HasNext reports whether another page remains to be fetched.
func (c PageCursor) HasNext() bool {
	return !c.done
}

// After returns the offset token for the next search request.
func (c PageCursor) After() int {
	return c.after
}

// LastModifiedDate returns the carried-over watermark, or the zero time
// when offset pagination is still in effect.
func (c PageCursor) LastModifiedDate() time.Time {
	return c.lastModified
}

// Advance derives the cursor for the next iteration from a response's
// raw paging token and the update time of the last meeting in the page
// just processed. An absent or non-positive token ends pagination. A
// token at or beyond MaxOffsetDepth resets the offset to zero and
// carries lastUpdated forward as the new lower bound. A regular token
// keeps the receiver's lower bound: once the sync has escaped the
// offset ceiling, the narrowed window holds until the next escape or
// the end of the run.
func (c PageCursor) Advance(rawToken string, lastUpdated time.Time) PageCursor {
	if rawToken == "" {
		return Exhausted()
	}
	after, err := strconv.Atoi(rawToken)
	if err != nil || after <= 0 {
		return Exhausted()
	}
	if after >= MaxOffsetDepth {
		return NextWindow(lastUpdated)
	}
	return PageCursor{after: after, lastModified: c.lastModified}
}
