package taxonomy

import (
	"testing"

	"github.com/google/uuid"
)

// TestSelection_CategoryID covers every precedence combination: a tag
// always wins, a lone parent persists itself, nothing persists nil.
func TestSelection_CategoryID(t *testing.T) {
	parent := newID(1)
	tag := newID(2)

	tests := []struct {
		name string
		sel  Selection
		want *uuid.UUID
	}{
		{"neither selected", Selection{}, nil},
		{"parent only", Selection{ParentID: &parent}, &parent},
		{"tag wins over parent", Selection{ParentID: &parent, TagID: &tag}, &tag},
		{"tag without parent", Selection{TagID: &tag}, &tag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sel.CategoryID()
			switch {
			case got == nil && tt.want == nil:
			case got == nil || tt.want == nil || *got != *tt.want:
				t.Errorf("CategoryID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelection_SetParentClearsTag(t *testing.T) {
	p1 := newID(1)
	p2 := newID(4)
	tag := newID(2)

	sel := Selection{ParentID: &p1, TagID: &tag}
	sel.SetParent(&p2)

	if sel.TagID != nil {
		t.Errorf("TagID = %v after parent change, want nil", sel.TagID)
	}
	if sel.ParentID == nil || *sel.ParentID != p2 {
		t.Errorf("ParentID = %v, want %v", sel.ParentID, p2)
	}
}

func TestSelection_SetParentSameValueKeepsTag(t *testing.T) {
	p1 := newID(1)
	tag := newID(2)

	sel := Selection{ParentID: &p1, TagID: &tag}
	sel.SetParent(&p1)

	if sel.TagID == nil || *sel.TagID != tag {
		t.Errorf("TagID = %v after re-selecting same parent, want %v", sel.TagID, tag)
	}
}

func TestSelection_SetParentToNoneClearsTag(t *testing.T) {
	p1 := newID(1)
	tag := newID(2)

	sel := Selection{ParentID: &p1, TagID: &tag}
	sel.SetParent(nil)

	if sel.TagID != nil {
		t.Errorf("TagID = %v after clearing parent, want nil", sel.TagID)
	}
	if sel.ParentID != nil {
		t.Errorf("ParentID = %v, want nil", sel.ParentID)
	}
}

func TestSelectionFor(t *testing.T) {
	flat := zdravljeSet()
	zdravlje := newID(1)
	recepti := newID(2)
	dangling := newID(50)

	tests := []struct {
		name       string
		categoryID *uuid.UUID
		wantParent *uuid.UUID
		wantTag    *uuid.UUID
	}{
		{"nil id", nil, nil, nil},
		{"stored parent", &zdravlje, &zdravlje, nil},
		{"stored tag", &recepti, &zdravlje, &recepti},
		{"dangling reference", &dangling, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := SelectionFor(tt.categoryID, flat)
			if !idsEqual(sel.ParentID, tt.wantParent) {
				t.Errorf("ParentID = %v, want %v", sel.ParentID, tt.wantParent)
			}
			if !idsEqual(sel.TagID, tt.wantTag) {
				t.Errorf("TagID = %v, want %v", sel.TagID, tt.wantTag)
			}
		})
	}
}

// TestSelection_RoundTrip verifies load→resolve→save reproduces the
// stored id exactly for both parents and tags.
func TestSelection_RoundTrip(t *testing.T) {
	flat := zdravljeSet()

	for _, c := range flat {
		sel := SelectionFor(&c.ID, flat)
		got := sel.CategoryID()
		if got == nil || *got != c.ID {
			t.Errorf("round trip for %s: CategoryID() = %v, want %v", c.Slug, got, c.ID)
		}
	}
}
