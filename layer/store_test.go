package layer

import (
	"fmt"
	"testing"
)

func seqIDs() func() ID {
	n := 0
	return func() ID {
		n++
		return ID(fmt.Sprintf("l%d", n))
	}
}

func TestStoreAddDefaults(t *testing.T) {
	cases := []struct {
		name     string
		kind     Kind
		content  string
		wantW    float64
		wantH    float64
		wantFont int
	}{
		{"text", KindText, "Hi", DefaultSize, DefaultSize, DefaultFontSize},
		{"emoji", KindEmoji, "🔥", EmojiSize, EmojiSize, 0},
		{"image", KindImage, "data:image/png;base64,AA==", DefaultSize, DefaultSize, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewStore()
			id := s.Add(c.kind, c.content)
			l, ok := s.Get(id)
			if !ok {
				t.Fatalf("added layer %q not found", id)
			}
			if l.Kind != c.kind || l.Content != c.content {
				t.Fatalf("got kind=%v content=%q", l.Kind, l.Content)
			}
			if l.Width != c.wantW || l.Height != c.wantH {
				t.Fatalf("expected %vx%v, got %vx%v", c.wantW, c.wantH, l.Width, l.Height)
			}
			if l.FontSize != c.wantFont {
				t.Fatalf("expected font size %d, got %d", c.wantFont, l.FontSize)
			}
			if l.Rotation != 0 {
				t.Fatalf("expected zero rotation, got %v", l.Rotation)
			}
			if l.X != DefaultX || l.Y != DefaultY {
				t.Fatalf("expected origin (%v,%v), got (%v,%v)", DefaultX, DefaultY, l.X, l.Y)
			}
			if sel, ok := s.Selected(); !ok || sel != id {
				t.Fatalf("expected new layer selected, got %q ok=%v", sel, ok)
			}
		})
	}
}

func TestStoreIDsUniqueAndCount(t *testing.T) {
	s := NewStore()
	seen := make(map[ID]struct{})
	var ids []ID
	for i := 0; i < 50; i++ {
		id := s.Add(Kind(i%3), "x")
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	removed := 0
	for i := 0; i < len(ids); i += 4 {
		s.Remove(ids[i])
		removed++
	}
	if got, want := len(s.All()), 50-removed; got != want {
		t.Fatalf("expected %d layers, got %d", want, got)
	}
	// ids are never reused after removal
	for i := 0; i < 10; i++ {
		id := s.Add(KindText, "again")
		if _, dup := seen[id]; dup {
			t.Fatalf("id %q reused", id)
		}
		seen[id] = struct{}{}
	}
}

func TestStoreAddPanicsOnDuplicateID(t *testing.T) {
	s := NewStore(WithIDGenerator(func() ID { return "same" }))
	s.Add(KindText, "a")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate id")
		}
	}()
	s.Add(KindText, "b")
}

func TestStoreUpdate(t *testing.T) {
	t.Run("merges_only_given_fields", func(t *testing.T) {
		s := NewStore(WithIDGenerator(seqIDs()))
		id := s.Add(KindText, "Hi")
		before, _ := s.Get(id)

		s.Update(id, Move(10, 20))

		after, _ := s.Get(id)
		if after.X != 10 || after.Y != 20 {
			t.Fatalf("expected (10,20), got (%v,%v)", after.X, after.Y)
		}
		before.X, before.Y = 10, 20
		if after != before {
			t.Fatalf("unexpected field change: before=%+v after=%+v", before, after)
		}
	})

	t.Run("missing_id_is_noop", func(t *testing.T) {
		s := NewStore(WithIDGenerator(seqIDs()))
		s.Add(KindEmoji, "🔥")
		s.Add(KindText, "Hi")
		before := s.All()

		s.Update("nope", Move(1, 1))

		after := s.All()
		if len(after) != len(before) {
			t.Fatalf("collection length changed")
		}
		for i := range before {
			if before[i] != after[i] {
				t.Fatalf("layer %d changed: %+v -> %+v", i, before[i], after[i])
			}
		}
	})

	t.Run("font_size_ignored_on_non_text", func(t *testing.T) {
		s := NewStore()
		id := s.Add(KindEmoji, "🔥")
		s.Update(id, Font(60))
		l, _ := s.Get(id)
		if l.FontSize != 0 {
			t.Fatalf("emoji should not gain a font size, got %d", l.FontSize)
		}
	})

	t.Run("rotation_is_not_normalised", func(t *testing.T) {
		s := NewStore()
		id := s.Add(KindText, "Hi")
		for i := 0; i < 24; i++ {
			l, _ := s.Get(id)
			s.Update(id, Rotate(l.Rotation+15))
		}
		l, _ := s.Get(id)
		if l.Rotation != 360 {
			t.Fatalf("expected rotation 360, got %v", l.Rotation)
		}
	})
}

func TestStoreRemove(t *testing.T) {
	t.Run("shrinks_by_one_and_keeps_order", func(t *testing.T) {
		s := NewStore(WithIDGenerator(seqIDs()))
		a := s.Add(KindText, "a")
		b := s.Add(KindText, "b")
		c := s.Add(KindText, "c")

		s.Remove(b)

		all := s.All()
		if len(all) != 2 || all[0].ID != a || all[1].ID != c {
			t.Fatalf("unexpected order after remove: %+v", all)
		}
		if _, ok := s.Get(b); ok {
			t.Fatalf("removed layer still present")
		}
		// index must follow the compaction
		s.Update(c, Move(5, 5))
		if l, _ := s.Get(c); l.X != 5 {
			t.Fatalf("update after remove hit the wrong layer")
		}
	})

	// Remove clears the selection even when the removed layer is not the
	// selected one. This mirrors the editor's long-standing behaviour.
	t.Run("clears_selection_even_for_unselected_layer", func(t *testing.T) {
		s := NewStore(WithIDGenerator(seqIDs()))
		a := s.Add(KindText, "a")
		b := s.Add(KindText, "b")
		if sel, _ := s.Selected(); sel != b {
			t.Fatalf("expected b selected")
		}

		s.Remove(a)

		if _, ok := s.Selected(); ok {
			t.Fatalf("expected selection cleared")
		}
	})

	t.Run("unknown_id_still_clears_selection", func(t *testing.T) {
		s := NewStore()
		s.Add(KindText, "a")
		s.Remove("ghost")
		if s.Len() != 1 {
			t.Fatalf("expected collection untouched")
		}
		if _, ok := s.Selected(); ok {
			t.Fatalf("expected selection cleared")
		}
	})
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStore()
	id := s.Add(KindText, "Hi")
	all := s.All()
	all[0].X = 999
	l, _ := s.Get(id)
	l.Content = "changed"
	if got, _ := s.Get(id); got.X == 999 || got.Content == "changed" {
		t.Fatalf("store state leaked through a returned copy")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindText, KindEmoji, KindImage} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("round trip of %v failed: %v %v", k, got, err)
		}
	}
	if _, err := ParseKind("sticker"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestClampFontSize(t *testing.T) {
	cases := map[int]int{5: MinFontSize, 10: 10, 64: 64, 120: 120, 500: MaxFontSize}
	for in, want := range cases {
		if got := ClampFontSize(in); got != want {
			t.Fatalf("ClampFontSize(%d) = %d, want %d", in, got, want)
		}
	}
}
