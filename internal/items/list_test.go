package items

import "testing"

func collect(l *List[int]) *[]Change {
	var changes []Change
	l.Subscribe(func(c Change) { changes = append(changes, c) })
	return &changes
}

func TestListMutations(t *testing.T) {
	l := NewList(1, 2, 3)
	changes := collect(l)

	l.Append(4, 5)
	l.Insert(0, 0)
	l.RemoveAt(1, 2)
	l.Replace(0, 10)

	want := []int{10, 3, 4, 5}
	got := l.Items()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	kinds := []ChangeKind{ChangeInsert, ChangeInsert, ChangeRemove, ChangeReplace}
	if len(*changes) != len(kinds) {
		t.Fatalf("expected %d changes, got %d", len(kinds), len(*changes))
	}
	for i, k := range kinds {
		if (*changes)[i].Kind != k {
			t.Errorf("change %d: expected %s, got %s", i, k, (*changes)[i].Kind)
		}
	}
	if c := (*changes)[2]; c.Index != 1 || c.Removed != 2 {
		t.Errorf("unexpected remove splice %+v", c)
	}
}

func TestListBounds(t *testing.T) {
	l := NewList(1, 2, 3)
	changes := collect(l)

	l.RemoveAt(5, 1)
	l.RemoveAt(0, 0)
	l.Replace(-1, 9)
	l.Append()
	l.Insert(0)

	if len(*changes) != 0 {
		t.Errorf("expected no-op mutations not to notify, got %v", *changes)
	}

	l.RemoveAt(1, 10)
	if l.Len() != 1 {
		t.Errorf("expected trimmed removal to leave 1 item, got %d", l.Len())
	}
	if (*changes)[0].Removed != 2 {
		t.Errorf("expected 2 removed, got %d", (*changes)[0].Removed)
	}

	l.Insert(99, 7)
	if l.At(1) != 7 {
		t.Errorf("expected insert past end to append, got %v", l.Items())
	}
	if l.At(-1) != 0 || l.At(10) != 0 {
		t.Error("expected zero value for out of range At")
	}
}

func TestListSetAndClear(t *testing.T) {
	l := NewList(1, 2, 3)
	changes := collect(l)

	l.Set([]int{4, 5})
	if (*changes)[0].Kind != ChangeReset || (*changes)[0].Removed != 3 || (*changes)[0].Added != 2 {
		t.Errorf("unexpected reset change %+v", (*changes)[0])
	}

	l.Clear()
	if l.Len() != 0 {
		t.Errorf("expected empty list, got %d", l.Len())
	}
	l.Clear()
	if len(*changes) != 2 {
		t.Errorf("expected clearing an empty list not to notify, got %d changes", len(*changes))
	}
}

func TestListUnsubscribe(t *testing.T) {
	l := NewList[int]()
	count := 0
	unsub := l.Subscribe(func(Change) { count++ })

	l.Append(1)
	unsub()
	unsub()
	l.Append(2)

	if count != 1 {
		t.Errorf("expected 1 notification, got %d", count)
	}
	if l.Subscribers() != 0 {
		t.Errorf("expected no subscribers, got %d", l.Subscribers())
	}
}

func TestListUnsubscribeDuringNotify(t *testing.T) {
	l := NewList[int]()
	var unsub func()
	calls := 0
	unsub = l.Subscribe(func(Change) {
		calls++
		unsub()
	})
	other := 0
	l.Subscribe(func(Change) { other++ })

	l.Append(1)
	l.Append(2)

	if calls != 1 {
		t.Errorf("expected self-removing handler to run once, got %d", calls)
	}
	if other != 2 {
		t.Errorf("expected other handler to see both changes, got %d", other)
	}
}
