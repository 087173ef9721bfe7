package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustStore(t *testing.T) Store {
	t.Helper()
	st, err := NewStore(filepath.Join(t.TempDir(), "cmds.bolt"))
	if err != nil {
		t.Fatalf("NewStore errors: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStore_AddCmd(t *testing.T) {
	st := mustStore(t)

	seq, err := st.NextCmdSeq()
	if err != nil {
		t.Fatalf("NextCmdSeq errors: %v", err)
	}
	if seq != 1 {
		t.Errorf("NextCmdSeq of empty store = %d, want 1", seq)
	}

	for i, cmd := range []string{"echo hi", "cd /tmp", "ls"} {
		seq, err := st.AddCmd(cmd)
		if err != nil {
			t.Fatalf("AddCmd(%q) errors: %v", cmd, err)
		}
		if seq != i+1 {
			t.Errorf("AddCmd(%q) = seq %d, want %d", cmd, seq, i+1)
		}
	}
}

func TestStore_CmdsWithSeq(t *testing.T) {
	st := mustStore(t)
	for _, cmd := range []string{"echo hi", "cd /tmp", "ls"} {
		if _, err := st.AddCmd(cmd); err != nil {
			t.Fatal(err)
		}
	}

	cmds, err := st.CmdsWithSeq(1, 3)
	if err != nil {
		t.Fatalf("CmdsWithSeq errors: %v", err)
	}
	want := []Cmd{{"echo hi", 1}, {"cd /tmp", 2}}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}

	cmds, err = st.CmdsWithSeq(3, 100)
	if err != nil {
		t.Fatalf("CmdsWithSeq errors: %v", err)
	}
	want = []Cmd{{"ls", 3}}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "cmds.bolt")
	st, err := NewStore(fname)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.AddCmd("echo hi"); err != nil {
		t.Fatal(err)
	}
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	st, err = NewStore(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	seq, err := st.NextCmdSeq()
	if err != nil {
		t.Fatal(err)
	}
	if seq != 2 {
		t.Errorf("NextCmdSeq after reopen = %d, want 2", seq)
	}
}
