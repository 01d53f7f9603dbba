package machine

import "testing"

func TestInstructionTableFinalizeSortsByOrder(t *testing.T) {
	table := NewInstructionTable()
	orders := []int{30, 10, 20}
	for _, o := range orders {
		if err := table.Append(Instruction{Op: LABEL, Order: o}); err != nil {
			t.Fatalf("Append(%d): %v", o, err)
		}
	}

	if table.Sorted() {
		t.Fatal("table reports sorted before Finalize")
	}

	table.Finalize()

	if !table.Sorted() {
		t.Fatal("table not sorted after Finalize")
	}
	for i, want := range []int{10, 20, 30} {
		if got := table.At(i).Order; got != want {
			t.Fatalf("At(%d).Order = %d, want %d", i, got, want)
		}
	}
}
