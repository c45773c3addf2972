package service

import "testing"

func TestCustomerPatch_Changes_OnlySetFields(t *testing.T) {
	phone := "123"
	memo := ""
	patch := CustomerPatch{Phone: &phone, Memo: &memo}

	changes := patch.Changes()
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d: %v", len(changes), changes)
	}
	if changes["phone"] != "123" {
		t.Fatalf("expected phone=123, got %v", changes["phone"])
	}
	if v, ok := changes["memo"]; !ok || v != "" {
		t.Fatalf("explicitly empty memo must be present, got %v (ok=%v)", v, ok)
	}
	if _, ok := changes["name"]; ok {
		t.Fatalf("unset field must not appear in changes")
	}
}

func TestCustomerPatch_Empty(t *testing.T) {
	patch := CustomerPatch{}
	if !patch.IsEmpty() {
		t.Fatalf("zero patch must be empty")
	}
	if len(patch.Changes()) != 0 {
		t.Fatalf("empty patch must produce no changes, got %v", patch.Changes())
	}

	v := ""
	patch.Name = &v
	if patch.IsEmpty() {
		t.Fatalf("patch with a set field must not be empty")
	}
}
