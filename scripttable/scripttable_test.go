package scripttable

import "testing"

func TestParseProperties(t *testing.T) {
	cases := []struct {
		b        byte
		storage  bool
		dynamic  bool
	}{
		{0, false, false},
		{1, true, false},
		{2, false, true},
		{3, true, true},
	}
	for _, c := range cases {
		p := ParseProperties(c.b)
		if got := p.Has(HasStorage); got != c.storage {
			t.Errorf("ParseProperties(%d).Has(HasStorage) = %v, want %v", c.b, got, c.storage)
		}
		if got := p.Has(HasDynamicInvoke); got != c.dynamic {
			t.Errorf("ParseProperties(%d).Has(HasDynamicInvoke) = %v, want %v", c.b, got, c.dynamic)
		}
	}
}

func TestTablePutGetDelete(t *testing.T) {
	tbl := New()
	var hash [20]byte
	hash[0] = 0xAB

	if _, ok := tbl.GetContractState(hash); ok {
		t.Fatal("GetContractState on empty table should report not found")
	}

	tbl.Put(ContractState{ScriptHash: hash, Properties: HasDynamicInvoke})
	cs, ok := tbl.GetContractState(hash)
	if !ok {
		t.Fatal("GetContractState should find the contract after Put")
	}
	if !cs.Properties.Has(HasDynamicInvoke) {
		t.Error("stored properties should include HasDynamicInvoke")
	}

	tbl.Delete(hash)
	if _, ok := tbl.GetContractState(hash); ok {
		t.Error("GetContractState should report not found after Delete")
	}
}
