package syscall

import (
	"testing"

	"github.com/wqq1991/neo-gui-nel/scripttable"
)

func TestStoragePutGetDelete(t *testing.T) {
	d := New(nil, nil, nil, nil, nil, nil)
	var contract [20]byte
	contract[0] = 0x01

	if _, ok := d.StorageGet(contract, []byte("k")); ok {
		t.Fatal("StorageGet on empty dispatcher should report not found")
	}

	d.StoragePut(contract, []byte("k"), []byte("v"))
	v, ok := d.StorageGet(contract, []byte("k"))
	if !ok || string(v) != "v" {
		t.Fatalf("StorageGet after Put = (%q, %v), want (\"v\", true)", v, ok)
	}

	d.StorageDelete(contract, []byte("k"))
	if _, ok := d.StorageGet(contract, []byte("k")); ok {
		t.Error("StorageGet after Delete should report not found")
	}
}

func TestContractCreateVisibleToScriptTable(t *testing.T) {
	d := New(nil, nil, nil, nil, nil, nil)
	var hash [20]byte
	hash[0] = 0xAA

	d.ContractCreate(hash, []byte{0x01}, scripttable.HasDynamicInvoke)

	cs, ok := d.ScriptTable().GetContractState(hash)
	if !ok {
		t.Fatal("ScriptTable should see the contract after ContractCreate")
	}
	if !cs.Properties.Has(scripttable.HasDynamicInvoke) {
		t.Error("stored properties should include HasDynamicInvoke")
	}
}

func TestContractMigrate(t *testing.T) {
	d := New(nil, nil, nil, nil, nil, nil)
	var oldHash, newHash [20]byte
	oldHash[0] = 0x01
	newHash[0] = 0x02

	d.ContractCreate(oldHash, []byte{0x01}, scripttable.HasStorage)
	d.ContractMigrate(oldHash, newHash, []byte{0x02}, scripttable.HasDynamicInvoke)

	if _, ok := d.ScriptTable().GetContractState(oldHash); ok {
		t.Error("old contract should be retired after migrate")
	}
	cs, ok := d.ScriptTable().GetContractState(newHash)
	if !ok || !cs.Properties.Has(scripttable.HasDynamicInvoke) {
		t.Error("new contract should carry the migrated properties")
	}
}

func TestSeededAccountAndAsset(t *testing.T) {
	acct := &Account{Hash: [20]byte{1}, Balance: 100}
	asset := &Asset{ID: [32]byte{2}, Amount: 50}
	d := New(nil, acct, nil, asset, nil, nil)

	got, ok := d.GetAccount(acct.Hash)
	if !ok || got.Balance != 100 {
		t.Errorf("GetAccount() = (%+v, %v), want balance 100", got, ok)
	}
	gotAsset, ok := d.GetAsset(asset.ID)
	if !ok || gotAsset.Amount != 50 {
		t.Errorf("GetAsset() = (%+v, %v), want amount 50", gotAsset, ok)
	}
}

func TestBlockchainQueryStubs(t *testing.T) {
	d := New(nil, nil, nil, nil, nil, nil)
	if _, ok := d.GetHeader([32]byte{}); ok {
		t.Error("GetHeader should always report not found")
	}
	if _, ok := d.GetBlock([32]byte{}); ok {
		t.Error("GetBlock should always report not found")
	}
	if _, ok := d.GetTransaction([32]byte{}); ok {
		t.Error("GetTransaction should always report not found")
	}
}
